// Package document ties one loaded image to its edit history and exposes the
// command surface the editing session drives.
//
// A Document owns three things: the original buffer (never mutated after
// load), the operation history, and a rendered cache of the buffer visible at
// the history pointer. Every command is all-or-nothing: the candidate buffer
// is rendered first, and only on success do the history entry and the cache
// commit together. A failed command leaves the document exactly as it was.
//
// Documents are not safe for concurrent command calls; the session layer (or
// another caller) serializes access per document.
package document

import (
	"errors"
	"fmt"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/detect"
	"github.com/ozanyurt/darkroom/internal/enhance"
	"github.com/ozanyurt/darkroom/internal/histogram"
	"github.com/ozanyurt/darkroom/internal/history"
	"github.com/ozanyurt/darkroom/internal/ops"
)

// ErrEmptyBuffer is returned by Open when the decoded buffer holds no pixels,
// which is how a failed or empty load surfaces to the caller.
var ErrEmptyBuffer = errors.New("document: empty buffer")

// Document is one open image: original pixels, history, rendered cache.
type Document struct {
	id       string
	original *buffer.Buffer
	hist     *history.History
	rendered *buffer.Buffer
	detector detect.Detector
}

// Open creates a document around a loaded buffer, using the built-in
// skin-tone detector for portrait mode.
func Open(buf *buffer.Buffer) (*Document, error) {
	return OpenWithDetector(buf, &detect.SkinDetector{})
}

// OpenWithDetector creates a document with an injected face detector. The
// detector is consulted only when a portrait command runs; replay uses the
// regions frozen at that moment and never calls it again.
func OpenWithDetector(buf *buffer.Buffer, d detect.Detector) (*Document, error) {
	if buf.Empty() {
		return nil, ErrEmptyBuffer
	}
	if d == nil {
		d = &detect.SkinDetector{}
	}
	return &Document{
		id:       uuid.NewString(),
		original: buf.Clone(),
		hist:     history.New(),
		rendered: buf.Clone(),
		detector: d,
	}, nil
}

// ID returns the document's unique identifier.
func (d *Document) ID() string { return d.id }

// Original returns the untouched buffer the document was opened with. The
// returned buffer is shared and must be treated as read-only.
func (d *Document) Original() *buffer.Buffer { return d.original }

// Current returns the buffer visible at the history pointer. The returned
// buffer is shared and must be treated as read-only.
func (d *Document) Current() *buffer.Buffer { return d.rendered }

// Operations returns a copy of the operations the current buffer is folded
// through.
func (d *Document) Operations() []ops.Operation { return d.hist.Active() }

// CanUndo reports whether at least one operation can be undone.
func (d *Document) CanUndo() bool { return d.hist.Pointer() > 0 }

// CanRedo reports whether at least one undone operation can be redone.
func (d *Document) CanRedo() bool { return d.hist.Pointer() < d.hist.Len() }

// commit renders the candidate fold and, only on success, records the
// operation and swaps in the new buffer.
func (d *Document) commit(op ops.Operation) error {
	next := append(d.hist.Active(), op)
	out, err := history.Render(d.original, next)
	if err != nil {
		return err
	}
	d.hist.Push(op)
	d.rendered = out
	return nil
}

// ApplyAdjustment records a tonal adjustment. A value outside the kind's
// declared range is rejected with *ops.ValidationError and nothing changes.
func (d *Document) ApplyAdjustment(k ops.Kind, value float64) error {
	op, err := ops.NewAdjustment(k, value)
	if err != nil {
		return err
	}
	return d.commit(op)
}

// ApplyEffect records a discrete one-click effect.
func (d *Document) ApplyEffect(k ops.Kind) error {
	op, err := ops.NewEffect(k)
	if err != nil {
		return err
	}
	return d.commit(op)
}

// ApplyPortraitMode runs the detector over the current buffer and records a
// portrait operation over the detected regions. When the detector finds
// nothing the command fails with detect.ErrNoFaceDetected and the history is
// left untouched.
func (d *Document) ApplyPortraitMode() error {
	regions := d.detector.Detect(d.rendered)
	if len(regions) == 0 {
		return detect.ErrNoFaceDetected
	}
	return d.commit(ops.NewPortrait(regions))
}

// ApplyAutoEnhance derives a brightness/contrast pair from the current
// buffer's luminance percentiles and records it as one operation. A
// well-exposed image records the explicit (0, 0) no-op, so the command is
// always undoable.
func (d *Document) ApplyAutoEnhance() error {
	p := enhance.Derive(d.rendered)
	return d.commit(ops.NewAutoEnhance(p.Brightness, p.Contrast))
}

// Undo steps the history pointer back one operation and re-renders.
func (d *Document) Undo() error {
	if err := d.hist.Undo(); err != nil {
		return err
	}
	out, err := d.hist.CurrentBuffer(d.original)
	if err != nil {
		// The prefix rendered fine when it was recorded; restore the
		// pointer rather than leave cache and history disagreeing.
		_ = d.hist.Redo()
		return fmt.Errorf("document: undo replay: %w", err)
	}
	d.rendered = out
	return nil
}

// Redo steps the history pointer forward one operation and re-renders.
func (d *Document) Redo() error {
	if err := d.hist.Redo(); err != nil {
		return err
	}
	out, err := d.hist.CurrentBuffer(d.original)
	if err != nil {
		_ = d.hist.Undo()
		return fmt.Errorf("document: redo replay: %w", err)
	}
	d.rendered = out
	return nil
}

// UndoAll rewinds the pointer to the original image. The operation sequence
// is kept, so every edit remains redoable one step at a time.
func (d *Document) UndoAll() {
	d.hist.Rewind()
	d.rendered = d.original.Clone()
}

// Histogram computes channel and luminance histograms of the current buffer.
func (d *Document) Histogram() *histogram.Histogram {
	return histogram.Compute(d.rendered)
}

// Thumbnail returns a copy of the current buffer scaled to fit within
// maxDim×maxDim, preserving aspect ratio. Buffers already small enough are
// returned at their own size.
func (d *Document) Thumbnail(maxDim int) *buffer.Buffer {
	if maxDim <= 0 || (d.rendered.Width <= maxDim && d.rendered.Height <= maxDim) {
		return d.rendered.Clone()
	}
	fitted := imaging.Fit(d.rendered.Image(), maxDim, maxDim, imaging.Lanczos)
	return buffer.FromImage(fitted)
}
