package document

import (
	"errors"
	"testing"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/detect"
	"github.com/ozanyurt/darkroom/internal/history"
	"github.com/ozanyurt/darkroom/internal/ops"
)

// stubDetector always reports one fixed region, regardless of content.
func stubDetector(regions ...detect.Region) detect.Detector {
	return detect.DetectorFunc(func(*buffer.Buffer) []detect.Region {
		return regions
	})
}

func mustOpen(t *testing.T, buf *buffer.Buffer) *Document {
	t.Helper()
	doc, err := Open(buf)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return doc
}

func TestOpenRejectsEmptyBuffers(t *testing.T) {
	for _, buf := range []*buffer.Buffer{nil, buffer.New(0, 0), {Width: 4, Height: 4}} {
		if _, err := Open(buf); !errors.Is(err, ErrEmptyBuffer) {
			t.Errorf("Open(%+v): got %v, want ErrEmptyBuffer", buf, err)
		}
	}
}

func TestOpenCopiesTheBuffer(t *testing.T) {
	src := buffer.NewUniform(4, 4, 10, 20, 30)
	doc := mustOpen(t, src)

	src.Set(0, 0, 255, 255, 255)
	if r, _, _ := doc.Original().At(0, 0); r != 10 {
		t.Error("document must own its original, not alias the caller's buffer")
	}
}

func TestAdjustUndoRedoRoundTrip(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(100, 100, 128, 128, 128))

	if err := doc.ApplyAdjustment(ops.Brightness, 50); err != nil {
		t.Fatal(err)
	}
	if r, _, _ := doc.Current().At(50, 50); r != 178 {
		t.Fatalf("after brightness +50: got %d, want 178", r)
	}

	if err := doc.ApplyAdjustment(ops.Contrast, -100); err != nil {
		t.Fatal(err)
	}
	if r, _, _ := doc.Current().At(50, 50); r != 128 {
		t.Fatalf("after contrast -100: got %d, want 128", r)
	}

	if err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if r, _, _ := doc.Current().At(50, 50); r != 178 {
		t.Errorf("after undo: got %d, want 178", r)
	}

	if err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if !buffer.Equal(doc.Current(), doc.Original()) {
		t.Error("undoing everything must restore the original exactly")
	}

	if err := doc.Redo(); err != nil {
		t.Fatal(err)
	}
	if err := doc.Redo(); err != nil {
		t.Fatal(err)
	}
	if r, _, _ := doc.Current().At(50, 50); r != 128 {
		t.Errorf("after redoing both: got %d, want 128", r)
	}
	if err := doc.Redo(); !errors.Is(err, history.ErrNothingToRedo) {
		t.Errorf("redo past the end: got %v", err)
	}
}

func TestRejectedAdjustmentChangesNothing(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(8, 8, 100, 100, 100))

	err := doc.ApplyAdjustment(ops.Brightness, 150)
	var verr *ops.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("out-of-range value: got %v, want *ops.ValidationError", err)
	}
	if len(doc.Operations()) != 0 {
		t.Error("rejected command must not touch the history")
	}
	if !buffer.Equal(doc.Current(), doc.Original()) {
		t.Error("rejected command must not touch the rendered buffer")
	}
}

func TestApplyEffectRejectsNonEffectKinds(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(8, 8, 100, 100, 100))
	if err := doc.ApplyEffect(ops.Brightness); err == nil {
		t.Error("a tonal kind is not a discrete effect")
	}
	if len(doc.Operations()) != 0 {
		t.Error("rejected command must not touch the history")
	}
}

func TestPushAfterUndoDiscardsRedo(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(8, 8, 100, 100, 100))

	if err := doc.ApplyEffect(ops.Brighten); err != nil {
		t.Fatal(err)
	}
	if err := doc.ApplyEffect(ops.RedTone); err != nil {
		t.Fatal(err)
	}
	if err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := doc.ApplyEffect(ops.BlueTone); err != nil {
		t.Fatal(err)
	}

	if doc.CanRedo() {
		t.Error("pushing after undo must discard the redo branch")
	}
	active := doc.Operations()
	if len(active) != 2 || active[1].Kind != ops.BlueTone {
		t.Errorf("active operations: got %v", active)
	}
}

func TestPortraitNoFaceLeavesHistoryUntouched(t *testing.T) {
	doc, err := OpenWithDetector(buffer.NewUniform(40, 40, 20, 40, 180), stubDetector())
	if err != nil {
		t.Fatal(err)
	}
	before := doc.Current()

	if err := doc.ApplyPortraitMode(); !errors.Is(err, detect.ErrNoFaceDetected) {
		t.Fatalf("got %v, want ErrNoFaceDetected", err)
	}
	if len(doc.Operations()) != 0 {
		t.Error("failed portrait must not add a history entry")
	}
	if doc.Current() != before {
		t.Error("failed portrait must not re-render")
	}
}

func TestPortraitFreezesRegionsAndReplaysExactly(t *testing.T) {
	region := detect.Region{X1: 10, Y1: 10, X2: 30, Y2: 30}
	doc, err := OpenWithDetector(buffer.NewUniform(40, 40, 120, 120, 120), stubDetector(region))
	if err != nil {
		t.Fatal(err)
	}

	if err := doc.ApplyPortraitMode(); err != nil {
		t.Fatal(err)
	}
	active := doc.Operations()
	if len(active) != 1 || active[0].Kind != ops.Portrait {
		t.Fatalf("active operations: got %v", active)
	}
	if len(active[0].Regions) != 1 || active[0].Regions[0] != region {
		t.Errorf("frozen regions: got %v, want %v", active[0].Regions, region)
	}

	rendered := doc.Current().Clone()
	if err := doc.Undo(); err != nil {
		t.Fatal(err)
	}
	if err := doc.Redo(); err != nil {
		t.Fatal(err)
	}
	if !buffer.Equal(doc.Current(), rendered) {
		t.Error("portrait redo must reproduce the frozen-region composite bit for bit")
	}
}

func TestAutoEnhanceAlwaysRecordsOneOperation(t *testing.T) {
	// Full-range image: the heuristic derives the explicit no-op pair, and
	// the operation is still recorded so the command is undoable.
	buf := buffer.New(2, 50)
	for y := 0; y < 50; y++ {
		buf.Set(1, y, 255, 255, 255)
	}
	doc := mustOpen(t, buf)

	if err := doc.ApplyAutoEnhance(); err != nil {
		t.Fatal(err)
	}
	active := doc.Operations()
	if len(active) != 1 || active[0].Kind != ops.AutoEnhance {
		t.Fatalf("active operations: got %v", active)
	}
	if !buffer.Equal(doc.Current(), doc.Original()) {
		t.Error("no-op enhancement must leave pixels unchanged")
	}
	if err := doc.Undo(); err != nil {
		t.Errorf("the recorded no-op must still be undoable: %v", err)
	}
}

func TestAutoEnhanceStretchesLowContrast(t *testing.T) {
	buf := buffer.New(129, 1)
	for x := 0; x < 129; x++ {
		v := uint8(64 + x)
		buf.Set(x, 0, v, v, v)
	}
	doc := mustOpen(t, buf)

	if err := doc.ApplyAutoEnhance(); err != nil {
		t.Fatal(err)
	}
	lo, _, _ := doc.Current().At(0, 0)
	hi, _, _ := doc.Current().At(128, 0)
	if lo > 2 || hi < 253 {
		t.Errorf("enhanced band should span nearly full range, got [%d, %d]", lo, hi)
	}
}

func TestUndoAllKeepsRedo(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(8, 8, 100, 100, 100))
	if err := doc.ApplyEffect(ops.Brighten); err != nil {
		t.Fatal(err)
	}
	if err := doc.ApplyEffect(ops.RedTone); err != nil {
		t.Fatal(err)
	}

	doc.UndoAll()
	if !buffer.Equal(doc.Current(), doc.Original()) {
		t.Error("UndoAll must show the original")
	}
	if !doc.CanRedo() {
		t.Fatal("UndoAll must keep the sequence redoable")
	}
	if err := doc.Redo(); err != nil {
		t.Fatal(err)
	}
	if r, _, _ := doc.Current().At(0, 0); r != 115 {
		t.Errorf("first redo after UndoAll: got %d, want 115", r)
	}
}

func TestHistogramTracksCurrentBuffer(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(10, 10, 100, 100, 100))

	h := doc.Histogram()
	if h.Lum[100] != 100 {
		t.Errorf("luminance bin 100: got %d, want 100", h.Lum[100])
	}

	if err := doc.ApplyAdjustment(ops.Brightness, 20); err != nil {
		t.Fatal(err)
	}
	h = doc.Histogram()
	if h.Lum[120] != 100 {
		t.Errorf("luminance bin 120 after brightness +20: got %d, want 100", h.Lum[120])
	}
}

func TestThumbnail(t *testing.T) {
	doc := mustOpen(t, buffer.NewUniform(100, 50, 80, 80, 80))

	thumb := doc.Thumbnail(10)
	if thumb.Width != 10 || thumb.Height != 5 {
		t.Errorf("thumbnail dimensions: got %dx%d, want 10x5", thumb.Width, thumb.Height)
	}

	small := doc.Thumbnail(200)
	if small.Width != 100 || small.Height != 50 {
		t.Errorf("already-small image must keep its size, got %dx%d", small.Width, small.Height)
	}
}
