package detect

import (
	"errors"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// ErrNoFaceDetected reports that a detector found zero face regions.
// It is non-fatal: the buffer under edit is left untouched.
var ErrNoFaceDetected = errors.New("no face detected")

// Region is a rectangular face bounding box in pixel coordinates.
//
// (X1, Y1) is the top-left corner (inclusive) and (X2, Y2) the bottom-right
// corner (exclusive), matching standard image bounds.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Width returns the horizontal extent of the region in pixels.
func (r Region) Width() int { return r.X2 - r.X1 }

// Height returns the vertical extent of the region in pixels.
func (r Region) Height() int { return r.Y2 - r.Y1 }

// Area returns the region's area in square pixels.
func (r Region) Area() int { return r.Width() * r.Height() }

// Empty reports whether the region encloses no pixels.
func (r Region) Empty() bool { return r.X2 <= r.X1 || r.Y2 <= r.Y1 }

// Expand grows the region by frac of its own size on every side, clamped to
// the given image dimensions.
func (r Region) Expand(frac float64, width, height int) Region {
	dx := int(float64(r.Width()) * frac)
	dy := int(float64(r.Height()) * frac)
	out := Region{X1: r.X1 - dx, Y1: r.Y1 - dy, X2: r.X2 + dx, Y2: r.Y2 + dy}
	if out.X1 < 0 {
		out.X1 = 0
	}
	if out.Y1 < 0 {
		out.Y1 = 0
	}
	if out.X2 > width {
		out.X2 = width
	}
	if out.Y2 > height {
		out.Y2 = height
	}
	return out
}

// Detector finds face regions in a buffer. Implementations may be
// non-deterministic or model-dependent; callers must not assume two calls on
// the same buffer return the same regions.
type Detector interface {
	Detect(b *buffer.Buffer) []Region
}

// DetectorFunc adapts a plain function to the Detector interface.
type DetectorFunc func(b *buffer.Buffer) []Region

// Detect calls f.
func (f DetectorFunc) Detect(b *buffer.Buffer) []Region { return f(b) }
