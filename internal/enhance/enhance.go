// Package enhance derives auto-enhance parameters from image statistics.
//
// The heuristic is dynamic range stretching: find where the 1st and 99th
// luminance percentiles sit, then synthesize the brightness/contrast pair
// that maps that interval onto the full [0, 255] range using the adjustment
// engine's own formulas. The caller records the derived pair, so replaying
// history never re-derives it.
package enhance

import (
	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/histogram"
)

// rangeTolerance is how close (in luminance levels) the percentile span must
// come to the full range before the image counts as already well-exposed.
const rangeTolerance = 5

// Params is the synthesized adjustment pair. Replay applies Brightness
// first, then Contrast.
type Params struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

// IsNoOp reports whether the pair changes nothing.
func (p Params) IsNoOp() bool { return p.Brightness == 0 && p.Contrast == 0 }

// Derive computes the enhancement pair for a buffer.
//
// With lo and hi the 1st and 99th luminance percentiles, the contrast factor
// c = 255/(hi-lo) stretches [lo, hi] onto [0, 255], and the brightness
// offset 128 - lo - 128/c re-centers the stretch so that, applied in
// brightness-then-contrast order through the engine formulas, lo lands on 0
// and hi on 255. Both values are clamped to the legal ±100 adjustment range.
// A span already within tolerance of the full range yields the explicit
// no-op pair (0, 0).
func Derive(b *buffer.Buffer) Params {
	h := histogram.Compute(b)
	if h.Total == 0 {
		return Params{}
	}

	lo := float64(h.LumPercentile(1))
	hi := float64(h.LumPercentile(99))
	span := hi - lo
	if span >= 255-rangeTolerance {
		return Params{}
	}
	if span <= 0 {
		// Degenerate (near-uniform) image: stretching a zero-width span
		// is meaningless, leave it alone.
		return Params{}
	}

	c := 255.0 / span
	contrast := clamp((c-1)*100, -100, 100)
	brightness := clamp(128-lo-128/c, -100, 100)
	return Params{Brightness: brightness, Contrast: contrast}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
