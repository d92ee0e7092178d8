package effect

import (
	"math"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// vignetteStrength is the fixed k in the radial falloff 1 - k·(d/dmax)².
// Corner pixels keep 60% of their brightness, the center keeps 100%.
const vignetteStrength = 0.4

// Vignette darkens pixels by a quadratic radial falloff from the image
// center. The falloff mask depends only on the buffer's dimensions and is
// recomputed per call, so geometric effects earlier in a history fold always
// see a mask that matches their output size.
func Vignette(b *buffer.Buffer) *buffer.Buffer {
	w, h := b.Width, b.Height
	out := buffer.New(w, h)

	cx := float64(w-1) / 2.0
	cy := float64(h-1) / 2.0
	dmax := math.Hypot(cx, cy)
	if dmax == 0 {
		copy(out.Pix, b.Pix)
		return out
	}

	for y := 0; y < h; y++ {
		dy := float64(y) - cy
		for x := 0; x < w; x++ {
			dx := float64(x) - cx
			d := math.Hypot(dx, dy)
			gain := 1 - vignetteStrength*(d/dmax)*(d/dmax)

			i := b.Offset(x, y)
			out.Pix[i+0] = buffer.Clamp(float64(b.Pix[i+0]) * gain)
			out.Pix[i+1] = buffer.Clamp(float64(b.Pix[i+1]) * gain)
			out.Pix[i+2] = buffer.Clamp(float64(b.Pix[i+2]) * gain)
		}
	}
	return out
}
