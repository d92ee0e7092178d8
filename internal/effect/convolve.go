package effect

import (
	bildeffect "github.com/anthonynsimon/bild/effect"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// Sharpen convolves all channels with the fixed 3×3 high-pass kernel
//
//	 0 -1  0
//	-1  5 -1
//	 0 -1  0
//
// via bild's sharpen filter.
func Sharpen(b *buffer.Buffer) *buffer.Buffer {
	return buffer.FromImage(bildeffect.Sharpen(b.Image()))
}

// Clarity applies the same high-pass kernel to the luminance plane only and
// adds the resulting delta back to every channel. Local contrast increases
// without the hue shifts a full-channel sharpen causes.
func Clarity(b *buffer.Buffer) *buffer.Buffer {
	w, h := b.Width, b.Height
	out := buffer.New(w, h)
	if w == 0 || h == 0 {
		return out
	}

	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl := b.At(x, y)
			lum[y*w+x] = buffer.Luminance(r, g, bl)
		}
	}

	clampX := func(x int) int {
		if x < 0 {
			return 0
		}
		if x >= w {
			return w - 1
		}
		return x
	}
	clampY := func(y int) int {
		if y < 0 {
			return 0
		}
		if y >= h {
			return h - 1
		}
		return y
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			center := lum[y*w+x]
			sharp := 5*center -
				lum[y*w+clampX(x-1)] -
				lum[y*w+clampX(x+1)] -
				lum[clampY(y-1)*w+x] -
				lum[clampY(y+1)*w+x]
			delta := sharp - center

			r, g, bl := b.At(x, y)
			out.Set(x, y,
				buffer.Clamp(float64(r)+delta),
				buffer.Clamp(float64(g)+delta),
				buffer.Clamp(float64(bl)+delta))
		}
	}
	return out
}
