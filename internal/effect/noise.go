package effect

import (
	"math"

	"github.com/anthonynsimon/bild/blur"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// Bilateral filter constants: a 5×5 window with the range and spatial sigmas
// of the editor this module models.
const (
	bilateralRadius     = 2
	bilateralSigmaColor = 75.0
	bilateralSigmaSpace = 75.0
)

// NoiseReduction smooths the buffer with an edge-preserving bilateral
// filter: each output sample is a weighted neighborhood average whose weights
// fall off with both spatial distance and intensity difference, so flat
// areas are averaged while edges keep their contrast.
func NoiseReduction(b *buffer.Buffer) *buffer.Buffer {
	w, h := b.Width, b.Height
	out := buffer.New(w, h)

	// Spatial weights depend only on the offset; precompute the window.
	const side = bilateralRadius*2 + 1
	var spatial [side][side]float64
	for ky := -bilateralRadius; ky <= bilateralRadius; ky++ {
		for kx := -bilateralRadius; kx <= bilateralRadius; kx++ {
			d2 := float64(kx*kx + ky*ky)
			spatial[ky+bilateralRadius][kx+bilateralRadius] =
				math.Exp(-d2 / (2 * bilateralSigmaSpace * bilateralSigmaSpace))
		}
	}

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := b.Offset(x, y)
			for c := 0; c < buffer.Channels; c++ {
				center := float64(b.Pix[i+c])
				sum, wsum := 0.0, 0.0
				for ky := -bilateralRadius; ky <= bilateralRadius; ky++ {
					ny := y + ky
					if ny < 0 {
						ny = 0
					} else if ny >= h {
						ny = h - 1
					}
					for kx := -bilateralRadius; kx <= bilateralRadius; kx++ {
						nx := x + kx
						if nx < 0 {
							nx = 0
						} else if nx >= w {
							nx = w - 1
						}
						sample := float64(b.Pix[b.Offset(nx, ny)+c])
						diff := sample - center
						weight := spatial[ky+bilateralRadius][kx+bilateralRadius] *
							math.Exp(-diff*diff/(2*bilateralSigmaColor*bilateralSigmaColor))
						sum += sample * weight
						wsum += weight
					}
				}
				out.Pix[i+c] = buffer.Clamp(sum / wsum)
			}
		}
	}
	return out
}

// GaussianBlur smooths the buffer with bild's Gaussian blur. It is the
// large-radius smoothing primitive the portrait composite builds its
// background from.
func GaussianBlur(b *buffer.Buffer, radius float64) *buffer.Buffer {
	if radius <= 0 {
		return b.Clone()
	}
	return buffer.FromImage(blur.Gaussian(b.Image(), radius))
}
