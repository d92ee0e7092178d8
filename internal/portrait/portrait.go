// Package portrait implements the face-aware background blur composite.
//
// Detection and compositing are split on purpose: Run consults the injected
// detector exactly once and hands the regions back to the caller, so they
// can be frozen into the recorded operation. Apply is then fully
// deterministic — it blurs the background and blends it with the sharp
// buffer through a soft mask built from the frozen regions.
package portrait

import (
	"math"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/detect"
	"github.com/ozanyurt/darkroom/internal/effect"
)

const (
	// regionMargin widens each detected region by this fraction per side
	// before masking, so ears and hairlines stay sharp.
	regionMargin = 0.2

	// featherWidth is the distance in pixels over which the mask ramps
	// from 1 inside a region to 0 outside.
	featherWidth = 24.0

	// backgroundBlurRadius is the Gaussian radius for the defocused
	// background, deliberately larger than the noise-reduction window.
	backgroundBlurRadius = 8.0
)

// Run detects faces in the buffer and, when at least one region is found,
// returns the composited result along with the regions it used. With zero
// regions it returns detect.ErrNoFaceDetected and leaves the buffer alone.
func Run(b *buffer.Buffer, d detect.Detector) (*buffer.Buffer, []detect.Region, error) {
	regions := d.Detect(b)
	if len(regions) == 0 {
		return nil, nil, detect.ErrNoFaceDetected
	}
	return Apply(b, regions), regions, nil
}

// Apply composites the sharp buffer over a blurred copy of itself:
//
//	out = mask·sharp + (1-mask)·blurred
//
// per pixel and channel, where the mask is 1 inside the (expanded) regions
// and feathers smoothly to 0 outside. Apply is deterministic for a given
// region list.
func Apply(b *buffer.Buffer, regions []detect.Region) *buffer.Buffer {
	if len(regions) == 0 {
		return b.Clone()
	}
	mask := Mask(b.Width, b.Height, regions)
	blurred := effect.GaussianBlur(b, backgroundBlurRadius)

	out := buffer.New(b.Width, b.Height)
	for p := 0; p < b.Width*b.Height; p++ {
		m := mask[p]
		i := p * buffer.Channels
		for c := 0; c < buffer.Channels; c++ {
			sharp := float64(b.Pix[i+c])
			soft := float64(blurred.Pix[i+c])
			out.Pix[i+c] = buffer.Clamp(m*sharp + (1-m)*soft)
		}
	}
	return out
}

// Mask builds the per-pixel blend weights in [0, 1] for a region list over a
// width×height image: 1 inside any expanded region, a smoothstep ramp across
// the feather band, 0 beyond it. Overlapping regions take the maximum.
func Mask(width, height int, regions []detect.Region) []float64 {
	mask := make([]float64, width*height)

	expanded := make([]detect.Region, 0, len(regions))
	for _, r := range regions {
		e := r.Expand(regionMargin, width, height)
		if !e.Empty() {
			expanded = append(expanded, e)
		}
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			best := 0.0
			for _, r := range expanded {
				w := regionWeight(r, x, y)
				if w > best {
					best = w
				}
				if best == 1 {
					break
				}
			}
			mask[y*width+x] = best
		}
	}
	return mask
}

// regionWeight computes one pixel's weight for one region from its distance
// to the region rectangle.
func regionWeight(r detect.Region, x, y int) float64 {
	dx := 0.0
	if x < r.X1 {
		dx = float64(r.X1 - x)
	} else if x >= r.X2 {
		dx = float64(x - r.X2 + 1)
	}
	dy := 0.0
	if y < r.Y1 {
		dy = float64(r.Y1 - y)
	} else if y >= r.Y2 {
		dy = float64(y - r.Y2 + 1)
	}
	if dx == 0 && dy == 0 {
		return 1
	}

	d := math.Hypot(dx, dy)
	if d >= featherWidth {
		return 0
	}
	t := 1 - d/featherWidth
	// smoothstep keeps the ramp free of visible banding at both ends
	return t * t * (3 - 2*t)
}
