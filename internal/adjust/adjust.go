package adjust

import (
	"fmt"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/ops"
)

// Shadow/highlight luminance gates. Pixels between the two are midtones and
// are left untouched by both adjustments.
const (
	shadowThreshold    = 85.0
	highlightThreshold = 170.0
)

// Apply runs one tonal operation against a buffer and returns the result.
// The operation must be one of the six tonal kinds and is assumed to carry a
// validated parameter.
func Apply(b *buffer.Buffer, op ops.Operation) (*buffer.Buffer, error) {
	switch op.Kind {
	case ops.Brightness:
		return Brightness(b, op.Value), nil
	case ops.Contrast:
		return Contrast(b, op.Value), nil
	case ops.Saturation:
		return Saturation(b, op.Value), nil
	case ops.WhiteBalance:
		return WhiteBalance(b, op.Value), nil
	case ops.Shadows:
		return Shadows(b, op.Value), nil
	case ops.Highlights:
		return Highlights(b, op.Value), nil
	default:
		return nil, fmt.Errorf("adjust: %s is not a tonal adjustment", op.Kind)
	}
}

// mapSamples applies f independently to every channel sample.
func mapSamples(b *buffer.Buffer, f func(in float64) float64) *buffer.Buffer {
	out := buffer.New(b.Width, b.Height)
	for i, s := range b.Pix {
		out.Pix[i] = buffer.Clamp(f(float64(s)))
	}
	return out
}

// mapPixels applies f to whole pixels, letting the callee use cross-channel
// values such as luminance.
func mapPixels(b *buffer.Buffer, f func(r, g, bl float64) (float64, float64, float64)) *buffer.Buffer {
	out := buffer.New(b.Width, b.Height)
	for i := 0; i < len(b.Pix); i += buffer.Channels {
		r, g, bl := f(float64(b.Pix[i]), float64(b.Pix[i+1]), float64(b.Pix[i+2]))
		out.Pix[i+0] = buffer.Clamp(r)
		out.Pix[i+1] = buffer.Clamp(g)
		out.Pix[i+2] = buffer.Clamp(bl)
	}
	return out
}

// Brightness shifts every sample by v.
func Brightness(b *buffer.Buffer, v float64) *buffer.Buffer {
	return mapSamples(b, func(in float64) float64 {
		return in + v
	})
}

// Contrast scales every sample about the 128 midpoint by 1 + v/100.
func Contrast(b *buffer.Buffer, v float64) *buffer.Buffer {
	factor := 1 + v/100.0
	return mapSamples(b, func(in float64) float64 {
		return 128 + (in-128)*factor
	})
}

// Saturation blends each pixel between its luminance gray and its original
// color by 1 + v/100. v = -100 produces an exact grayscale, v = 0 is
// identity.
func Saturation(b *buffer.Buffer, v float64) *buffer.Buffer {
	factor := 1 + v/100.0
	return mapPixels(b, func(r, g, bl float64) (float64, float64, float64) {
		lum := 0.2126*r + 0.7152*g + 0.0722*bl
		return lum + (r-lum)*factor,
			lum + (g-lum)*factor,
			lum + (bl-lum)*factor
	})
}

// Shadows lifts (or, for negative v, deepens) dark pixels. The shift scales
// with distance below the luminance gate so the transition is band-free.
func Shadows(b *buffer.Buffer, v float64) *buffer.Buffer {
	return mapPixels(b, func(r, g, bl float64) (float64, float64, float64) {
		lum := 0.2126*r + 0.7152*g + 0.0722*bl
		if lum >= shadowThreshold {
			return r, g, bl
		}
		shift := v * (shadowThreshold - lum) / shadowThreshold
		return r + shift, g + shift, bl + shift
	})
}

// Highlights compresses (or, for negative v, boosts) bright pixels,
// symmetric to Shadows about the upper luminance gate.
func Highlights(b *buffer.Buffer, v float64) *buffer.Buffer {
	return mapPixels(b, func(r, g, bl float64) (float64, float64, float64) {
		lum := 0.2126*r + 0.7152*g + 0.0722*bl
		if lum <= highlightThreshold {
			return r, g, bl
		}
		shift := v * (lum - highlightThreshold) / (255 - highlightThreshold)
		return r - shift, g - shift, bl - shift
	})
}

// WhiteBalance applies the per-channel gains of the given color temperature
// in Kelvin. Gains come from the fixed blackbody table in this package,
// linearly interpolated between entries.
func WhiteBalance(b *buffer.Buffer, kelvin float64) *buffer.Buffer {
	gr, gg, gb := kelvinGains(kelvin)
	return mapPixels(b, func(r, g, bl float64) (float64, float64, float64) {
		return r * gr, g * gg, bl * gb
	})
}
