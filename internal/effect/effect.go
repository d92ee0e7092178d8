package effect

import (
	"fmt"

	"github.com/ozanyurt/darkroom/internal/buffer"
	"github.com/ozanyurt/darkroom/internal/ops"
)

// Apply runs one discrete effect against a buffer and returns the result.
// The operation must carry one of the parameterless effect kinds.
func Apply(b *buffer.Buffer, op ops.Operation) (*buffer.Buffer, error) {
	switch op.Kind {
	case ops.Rotate90:
		return Rotate90(b), nil
	case ops.FlipHorizontal:
		return FlipHorizontal(b), nil
	case ops.Sharpen:
		return Sharpen(b), nil
	case ops.Clarity:
		return Clarity(b), nil
	case ops.OrangeTone:
		return OrangeTone(b), nil
	case ops.RedTone:
		return RedTone(b), nil
	case ops.BlueTone:
		return BlueTone(b), nil
	case ops.Brighten:
		return Brighten(b), nil
	case ops.Vignette:
		return Vignette(b), nil
	case ops.NoiseReduction:
		return NoiseReduction(b), nil
	default:
		return nil, fmt.Errorf("effect: %s is not a discrete effect", op.Kind)
	}
}

// addChannels shifts the three channels by fixed per-channel offsets.
func addChannels(b *buffer.Buffer, dr, dg, db float64) *buffer.Buffer {
	out := buffer.New(b.Width, b.Height)
	for i := 0; i < len(b.Pix); i += buffer.Channels {
		out.Pix[i+0] = buffer.Clamp(float64(b.Pix[i+0]) + dr)
		out.Pix[i+1] = buffer.Clamp(float64(b.Pix[i+1]) + dg)
		out.Pix[i+2] = buffer.Clamp(float64(b.Pix[i+2]) + db)
	}
	return out
}

// OrangeTone warms the image with a fixed red/green bias.
func OrangeTone(b *buffer.Buffer) *buffer.Buffer { return addChannels(b, 12, 6, 0) }

// RedTone pushes the red channel by a fixed amount.
func RedTone(b *buffer.Buffer) *buffer.Buffer { return addChannels(b, 18, 0, 0) }

// BlueTone pushes the blue channel by a fixed amount.
func BlueTone(b *buffer.Buffer) *buffer.Buffer { return addChannels(b, 0, 0, 18) }

// Brighten is the one-click lightening preset. Unlike the parameterized
// brightness adjustment it always shifts by the same fixed amount.
func Brighten(b *buffer.Buffer) *buffer.Buffer { return addChannels(b, 15, 15, 15) }
