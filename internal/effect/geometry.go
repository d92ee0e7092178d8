package effect

import (
	"github.com/disintegration/imaging"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// Rotate90 rotates the buffer 90° clockwise. Output dimensions are the
// input's height×width; four applications restore the original buffer
// exactly.
func Rotate90(b *buffer.Buffer) *buffer.Buffer {
	// imaging rotates counter-clockwise, so a 270° CCW turn is our 90° CW.
	return buffer.FromImage(imaging.Rotate270(b.Image()))
}

// FlipHorizontal mirrors each row. Dimensions are unchanged and a second
// application restores the original buffer exactly.
func FlipHorizontal(b *buffer.Buffer) *buffer.Buffer {
	return buffer.FromImage(imaging.FlipH(b.Image()))
}
