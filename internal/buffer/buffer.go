package buffer

import (
	"image"
	"math"
)

// Channels is the number of samples per pixel. Buffers carry RGB only;
// alpha is a display concern handled by the UI collaborator.
const Channels = 3

// Buffer is an owned width×height grid of 8-bit RGB samples.
//
// Pix holds the samples row-major, three bytes per pixel, so the sample for
// channel c of pixel (x, y) lives at Pix[(y*Width+x)*3+c]. A Buffer must be
// treated as read-only once shared; operations return new Buffers.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// New returns a zeroed (black) buffer of the given dimensions.
func New(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*Channels),
	}
}

// NewUniform returns a buffer filled with a single color.
func NewUniform(width, height int, r, g, b uint8) *Buffer {
	buf := New(width, height)
	for i := 0; i < len(buf.Pix); i += Channels {
		buf.Pix[i+0] = r
		buf.Pix[i+1] = g
		buf.Pix[i+2] = b
	}
	return buf
}

// FromImage converts any image.Image into an owned Buffer.
//
// Samples are reduced to 8 bits per channel; the alpha channel, if present,
// is discarded. The result never aliases the source image's storage.
func FromImage(img image.Image) *Buffer {
	if img == nil {
		return nil
	}
	bounds := img.Bounds()
	buf := New(bounds.Dx(), bounds.Dy())
	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			// 16-bit [0,65535] to 8-bit
			buf.Pix[i+0] = uint8(r >> 8)
			buf.Pix[i+1] = uint8(g >> 8)
			buf.Pix[i+2] = uint8(b >> 8)
			i += Channels
		}
	}
	return buf
}

// Image converts the buffer to a *image.NRGBA with opaque alpha, the format
// the imaging and bild libraries consume.
func (b *Buffer) Image() *image.NRGBA {
	out := image.NewNRGBA(image.Rect(0, 0, b.Width, b.Height))
	si := 0
	for di := 0; di < len(out.Pix); di += 4 {
		out.Pix[di+0] = b.Pix[si+0]
		out.Pix[di+1] = b.Pix[si+1]
		out.Pix[di+2] = b.Pix[si+2]
		out.Pix[di+3] = 0xff
		si += Channels
	}
	return out
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	out := &Buffer{
		Width:  b.Width,
		Height: b.Height,
		Pix:    make([]uint8, len(b.Pix)),
	}
	copy(out.Pix, b.Pix)
	return out
}

// Empty reports whether the buffer holds no pixels.
func (b *Buffer) Empty() bool {
	return b == nil || b.Width <= 0 || b.Height <= 0 || len(b.Pix) == 0
}

// Offset returns the index of pixel (x, y) within Pix.
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * Channels
}

// At returns the RGB samples of pixel (x, y). Coordinates must be in bounds.
func (b *Buffer) At(x, y int) (r, g, bl uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2]
}

// Set writes the RGB samples of pixel (x, y). Only the producer of a not yet
// shared buffer may call this.
func (b *Buffer) Set(x, y int, r, g, bl uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
}

// Equal reports whether two buffers have identical dimensions and samples.
func Equal(a, b *Buffer) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Width != b.Width || a.Height != b.Height || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// Luminance returns the Rec. 709 luminance of an RGB sample as a float in
// [0, 255].
func Luminance(r, g, b uint8) float64 {
	return 0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)
}

// LuminanceBin returns the luminance rounded to the nearest integer bin in
// [0, 255].
func LuminanceBin(r, g, b uint8) int {
	bin := int(math.Round(Luminance(r, g, b)))
	if bin < 0 {
		return 0
	}
	if bin > 255 {
		return 255
	}
	return bin
}

// Clamp rounds a float sample into the legal [0, 255] range.
func Clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}
