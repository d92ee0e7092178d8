package enhance

import (
	"testing"

	"github.com/ozanyurt/darkroom/internal/adjust"
	"github.com/ozanyurt/darkroom/internal/buffer"
)

// fullRangeBuffer spans luminance 0..255: half black, half white.
func fullRangeBuffer() *buffer.Buffer {
	buf := buffer.New(2, 50)
	for y := 0; y < 50; y++ {
		buf.Set(1, y, 255, 255, 255)
	}
	return buf
}

// lowContrastBuffer compresses everything into a narrow gray band.
func lowContrastBuffer() *buffer.Buffer {
	buf := buffer.New(100, 1)
	for x := 0; x < 100; x++ {
		v := uint8(100 + x/2) // luminance 100..149
		buf.Set(x, 0, v, v, v)
	}
	return buf
}

func TestDeriveWellExposedIsNoOp(t *testing.T) {
	p := Derive(fullRangeBuffer())
	if !p.IsNoOp() {
		t.Errorf("full-range image should derive (0,0), got %+v", p)
	}
}

func TestDeriveUniformIsNoOp(t *testing.T) {
	p := Derive(buffer.NewUniform(10, 10, 128, 128, 128))
	if !p.IsNoOp() {
		t.Errorf("uniform image should derive (0,0), got %+v", p)
	}
}

func TestDeriveEmptyIsNoOp(t *testing.T) {
	if p := Derive(nil); !p.IsNoOp() {
		t.Errorf("nil buffer should derive (0,0), got %+v", p)
	}
}

func TestDeriveLowContrastStretches(t *testing.T) {
	p := Derive(lowContrastBuffer())
	if p.IsNoOp() {
		t.Fatal("low-contrast image should derive a non-trivial pair")
	}
	if p.Contrast != 100 {
		// span is ~49 levels, the raw factor far exceeds the legal range
		t.Errorf("contrast: got %v, want clamp at 100", p.Contrast)
	}
	if p.Brightness < -100 || p.Brightness > 100 {
		t.Errorf("brightness out of legal range: %v", p.Brightness)
	}
}

func TestDeriveStretchesTowardFullRange(t *testing.T) {
	// Band 64..192 around the midpoint: span 128, factor ~2, both derived
	// values stay inside the legal range, so the algebra holds exactly.
	buf := buffer.New(129, 1)
	for x := 0; x < 129; x++ {
		v := uint8(64 + x)
		buf.Set(x, 0, v, v, v)
	}

	p := Derive(buf)
	if p.IsNoOp() {
		t.Fatal("narrow band should derive a non-trivial pair")
	}

	out := adjust.Contrast(adjust.Brightness(buf, p.Brightness), p.Contrast)

	// The darkest band value must land at (or within rounding of) 0 and
	// the brightest at 255.
	lo, _, _ := out.At(0, 0)
	hi, _, _ := out.At(128, 0)
	if lo > 2 {
		t.Errorf("low percentile should stretch to black: got %d", lo)
	}
	if hi < 253 {
		t.Errorf("high percentile should stretch to white: got %d", hi)
	}
}
