// Package histogram computes frequency distributions over a pixel buffer.
//
// A Histogram is always derived on demand and never stored: it is a pure
// read-only view of whatever buffer it was computed from. Counts are exact,
// so each channel's bins sum to the pixel count of the source buffer.
package histogram

import (
	"github.com/ozanyurt/darkroom/internal/buffer"
)

// Bins is the number of buckets per distribution, one per 8-bit sample value.
const Bins = 256

// Histogram holds per-channel and luminance frequency counts for one buffer.
type Histogram struct {
	// R, G and B count how many pixels hold each sample value in the
	// respective channel.
	R [Bins]int `json:"r"`
	G [Bins]int `json:"g"`
	B [Bins]int `json:"b"`

	// Lum counts pixels per Rec. 709 luminance bin, rounded to the nearest
	// integer.
	Lum [Bins]int `json:"lum"`

	// Total is the number of pixels in the source buffer. Every one of the
	// four distributions sums to exactly this value.
	Total int `json:"total"`
}

// Compute builds the histogram of a buffer in a single O(pixel count) pass.
func Compute(b *buffer.Buffer) *Histogram {
	h := &Histogram{}
	if b == nil {
		return h
	}
	for i := 0; i < len(b.Pix); i += buffer.Channels {
		r := b.Pix[i]
		g := b.Pix[i+1]
		bl := b.Pix[i+2]
		h.R[r]++
		h.G[g]++
		h.B[bl]++
		h.Lum[buffer.LuminanceBin(r, g, bl)]++
		h.Total++
	}
	return h
}

// LumPercentile returns the smallest luminance value at or below which at
// least p percent of the pixels fall. p is clamped to [0, 100]; an empty
// histogram yields 0.
func (h *Histogram) LumPercentile(p float64) int {
	if h.Total == 0 {
		return 0
	}
	if p < 0 {
		p = 0
	}
	if p > 100 {
		p = 100
	}
	target := p / 100.0 * float64(h.Total)
	cum := 0
	for v := 0; v < Bins; v++ {
		cum += h.Lum[v]
		if float64(cum) >= target && cum > 0 {
			return v
		}
	}
	return Bins - 1
}
