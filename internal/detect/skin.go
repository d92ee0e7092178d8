package detect

import (
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ozanyurt/darkroom/internal/buffer"
)

// SkinDetector finds face-like regions by grouping skin-toned pixels into
// connected components and filtering their bounding boxes.
type SkinDetector struct {
	// MinAreaFrac is the minimum component bounding-box area as a fraction
	// of the image area. Components smaller than this are treated as noise.
	// Zero selects the default of 0.5%.
	MinAreaFrac float64

	// MinFillFrac is the minimum share of skin pixels inside a component's
	// bounding box. Zero selects the default of 25%.
	MinFillFrac float64
}

const (
	defaultMinAreaFrac = 0.005
	defaultMinFillFrac = 0.25

	// Aspect-ratio gate for a face bounding box (width/height).
	minFaceAspect = 0.4
	maxFaceAspect = 2.5
)

// Detect implements the Detector interface.
//
// The classifier runs in HSV space: skin hues sit near the red end of the
// wheel with moderate saturation and enough brightness to rule out shadow
// noise. Components are grown with a 4-connected flood fill, mirroring the
// contour grouping used for shape detection, then gated on area, fill ratio
// and aspect ratio. Regions are returned largest-first.
func (d *SkinDetector) Detect(b *buffer.Buffer) []Region {
	if b.Empty() {
		return nil
	}
	w, h := b.Width, b.Height

	minArea := d.MinAreaFrac
	if minArea <= 0 {
		minArea = defaultMinAreaFrac
	}
	minFill := d.MinFillFrac
	if minFill <= 0 {
		minFill = defaultMinFillFrac
	}
	minAreaPx := int(minArea * float64(w*h))
	if minAreaPx < 16 {
		minAreaPx = 16
	}

	skin := make([]bool, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, bl := b.At(x, y)
			skin[y*w+x] = isSkinTone(r, g, bl)
		}
	}

	visited := make([]bool, w*h)
	var regions []Region

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			if !skin[idx] || visited[idx] {
				continue
			}

			// Flood fill one connected component, tracking its bounding
			// box and pixel count.
			minX, minY, maxX, maxY := x, y, x, y
			count := 0
			stack := []int{idx}
			visited[idx] = true
			for len(stack) > 0 {
				cur := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				cx, cy := cur%w, cur/w
				count++
				if cx < minX {
					minX = cx
				}
				if cx > maxX {
					maxX = cx
				}
				if cy < minY {
					minY = cy
				}
				if cy > maxY {
					maxY = cy
				}
				for _, n := range [4]int{cur - 1, cur + 1, cur - w, cur + w} {
					if n < 0 || n >= w*h {
						continue
					}
					// reject horizontal wrap-around
					if (n == cur-1 && cx == 0) || (n == cur+1 && cx == w-1) {
						continue
					}
					if skin[n] && !visited[n] {
						visited[n] = true
						stack = append(stack, n)
					}
				}
			}

			reg := Region{X1: minX, Y1: minY, X2: maxX + 1, Y2: maxY + 1}
			if reg.Area() < minAreaPx {
				continue
			}
			if float64(count)/float64(reg.Area()) < minFill {
				continue
			}
			aspect := float64(reg.Width()) / float64(reg.Height())
			if aspect < minFaceAspect || aspect > maxFaceAspect {
				continue
			}
			regions = append(regions, reg)
		}
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Area() > regions[j].Area()
	})
	return regions
}

// isSkinTone classifies one RGB sample as skin-colored.
func isSkinTone(r, g, b uint8) bool {
	c := colorful.Color{
		R: float64(r) / 255.0,
		G: float64(g) / 255.0,
		B: float64(b) / 255.0,
	}
	hue, sat, val := c.Hsv()
	if val < 0.25 || sat < 0.12 || sat > 0.78 {
		return false
	}
	return hue <= 50 || hue >= 340
}
