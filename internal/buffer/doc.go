// Package buffer defines the owned pixel representation every other package
// operates on.
//
// A Buffer is a width×height grid of 8-bit RGB samples, stored row-major with
// three bytes per pixel. Buffers are immutable by convention: editing
// operations never write into their input, they allocate and return a fresh
// Buffer. The two buffers a document owns ("original" and the rendered cache)
// rely on this convention, so nothing in this module mutates a Buffer after
// it has been handed out.
//
// # Coordinate System
//
// Coordinates are 0-based with the origin at the top-left corner:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//
// # Interop
//
// FromImage converts any image.Image (alpha is dropped, 16-bit samples are
// truncated to 8-bit), and Buffer.Image converts back to *image.NRGBA with
// opaque alpha. These two functions are the only boundary between the owned
// representation and the disintegration/imaging and anthonynsimon/bild
// libraries used elsewhere.
//
// # Luminance
//
// Luminance uses the Rec. 709 weights (0.2126 R + 0.7152 G + 0.0722 B).
// Every component that needs a single brightness value per pixel (histogram,
// saturation blend, shadows/highlights gating, clarity) goes through the
// helpers here so the weighting is fixed in exactly one place.
package buffer
