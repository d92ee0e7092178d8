// Package effect implements the discrete, parameterless visual effects.
//
// Each effect is a pure function from one buffer to a new buffer. Geometric
// effects (rotate, flip) are the only ones that change dimensions; everything
// downstream of them — including history replay — must tolerate the new
// geometry, which works out naturally because every effect reads dimensions
// from its input buffer.
//
// Geometric transforms delegate to disintegration/imaging and the sharpen
// kernel runs through anthonynsimon/bild; the remaining effects are fixed
// single-pass pixel loops with constants inherited from the editor this
// module models:
//
//   - orange tone: R+12, G+6
//   - red tone:    R+18
//   - blue tone:   B+18
//   - brighten:    +15 on all channels
//   - vignette:    gain 1 - 0.4·(d/dmax)², d measured from the image center
//   - noise reduction: bilateral filter, radius 2, σ_color 75, σ_space 75
package effect
