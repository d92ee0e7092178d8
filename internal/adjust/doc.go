// Package adjust implements the six parameterized tonal adjustments.
//
// Every function here is pure, total and deterministic: it reads one buffer,
// allocates the output, and clamps every sample into [0, 255]. A zero
// parameter is an exact identity for the five offset-style adjustments;
// white balance is closest to identity at its 6500 K default.
//
// # Formulas
//
//   - Brightness v ∈ [-100, 100]:  out = in + v
//   - Contrast   v ∈ [-100, 100]:  out = 128 + (in-128)·(1 + v/100)
//   - Saturation v ∈ [-100, 100]:  out = lum + (in-lum)·(1 + v/100), with lum
//     the pixel's Rec. 709 luminance
//   - White balance k ∈ [2000, 10000]: per-channel gains from a fixed
//     Kelvin→gain table, linearly interpolated between entries
//   - Shadows    v ∈ [-100, 100]:  out = in + v·w for pixels with lum < 85,
//     w = (85-lum)/85, so the lift tapers to zero at the threshold
//   - Highlights v ∈ [-100, 100]:  out = in - v·w for pixels with lum > 170,
//     w = (lum-170)/85; positive values recover (compress) highlights
//
// The engine never reorders operations by kind: Apply handles one operation
// against whatever buffer state the previous operations produced, and the
// history replay drives it strictly in append order.
package adjust
