// Package detect locates face-like regions in a pixel buffer.
//
// The detector is deliberately a narrow interface: portrait compositing
// treats it as a black-box oracle, so any implementation — the built-in
// skin-tone heuristic, a bridge to an external model, or a test stub — can be
// injected without touching the compositing code.
//
// # Built-in Detector
//
// SkinDetector is a classical, dependency-light heuristic:
//
//  1. Classify every pixel as skin or not using hue/saturation/value ranges
//     (RGB is converted to HSV with go-colorful)
//  2. Group skin pixels into connected components with a flood fill
//  3. Keep components whose bounding box passes area and aspect-ratio checks
//
// The result is a list of bounding regions sorted largest-first. It is a
// coarse detector — good enough to anchor a background blur, not a
// recognition system. Photographs with large skin-toned backdrops (sand,
// wood) will over-detect; callers needing better precision should inject a
// model-backed Detector.
package detect
