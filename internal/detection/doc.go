// Package detection turns a camera frame into at most one target fix.
//
// A frame passes through three stages, each owned by this package:
//
//  1. Segmentation: a Segmenter finds every region whose color lies inside the
//     tuned ColorBound and reports it as a Candidate.
//  2. Selection: Select applies the acceptance bounds (area, aspect ratio,
//     fullness) and keeps the single largest candidate that passes.
//  3. Encoding: Encode turns the chosen Target into a (direction, distance)
//     Fix relative to the frame center.
//
// # Strategies
//
// Segmenters are a closed set chosen by name with New:
//
//   - "hsv": HSV threshold. The default.
//   - "hls": HLS threshold, tuned for bright retro-reflective tape.
//   - "pink": HLS threshold with bounds for saturated pink markers.
//   - "sector": Probes the frame center, picks one of four palette colors
//     (Blue, Green, Red, Yellow) in BGR and segments on that color.
//   - "opencv": The HSV threshold run through OpenCV. Only available when
//     built with -tags gocv.
//
// Every strategy downscales the frame by Options.Scale, stretches the
// intensities to the full 0-255 range, blurs, converts the color space,
// thresholds and extracts connected regions. Candidate boxes and areas are
// scaled back to full-frame coordinates before they are returned.
//
// # Coordinate System
//
// Boxes use the image convention: (X, Y) is the top-left corner, X grows to the
// right and Y grows downward. A Fix flips the vertical axis: positive Distance
// means the target is above the frame center.
//
// # Absence
//
// "No target" is a normal outcome. Select reports it with ok == false and
// Encode maps it to the neutral Fix (0, 0) with Valid unset.
package detection
