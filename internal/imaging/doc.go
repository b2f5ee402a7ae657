// Package imaging provides the pixel-level primitives of the target pipeline.
//
// The segmentation adapters in package detection compose these functions in a
// fixed order: Downscale, Normalize, Blur, color conversion (Convert or
// ToBGR), InRange and FindRegions. Each step's output is only valid input to
// the next one. The package also provides the diagnostics helpers used around
// that sequence: the center Probe, overlay drawing and PNG encoding.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - Rectangles follow image.Rectangle: Min inclusive, Max exclusive
//
// # Channel Layout
//
// Color conversions return Channels, an interleaved 3-byte-per-pixel buffer
// using OpenCV's 8-bit conventions:
//   - HSV: H 0-180, S 0-255, V 0-255
//   - HLS: H 0-180, L 0-255, S 0-255
//   - BGR: B, G, R 0-255
//
// Tuning bounds are expressed on the same scales so values copied from an
// OpenCV-based tool keep their meaning.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. All other functions are
// stateless and never modify their input images.
//
// # Error Handling
//
// Functions that accept frames from outside the process (FrameFromBGR,
// CheckFrame) return errors for malformed input such as empty bounds or a
// buffer whose length does not match width × height × 3. The remaining
// primitives assume a frame that already passed CheckFrame.
package imaging
