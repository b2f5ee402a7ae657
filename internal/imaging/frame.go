package imaging

import (
	"errors"
	"fmt"
	"image"
	"reflect"
)

// ErrEmptyFrame is returned for nil frames or frames with no pixels.
var ErrEmptyFrame = errors.New("empty frame")

// CheckFrame validates a frame before processing.
//
// Returns ErrEmptyFrame for a nil image, a nil pointer wrapped in the
// interface (such as the *image.NRGBA FrameFromBGR returns on failure) or
// zero-sized bounds.
func CheckFrame(img image.Image) error {
	if img == nil {
		return ErrEmptyFrame
	}
	if v := reflect.ValueOf(img); v.Kind() == reflect.Pointer && v.IsNil() {
		return fmt.Errorf("%w: nil %T", ErrEmptyFrame, img)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return fmt.Errorf("%w: bounds %v", ErrEmptyFrame, b)
	}
	return nil
}

// FrameFromBGR wraps a raw camera buffer (width × height × 3 bytes, B, G, R
// order, row-major) into an opaque *image.NRGBA.
//
// Parameters:
//   - buf: Raw pixel bytes. Must be exactly width*height*3 long.
//   - width, height: Frame dimensions, both > 0.
//
// Returns:
//   - *image.NRGBA: A new image; buf is not retained.
//   - error: Non-nil if the dimensions are invalid or the buffer size does not
//     match.
func FrameFromBGR(buf []byte, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrEmptyFrame, width, height)
	}
	if want := width * height * 3; len(buf) != want {
		return nil, fmt.Errorf("malformed frame: got %d bytes, want %d for %dx%d", len(buf), want, width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, j := 0, 0; i < len(buf); i, j = i+3, j+4 {
		img.Pix[j] = buf[i+2]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i]
		img.Pix[j+3] = 0xff
	}
	return img, nil
}
