package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// DefaultBlurRadius is the Gaussian radius used when none is configured.
const DefaultBlurRadius = 1.5

// Downscale shrinks a frame by an integer factor to save CPU on the later
// steps. A factor of 1 or less returns an unscaled copy.
//
// The output is never smaller than 1x1.
func Downscale(img image.Image, factor int) *image.NRGBA {
	if factor <= 1 {
		return imaging.Clone(img)
	}
	b := img.Bounds()
	w := b.Dx() / factor
	h := b.Dy() / factor
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return imaging.Resize(img, w, h, imaging.Linear)
}

// Normalize stretches pixel intensities so the darkest channel value in the
// frame maps to 0 and the brightest to 255.
//
// All three color channels share one min/max (OpenCV NORM_MINMAX over a
// multi-channel image), which keeps hue intact while compensating for under-
// or over-exposed frames. A flat frame (min == max) is returned unchanged.
// Alpha is forced to opaque.
func Normalize(img *image.NRGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	copy(out.Pix, img.Pix)

	lo, hi := uint8(255), uint8(0)
	for i := 0; i < len(img.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := img.Pix[i+c]
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}

	span := int(hi) - int(lo)
	for i := 0; i < len(out.Pix); i += 4 {
		if span > 0 {
			for c := 0; c < 3; c++ {
				v := int(out.Pix[i+c]) - int(lo)
				out.Pix[i+c] = uint8((v*255 + span/2) / span)
			}
		}
		out.Pix[i+3] = 0xff
	}
	return out
}

// Blur applies a Gaussian blur.
//
// Sharp, well-focused frames have been seen to miss targets that slightly
// blurred frames detect, so the pipeline always blurs before thresholding.
// A radius of 0 or less falls back to DefaultBlurRadius.
func Blur(img image.Image, radius float64) *image.RGBA {
	if radius <= 0 {
		radius = DefaultBlurRadius
	}
	return blur.Gaussian(img, radius)
}

// resizeTo scales an image to an exact size for display output.
func resizeTo(img image.Image, w, h int) *image.NRGBA {
	return imaging.Resize(img, w, h, imaging.Lanczos)
}
