package imaging

import (
	"image"
)

// InRange builds a binary mask from a Channels buffer.
//
// A pixel is set (255) iff each of its three channel values lies within
// [lo[i], hi[i]], inclusive on both ends. Inverted ranges (lo > hi) select
// nothing.
func InRange(ch *Channels, lo, hi [3]float64) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, ch.Width, ch.Height))
	for i, j := 0, 0; i < len(ch.Pix); i, j = i+3, j+1 {
		c1, c2, c3 := float64(ch.Pix[i]), float64(ch.Pix[i+1]), float64(ch.Pix[i+2])
		if lo[0] <= c1 && c1 <= hi[0] &&
			lo[1] <= c2 && c2 <= hi[1] &&
			lo[2] <= c3 && c3 <= hi[2] {
			mask.Pix[j] = 255
		}
	}
	return mask
}

// CountNonZero returns the number of set pixels in a mask.
func CountNonZero(mask *image.Gray) int {
	n := 0
	for _, v := range mask.Pix {
		if v != 0 {
			n++
		}
	}
	return n
}
