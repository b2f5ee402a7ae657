package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorSpace identifies the channel layout of a Channels buffer.
type ColorSpace int

const (
	// SpaceHSV is hue, saturation, value.
	SpaceHSV ColorSpace = iota
	// SpaceHLS is hue, lightness, saturation.
	SpaceHLS
	// SpaceBGR is blue, green, red.
	SpaceBGR
)

// String returns the lower-case space name.
func (s ColorSpace) String() string {
	switch s {
	case SpaceHSV:
		return "hsv"
	case SpaceHLS:
		return "hls"
	case SpaceBGR:
		return "bgr"
	default:
		return fmt.Sprintf("space(%d)", int(s))
	}
}

// ChannelNames returns the one-letter channel labels used in overlay text.
func (s ColorSpace) ChannelNames() [3]string {
	switch s {
	case SpaceHLS:
		return [3]string{"H", "L", "S"}
	case SpaceBGR:
		return [3]string{"B", "G", "R"}
	default:
		return [3]string{"H", "S", "V"}
	}
}

// Channels is an interleaved 3-channel, 8-bit pixel buffer.
type Channels struct {
	Width  int
	Height int
	Space  ColorSpace
	// Pix holds 3 bytes per pixel, row-major.
	Pix []uint8
}

// At returns the three channel values at (x, y). No bounds checking is
// performed; caller must ensure coordinates are valid.
func (c *Channels) At(x, y int) (uint8, uint8, uint8) {
	i := (y*c.Width + x) * 3
	return c.Pix[i], c.Pix[i+1], c.Pix[i+2]
}

// Convert converts an image into the requested color space.
func Convert(img image.Image, space ColorSpace) *Channels {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := &Channels{Width: w, Height: h, Space: space, Pix: make([]uint8, w*h*3)}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl := rgb8(img, x, y)
			switch space {
			case SpaceBGR:
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = bl, g, r
			case SpaceHLS:
				hue, s, l := rgbColor(r, g, bl).Hsl()
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hue8(hue), unit8(l), unit8(s)
			default:
				hue, s, v := rgbColor(r, g, bl).Hsv()
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = hue8(hue), unit8(s), unit8(v)
			}
			i += 3
		}
	}
	return out
}

// ToBGR repacks an image as B, G, R bytes.
func ToBGR(img image.Image) *Channels { return Convert(img, SpaceBGR) }

// rgb8 reads 8-bit RGB, with fast paths for the concrete types the pipeline
// produces.
func rgb8(img image.Image, x, y int) (uint8, uint8, uint8) {
	switch m := img.(type) {
	case *image.NRGBA:
		i := m.PixOffset(x, y)
		return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
	case *image.RGBA:
		i := m.PixOffset(x, y)
		return m.Pix[i], m.Pix[i+1], m.Pix[i+2]
	default:
		r, g, b, _ := img.At(x, y).RGBA()
		return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
	}
}

func rgbColor(r, g, b uint8) colorful.Color {
	return colorful.Color{R: float64(r) / 255.0, G: float64(g) / 255.0, B: float64(b) / 255.0}
}

// hue8 maps degrees (0-360) onto OpenCV's 0-180 byte scale.
func hue8(deg float64) uint8 {
	v := math.Round(deg / 2)
	if v >= 180 {
		v -= 180
	}
	if v < 0 {
		v = 0
	}
	return uint8(v)
}

// unit8 maps 0-1 onto 0-255.
func unit8(f float64) uint8 {
	v := math.Round(f * 255)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
