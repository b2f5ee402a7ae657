package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"strconv"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// DefaultOverlayColor is the pink used for all overlay marks.
var DefaultOverlayColor = color.RGBA{R: 255, G: 100, B: 200, A: 255}

// CloneFrame returns a drawable copy of a frame. Overlays are always drawn on
// a copy so the frame handed to segmentation is never modified.
func CloneFrame(img image.Image) *image.NRGBA {
	return imaging.Clone(img)
}

// DrawRect draws a 1-pixel rectangle outline. Pixels outside the image are
// skipped.
func DrawRect(img draw.Image, r image.Rectangle, c color.Color) {
	if r.Empty() {
		return
	}
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X-1, r.Max.Y-1
	DrawLine(img, x0, y0, x1, y0, c)
	DrawLine(img, x0, y1, x1, y1, c)
	DrawLine(img, x0, y0, x0, y1, c)
	DrawLine(img, x1, y0, x1, y1, c)
}

// DrawLine draws a 1-pixel line using Bresenham's algorithm.
func DrawLine(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	bounds := img.Bounds()
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy

	for {
		if (image.Point{X: x0, Y: y0}).In(bounds) {
			img.Set(x0, y0, c)
		}
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawArrow draws a line from (x0, y0) to (x1, y1) with a head at the end.
// The head length is 10% of the line length, at least 3 pixels.
func DrawArrow(img draw.Image, x0, y0, x1, y1 int, c color.Color) {
	DrawLine(img, x0, y0, x1, y1, c)

	length := math.Hypot(float64(x1-x0), float64(y1-y0))
	if length == 0 {
		return
	}
	head := math.Max(3, length*0.1)
	angle := math.Atan2(float64(y1-y0), float64(x1-x0))
	for _, side := range []float64{-math.Pi / 4, math.Pi / 4} {
		hx := x1 - int(math.Round(head*math.Cos(angle+side)))
		hy := y1 - int(math.Round(head*math.Sin(angle+side)))
		DrawLine(img, x1, y1, hx, hy, c)
	}
}

// DrawText writes a single line of text with its baseline at (x, y) using a
// fixed 7x13 bitmap face.
func DrawText(img draw.Image, x, y int, text string, c color.Color) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// DrawTextContrast draws text twice, first in black offset by one pixel up
// and left, then in c, so it stays readable on bright backgrounds.
func DrawTextContrast(img draw.Image, x, y int, text string, c color.Color) {
	DrawText(img, x-1, y-1, text, color.Black)
	DrawText(img, x, y, text, c)
}

// ParseHexColor parses a hex color string like "#FF0000" or "#FF000080".
func ParseHexColor(hex string) (color.RGBA, error) {
	if len(hex) == 0 {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.RGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.RGBA{R: r, G: g, B: b, A: a}, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
