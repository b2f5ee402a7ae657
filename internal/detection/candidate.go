package detection

import (
	"image"
)

// Box is an axis-aligned bounding box in full-frame pixel coordinates.
type Box struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect returns the box as an image.Rectangle.
func (b Box) Rect() image.Rectangle {
	return image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
}

// Center returns the box center using integer division.
func (b Box) Center() image.Point {
	return image.Point{X: b.X + b.Width/2, Y: b.Y + b.Height/2}
}

// Candidate is one connected region reported by a Segmenter.
type Candidate struct {
	// Area is the region's area in full-frame square pixels.
	Area float64 `json:"area"`

	// Box is the region's bounding box.
	Box Box `json:"box"`
}

// Target is the candidate chosen by Select, with the derived measures it was
// accepted on.
type Target struct {
	Box  Box     `json:"box"`
	Area float64 `json:"area"`

	// Aspect is Width / Height.
	Aspect float64 `json:"aspect"`

	// Fullness is the percentage (0-100) of the bounding box covered by the
	// region.
	Fullness float64 `json:"fullness"`
}

// boxFromRect converts a processed-frame rectangle into a full-frame Box.
func boxFromRect(r image.Rectangle, scale int) Box {
	return Box{
		X:      r.Min.X * scale,
		Y:      r.Min.Y * scale,
		Width:  r.Dx() * scale,
		Height: r.Dy() * scale,
	}
}
