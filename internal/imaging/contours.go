package imaging

import (
	"image"
)

// Region is one connected area of set mask pixels.
type Region struct {
	// Area is the number of pixels in the region.
	Area int

	// Bounds is the tight bounding box (Min inclusive, Max exclusive), in
	// mask coordinates.
	Bounds image.Rectangle
}

// FindRegions extracts every 8-connected region of set pixels from a mask.
//
// There is no containment hierarchy: a blob inside the hole of a ring is
// reported as its own region next to the ring. Regions are returned in
// raster order of their first pixel. No size filtering is applied.
func FindRegions(mask *image.Gray) []Region {
	b := mask.Bounds()
	width, height := b.Dx(), b.Dy()
	visited := make([]bool, width*height)
	regions := make([]Region, 0)

	set := func(x, y int) bool {
		return mask.Pix[y*mask.Stride+x] != 0
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if visited[y*width+x] || !set(x, y) {
				continue
			}
			regions = append(regions, floodFill(set, visited, x, y, width, height))
		}
	}

	for i := range regions {
		regions[i].Bounds = regions[i].Bounds.Add(b.Min)
	}
	return regions
}

// floodFill grows one region from a seed pixel.
//
// Uses an explicit stack (not recursion) so large blobs cannot overflow the
// goroutine stack. Marks pixels visited as it goes and tracks the area and
// bounding box instead of keeping the pixel list.
func floodFill(set func(x, y int) bool, visited []bool, startX, startY, width, height int) Region {
	stack := []image.Point{{X: startX, Y: startY}}
	visited[startY*width+startX] = true

	minX, minY := startX, startY
	maxX, maxY := startX, startY
	area := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		area++

		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}

		// 8-connected neighbors
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				nx, ny := p.X+dx, p.Y+dy
				if nx < 0 || nx >= width || ny < 0 || ny >= height {
					continue
				}
				idx := ny*width + nx
				if visited[idx] || !set(nx, ny) {
					continue
				}
				visited[idx] = true
				stack = append(stack, image.Point{X: nx, Y: ny})
			}
		}
	}

	return Region{
		Area:   area,
		Bounds: image.Rect(minX, minY, maxX+1, maxY+1),
	}
}
