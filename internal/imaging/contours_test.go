package imaging

import (
	"image"
	"testing"
)

func maskFromRows(rows ...string) *image.Gray {
	mask := image.NewGray(image.Rect(0, 0, len(rows[0]), len(rows)))
	for y, row := range rows {
		for x, ch := range row {
			if ch == '#' {
				mask.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask
}

func TestFindRegions_Separate(t *testing.T) {
	mask := maskFromRows(
		"##......",
		"##......",
		"....###.",
		"....###.",
	)

	regions := FindRegions(mask)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2", len(regions))
	}

	if regions[0].Area != 4 || regions[0].Bounds != image.Rect(0, 0, 2, 2) {
		t.Errorf("region 0 = %+v", regions[0])
	}
	if regions[1].Area != 6 || regions[1].Bounds != image.Rect(4, 2, 7, 4) {
		t.Errorf("region 1 = %+v", regions[1])
	}
}

func TestFindRegions_DiagonalIsConnected(t *testing.T) {
	mask := maskFromRows(
		"#..",
		".#.",
		"..#",
	)

	regions := FindRegions(mask)
	if len(regions) != 1 {
		t.Fatalf("got %d regions, want 1", len(regions))
	}
	if regions[0].Area != 3 || regions[0].Bounds != image.Rect(0, 0, 3, 3) {
		t.Errorf("region = %+v", regions[0])
	}
}

func TestFindRegions_NestedReportedFlat(t *testing.T) {
	mask := maskFromRows(
		"#######",
		"#.....#",
		"#..#..#",
		"#.....#",
		"#######",
	)

	regions := FindRegions(mask)
	if len(regions) != 2 {
		t.Fatalf("got %d regions, want 2 (ring and inner dot)", len(regions))
	}
	if regions[0].Area != 20 {
		t.Errorf("ring area = %d, want 20", regions[0].Area)
	}
	if regions[1].Area != 1 || regions[1].Bounds != image.Rect(3, 2, 4, 3) {
		t.Errorf("inner region = %+v", regions[1])
	}
}

func TestFindRegions_Empty(t *testing.T) {
	mask := maskFromRows("....", "....")
	if regions := FindRegions(mask); len(regions) != 0 {
		t.Errorf("got %d regions from an empty mask", len(regions))
	}
}

func TestFindRegions_LargeBlob(t *testing.T) {
	mask := image.NewGray(image.Rect(0, 0, 320, 240))
	for i := range mask.Pix {
		mask.Pix[i] = 255
	}

	regions := FindRegions(mask)
	if len(regions) != 1 || regions[0].Area != 320*240 {
		t.Fatalf("full mask regions = %+v", regions)
	}
}
