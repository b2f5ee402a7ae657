package detection

import (
	"image"

	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// UnknownColor is the sector label when the center matches no palette color.
const UnknownColor = "Unknown"

// PaletteColor is one named BGR range of the sector palette.
type PaletteColor struct {
	Name  string
	Bound tuning.ColorBound
}

// SectorPalette holds the four control-panel colors as BGR ranges, checked in
// order. The first match wins.
var SectorPalette = []PaletteColor{
	{"Blue", tuning.ColorBound{Min: [3]float64{120, 0, 0}, Max: [3]float64{255, 255, 140}}},
	{"Green", tuning.ColorBound{Min: [3]float64{0, 130, 0}, Max: [3]float64{115, 255, 140}}},
	{"Red", tuning.ColorBound{Min: [3]float64{0, 0, 140}, Max: [3]float64{75, 50, 255}}},
	{"Yellow", tuning.ColorBound{Min: [3]float64{0, 165, 190}, Max: [3]float64{125, 255, 255}}},
}

// MatchPalette returns the index of the first palette color containing the
// BGR value, or -1.
func MatchPalette(bgr [3]int) int {
	for i, p := range SectorPalette {
		if p.Bound.Contains(float64(bgr[0]), float64(bgr[1]), float64(bgr[2])) {
			return i
		}
	}
	return -1
}

// sectorSegmenter segments on whichever palette color sits at the frame
// center. The tuned BGR bound narrows the palette range; the default bound is
// the full 0-255 cube and narrows nothing.
type sectorSegmenter struct {
	opts Options
}

func newSectorSegmenter(opts Options) *sectorSegmenter {
	return &sectorSegmenter{opts: opts}
}

func (s *sectorSegmenter) Name() string { return StrategySector }
func (s *sectorSegmenter) Keys() tuning.ChannelKeys { return tuning.BGRKeys }

func (s *sectorSegmenter) DefaultBound() tuning.ColorBound {
	return tuning.ColorBound{Max: [3]float64{255, 255, 255}}
}

func (s *sectorSegmenter) Segment(frame image.Image, bound tuning.ColorBound) (Segmentation, error) {
	seg := Segmentation{Space: imaging.SpaceBGR, Label: UnknownColor, LabelIndex: -1}

	prepared, err := prepare(frame, s.opts)
	if err != nil {
		return seg, err
	}

	ch := imaging.ToBGR(prepared)
	seg.Probe = imaging.ProbeCenter(ch, 1)

	idx := MatchPalette(seg.Probe)
	if idx < 0 {
		return seg, nil
	}
	seg.Label = SectorPalette[idx].Name
	seg.LabelIndex = idx

	r := intersect(SectorPalette[idx].Bound, bound)
	mask := imaging.InRange(ch, r.Min, r.Max)
	if imaging.CountNonZero(mask) == 0 {
		return seg, nil
	}
	seg.Candidates = regionsToCandidates(imaging.FindRegions(mask), s.opts.scale())
	return seg, nil
}

// intersect narrows a to the part that also lies inside b. The result may be
// inverted, which selects nothing.
func intersect(a, b tuning.ColorBound) tuning.ColorBound {
	out := a
	for i := 0; i < 3; i++ {
		if b.Min[i] > out.Min[i] {
			out.Min[i] = b.Min[i]
		}
		if b.Max[i] < out.Max[i] {
			out.Max[i] = b.Max[i]
		}
	}
	return out
}
