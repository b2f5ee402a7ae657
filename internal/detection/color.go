package detection

import (
	"image"

	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// colorSegmenter thresholds a single color space against the tuned bound.
type colorSegmenter struct {
	name     string
	space    imaging.ColorSpace
	keys     tuning.ChannelKeys
	defaults tuning.ColorBound
	opts     Options
}

func newColorSegmenter(name string, space imaging.ColorSpace, keys tuning.ChannelKeys, defaults tuning.ColorBound, opts Options) *colorSegmenter {
	return &colorSegmenter{name: name, space: space, keys: keys, defaults: defaults, opts: opts}
}

func (s *colorSegmenter) Name() string { return s.name }
func (s *colorSegmenter) Keys() tuning.ChannelKeys { return s.keys }
func (s *colorSegmenter) DefaultBound() tuning.ColorBound { return s.defaults }

func (s *colorSegmenter) Segment(frame image.Image, bound tuning.ColorBound) (Segmentation, error) {
	prepared, err := prepare(frame, s.opts)
	if err != nil {
		return Segmentation{Space: s.space, LabelIndex: -1}, err
	}

	ch := imaging.Convert(prepared, s.space)
	seg := Segmentation{
		Space:      s.space,
		Probe:      imaging.ProbeCenter(ch, 0),
		LabelIndex: -1,
	}

	mask := imaging.InRange(ch, bound.Min, bound.Max)
	if imaging.CountNonZero(mask) == 0 {
		return seg, nil
	}
	seg.Candidates = regionsToCandidates(imaging.FindRegions(mask), s.opts.scale())
	return seg, nil
}
