package detection

import (
	"fmt"
	"image"
	"sort"

	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// Strategy names accepted by New.
const (
	StrategyHSV    = "hsv"
	StrategyHLS    = "hls"
	StrategyPink   = "pink"
	StrategySector = "sector"
	StrategyOpenCV = "opencv"
)

// DefaultScale is the downscale factor applied before segmentation.
const DefaultScale = 2

// Options control the shared preprocessing of every strategy.
type Options struct {
	// Scale is the integer downscale factor. Values below 1 mean 1.
	Scale int

	// BlurRadius is the Gaussian radius in processed-frame pixels. 0 selects
	// imaging.DefaultBlurRadius.
	BlurRadius float64
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Scale: DefaultScale, BlurRadius: imaging.DefaultBlurRadius}
}

func (o Options) scale() int {
	if o.Scale < 1 {
		return 1
	}
	return o.Scale
}

// Segmentation is the result of segmenting one frame.
type Segmentation struct {
	// Candidates holds every connected region inside the color bound, in
	// full-frame coordinates. Empty when nothing matched.
	Candidates []Candidate

	// Space is the color space the frame was thresholded in.
	Space imaging.ColorSpace

	// Probe is the color at the processed-frame center, in Space.
	Probe [3]int

	// Label names the palette color the sector strategy locked onto, or
	// "Unknown". Empty for the other strategies.
	Label string

	// LabelIndex is the palette index behind Label, -1 when no palette color
	// matched.
	LabelIndex int
}

// Largest returns the area of the largest candidate, or 0.
func (s Segmentation) Largest() float64 {
	max := 0.0
	for _, c := range s.Candidates {
		if c.Area > max {
			max = c.Area
		}
	}
	return max
}

// Segmenter extracts candidate regions from a frame.
//
// Implementations never modify the frame. Segment returns an error only for
// frames that cannot be processed at all (nil or empty); a frame with no
// matching pixels yields an empty Segmentation.
type Segmenter interface {
	// Name returns the strategy name.
	Name() string

	// Keys returns the tuning keys holding this strategy's color bound.
	Keys() tuning.ChannelKeys

	// DefaultBound returns the compiled color bound for this strategy.
	DefaultBound() tuning.ColorBound

	// Segment runs the strategy on one frame.
	Segment(frame image.Image, bound tuning.ColorBound) (Segmentation, error)
}

type factory func(Options) (Segmenter, error)

var strategies = map[string]factory{
	StrategyHSV: func(o Options) (Segmenter, error) {
		return newColorSegmenter(StrategyHSV, imaging.SpaceHSV, tuning.HSVKeys, tuning.DefaultHSV(), o), nil
	},
	StrategyHLS: func(o Options) (Segmenter, error) {
		return newColorSegmenter(StrategyHLS, imaging.SpaceHLS, tuning.HLSKeys, tuning.DefaultHLS(), o), nil
	},
	StrategyPink: func(o Options) (Segmenter, error) {
		return newColorSegmenter(StrategyPink, imaging.SpaceHLS, tuning.HLSKeys, tuning.DefaultPinkHLS(), o), nil
	},
	StrategySector: func(o Options) (Segmenter, error) {
		return newSectorSegmenter(o), nil
	},
	StrategyOpenCV: newOpenCVSegmenter,
}

// Strategies lists the strategy names New accepts, sorted.
func Strategies() []string {
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New creates the segmenter for a strategy name.
func New(strategy string, opts Options) (Segmenter, error) {
	f, ok := strategies[strategy]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q (want one of %v)", strategy, Strategies())
	}
	return f(opts)
}

// prepare runs the preprocessing shared by the pure-Go strategies:
// downscale, min-max normalize, Gaussian blur.
func prepare(frame image.Image, opts Options) (image.Image, error) {
	if err := imaging.CheckFrame(frame); err != nil {
		return nil, err
	}
	small := imaging.Downscale(frame, opts.scale())
	norm := imaging.Normalize(small)
	return imaging.Blur(norm, opts.BlurRadius), nil
}

// regionsToCandidates scales processed-frame regions back to the full frame.
func regionsToCandidates(regions []imaging.Region, scale int) []Candidate {
	out := make([]Candidate, 0, len(regions))
	for _, r := range regions {
		out = append(out, Candidate{
			Area: float64(r.Area * scale * scale),
			Box:  boxFromRect(r.Bounds, scale),
		})
	}
	return out
}
