package tuning

// ColorBound is an inclusive per-channel range in the segmenter's color space.
//
// Channel order follows the color space: (H, S, V) for HSV, (H, L, S) for HLS
// and (B, G, R) for BGR. Hue is on the 0-180 scale, the other channels 0-255.
type ColorBound struct {
	Min [3]float64 `json:"min"`
	Max [3]float64 `json:"max"`
}

// Contains reports whether all three channel values lie inside the bound,
// inclusive on both ends.
func (b ColorBound) Contains(c1, c2, c3 float64) bool {
	return b.Min[0] <= c1 && c1 <= b.Max[0] &&
		b.Min[1] <= c2 && c2 <= b.Max[1] &&
		b.Min[2] <= c3 && c3 <= b.Max[2]
}

// AcceptanceBounds are the geometric limits a candidate region must satisfy.
// Fullness is a percentage (0-100).
type AcceptanceBounds struct {
	AreaMin     float64 `json:"area_min"`
	AreaMax     float64 `json:"area_max"`
	AspectMin   float64 `json:"aspect_min"`
	AspectMax   float64 `json:"aspect_max"`
	FullnessMin float64 `json:"fullness_min"`
	FullnessMax float64 `json:"fullness_max"`
}

// Degenerate reports whether any min/max pair is inverted. Degenerate bounds
// reject every candidate.
func (a AcceptanceBounds) Degenerate() bool {
	return a.AreaMin > a.AreaMax || a.AspectMin > a.AspectMax || a.FullnessMin > a.FullnessMax
}

// Bounds is one frame's consistent view of all tunable values.
type Bounds struct {
	Color  ColorBound       `json:"color"`
	Accept AcceptanceBounds `json:"accept"`
}

// ChannelKeys names the min/max tuning keys of each color channel.
type ChannelKeys [3][2]string

// Key sets for the supported color spaces.
var (
	HSVKeys = ChannelKeys{{"HueMin", "HueMax"}, {"SatMin", "SatMax"}, {"ValMin", "ValMax"}}
	HLSKeys = ChannelKeys{{"HueMin", "HueMax"}, {"LumMin", "LumMax"}, {"SatMin", "SatMax"}}
	BGRKeys = ChannelKeys{{"BlueMin", "BlueMax"}, {"GreenMin", "GreenMax"}, {"RedMin", "RedMax"}}
)

// Acceptance bound keys.
const (
	KeyAreaMin     = "AreaMin"
	KeyAreaMax     = "AreaMax"
	KeyAspectMin   = "AspectMin"
	KeyAspectMax   = "AspectMax"
	KeyFullnessMin = "FullnessMin"
	KeyFullnessMax = "FullnessMax"
)

// DefaultAcceptance returns acceptance bounds that admit any reasonably
// compact blob in a 320x240 frame.
func DefaultAcceptance() AcceptanceBounds {
	return AcceptanceBounds{
		AreaMin:     20,
		AreaMax:     320 * 240,
		AspectMin:   0.2,
		AspectMax:   5.0,
		FullnessMin: 10,
		FullnessMax: 100,
	}
}

// DefaultHSV targets the green glow of a retro-reflective target lit by an
// LED ring.
func DefaultHSV() ColorBound {
	return ColorBound{
		Min: [3]float64{50, 100, 100},
		Max: [3]float64{90, 255, 255},
	}
}

// DefaultPinkHLS looks for saturated pink to magenta markers of middling
// lightness.
func DefaultPinkHLS() ColorBound {
	return ColorBound{
		Min: [3]float64{135, 50, 150},
		Max: [3]float64{160, 180, 255},
	}
}

// DefaultHLS looks for bright, greenish light. Luminance carries most of the
// selection.
func DefaultHLS() ColorBound {
	return ColorBound{
		Min: [3]float64{0, 200, 0},
		Max: [3]float64{60, 255, 255},
	}
}
