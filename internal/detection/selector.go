package detection

import (
	"github.com/ironsheep/target-vision/internal/tuning"
)

// Select picks the largest candidate that satisfies the acceptance bounds.
//
// For each candidate with a non-empty box it derives
//
//	aspect   = width / height
//	fullness = 100 * area / (width * height)
//
// and accepts it iff area, aspect and fullness each lie inside their
// inclusive [min, max] range. Among accepted candidates the strictly largest
// area wins; on a tie the earlier candidate is kept. Candidates with a zero
// width or height are skipped.
//
// Returns ok == false when no candidate passes, including when the bounds are
// inverted or the input is empty.
func Select(cands []Candidate, accept tuning.AcceptanceBounds) (Target, bool) {
	var best Target
	found := false

	for _, c := range cands {
		w, h := c.Box.Width, c.Box.Height
		if w <= 0 || h <= 0 {
			continue
		}

		aspect := float64(w) / float64(h)
		fullness := 100 * c.Area / float64(w*h)

		if !within(c.Area, accept.AreaMin, accept.AreaMax) ||
			!within(aspect, accept.AspectMin, accept.AspectMax) ||
			!within(fullness, accept.FullnessMin, accept.FullnessMax) {
			continue
		}

		if found && c.Area <= best.Area {
			continue
		}
		best = Target{Box: c.Box, Area: c.Area, Aspect: aspect, Fullness: fullness}
		found = true
	}

	return best, found
}

// within is an inclusive range check. NaN never passes.
func within(v, lo, hi float64) bool {
	return lo <= v && v <= hi
}
