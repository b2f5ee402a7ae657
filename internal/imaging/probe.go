package imaging

// Probe averages the channel values in a (2*radius+1)² window centred on
// (x, y). Window pixels outside the buffer are clamped to the nearest edge.
//
// Parameters:
//   - ch: The converted frame to sample.
//   - x, y: Window center (0-based).
//   - radius: 0 samples a single pixel, 1 averages a 3x3 window.
//
// Returns the per-channel integer mean (truncated), or zeros for an empty
// buffer.
func Probe(ch *Channels, x, y, radius int) [3]int {
	var out [3]int
	if ch == nil || ch.Width == 0 || ch.Height == 0 {
		return out
	}
	if radius < 0 {
		radius = 0
	}

	var sum [3]int
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			px := clamp(x+dx, 0, ch.Width-1)
			py := clamp(y+dy, 0, ch.Height-1)
			c1, c2, c3 := ch.At(px, py)
			sum[0] += int(c1)
			sum[1] += int(c2)
			sum[2] += int(c3)
			n++
		}
	}

	for i := range out {
		out[i] = sum[i] / n
	}
	return out
}

// ProbeCenter probes the middle of the buffer.
func ProbeCenter(ch *Channels, radius int) [3]int {
	if ch == nil {
		return [3]int{}
	}
	return Probe(ch, ch.Width/2, ch.Height/2, radius)
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
