package pipeline

import (
	"sync"
	"time"

	"gonum.org/v1/gonum/stat"
)

// maxLatencySamples bounds the memory used between two drains.
const maxLatencySamples = 4096

// LatencyRecorder collects per-frame processing times between reporter
// samples.
type LatencyRecorder struct {
	mu      sync.Mutex
	samples []float64
	dropped int
}

// NewLatencyRecorder creates an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{samples: make([]float64, 0, 512)}
}

// Record adds one frame duration. Samples beyond the buffer size are dropped
// until the next Drain.
func (r *LatencyRecorder) Record(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.samples) >= maxLatencySamples {
		r.dropped++
		return
	}
	r.samples = append(r.samples, float64(d)/float64(time.Millisecond))
}

// LatencyStats summarises the samples of one interval, in milliseconds.
type LatencyStats struct {
	Count   int     `json:"count"`
	Dropped int     `json:"dropped"`
	MeanMs  float64 `json:"mean_ms"`
	StdMs   float64 `json:"std_ms"`
	MaxMs   float64 `json:"max_ms"`
}

// Drain returns the statistics of all recorded samples and clears them.
func (r *LatencyRecorder) Drain() LatencyStats {
	r.mu.Lock()
	samples := r.samples
	dropped := r.dropped
	r.samples = make([]float64, 0, cap(samples))
	r.dropped = 0
	r.mu.Unlock()

	s := summarize(samples)
	s.Dropped = dropped
	return s
}

func summarize(samples []float64) LatencyStats {
	s := LatencyStats{Count: len(samples)}
	switch len(samples) {
	case 0:
		return s
	case 1:
		s.MeanMs = samples[0]
		s.MaxMs = samples[0]
		return s
	}

	s.MeanMs, s.StdMs = stat.MeanStdDev(samples, nil)
	for _, v := range samples {
		if v > s.MaxMs {
			s.MaxMs = v
		}
	}
	return s
}
