package pipeline

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// DefaultReportInterval is the reporter period.
const DefaultReportInterval = 10 * time.Second

// Sample is one reporter measurement.
type Sample struct {
	// Calls is the number of frames processed during the interval.
	Calls int64 `json:"calls"`

	// CPS is Calls divided by the interval in seconds, truncated.
	CPS int64 `json:"cps"`

	// Latency summarises frame processing times during the interval.
	Latency LatencyStats `json:"latency"`
}

// Reporter periodically converts the call counter into calls per second.
type Reporter struct {
	counter   *CallCounter
	latencies *LatencyRecorder
	diag      Diagnostics
	interval  time.Duration
	logger    zerolog.Logger
}

// NewReporter creates a reporter. latencies may be nil. A non-positive
// interval selects DefaultReportInterval.
func NewReporter(counter *CallCounter, latencies *LatencyRecorder, diag Diagnostics, interval time.Duration, logger zerolog.Logger) *Reporter {
	if interval <= 0 {
		interval = DefaultReportInterval
	}
	return &Reporter{
		counter:   counter,
		latencies: latencies,
		diag:      diag,
		interval:  interval,
		logger:    logger,
	}
}

// Interval returns the sampling period.
func (r *Reporter) Interval() time.Duration {
	return r.interval
}

// Sample reads and resets the counter, publishes the rate and returns it.
// Run calls Sample once per interval; tests call it directly.
func (r *Reporter) Sample() Sample {
	calls := r.counter.Swap()
	s := Sample{
		Calls: calls,
		CPS:   int64(float64(calls) / r.interval.Seconds()),
	}
	if r.latencies != nil {
		s.Latency = r.latencies.Drain()
	}

	r.diag.PutNumber(KeyPipelineCPS, float64(s.CPS))
	r.diag.PutNumber(KeyPipelineLatencyMeanMs, s.Latency.MeanMs)
	r.diag.PutNumber(KeyPipelineLatencyStdMs, s.Latency.StdMs)

	r.logger.Info().
		Int64("calls", s.Calls).
		Int64("cps", s.CPS).
		Float64("latency_mean_ms", s.Latency.MeanMs).
		Float64("latency_std_ms", s.Latency.StdMs).
		Float64("latency_max_ms", s.Latency.MaxMs).
		Msg("pipeline running")

	if s.Latency.Dropped > 0 {
		r.logger.Debug().Int("dropped", s.Latency.Dropped).Msg("latency samples dropped")
	}
	return s
}

// Run samples every interval until ctx is cancelled.
func (r *Reporter) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.Sample()
		}
	}
}
