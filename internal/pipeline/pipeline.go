package pipeline

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/target-vision/internal/detection"
	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/tuning"
)

// DefaultWarnInterval limits how often malformed frames are logged.
const DefaultWarnInterval = 5 * time.Second

// Sender transmits a fix. *telemetry.Broadcaster implements it.
type Sender interface {
	Send(direction, distance int32)
}

// Config wires a Pipeline. Segmenter, Tuning and Sender are required.
type Config struct {
	Segmenter detection.Segmenter
	Tuning    tuning.Provider
	Sender    Sender

	// Diagnostics receives per-frame values. Optional.
	Diagnostics Diagnostics

	// Acceptance are the compiled acceptance defaults. Zero selects
	// tuning.DefaultAcceptance.
	Acceptance tuning.AcceptanceBounds

	// Overlay enables drawing the annotated copy kept as LatestFrame.
	Overlay bool

	// OverlayColor is used for all overlay marks. Nil selects
	// imaging.DefaultOverlayColor.
	OverlayColor color.Color

	Counter   *CallCounter
	Latencies *LatencyRecorder

	// WarnInterval limits malformed-frame warnings. Zero selects
	// DefaultWarnInterval.
	WarnInterval time.Duration

	Logger zerolog.Logger
}

// Result describes one processed frame.
type Result struct {
	Seq          uint64                 `json:"seq"`
	Width        int                    `json:"width"`
	Height       int                    `json:"height"`
	Bounds       tuning.Bounds          `json:"bounds"`
	Segmentation detection.Segmentation `json:"-"`
	Candidates   int                    `json:"candidates"`
	Target       detection.Target       `json:"target"`
	Found        bool                   `json:"found"`
	Fix          detection.Fix          `json:"fix"`
}

// Pipeline processes frames one at a time.
type Pipeline struct {
	mu sync.Mutex

	segmenter detection.Segmenter
	store     *tuning.Store
	sender    Sender
	diag      Diagnostics
	counter   *CallCounter
	latencies *LatencyRecorder
	overlay   bool
	markColor color.Color
	logger    zerolog.Logger
	warnLog   zerolog.Logger

	// degenerate is guarded by mu.
	degenerate bool

	seq       atomic.Uint64
	badFrames atomic.Uint64
	latest    atomic.Pointer[image.NRGBA]
	last      atomic.Pointer[Result]
}

// New validates cfg, registers the tuning defaults and returns a Pipeline.
func New(cfg Config) (*Pipeline, error) {
	if cfg.Segmenter == nil {
		return nil, errors.New("pipeline: segmenter is required")
	}
	if cfg.Tuning == nil {
		return nil, errors.New("pipeline: tuning provider is required")
	}
	if cfg.Sender == nil {
		return nil, errors.New("pipeline: sender is required")
	}

	accept := cfg.Acceptance
	if accept == (tuning.AcceptanceBounds{}) {
		accept = tuning.DefaultAcceptance()
	}
	if cfg.Diagnostics == nil {
		cfg.Diagnostics = discard{}
	}
	if cfg.Counter == nil {
		cfg.Counter = &CallCounter{}
	}
	if cfg.Latencies == nil {
		cfg.Latencies = NewLatencyRecorder()
	}
	if cfg.OverlayColor == nil {
		cfg.OverlayColor = imaging.DefaultOverlayColor
	}
	if cfg.WarnInterval <= 0 {
		cfg.WarnInterval = DefaultWarnInterval
	}

	store := tuning.NewStore(cfg.Tuning, cfg.Segmenter.Keys(), tuning.Bounds{
		Color:  cfg.Segmenter.DefaultBound(),
		Accept: accept,
	})

	return &Pipeline{
		segmenter: cfg.Segmenter,
		store:     store,
		sender:    cfg.Sender,
		diag:      cfg.Diagnostics,
		counter:   cfg.Counter,
		latencies: cfg.Latencies,
		overlay:   cfg.Overlay,
		markColor: cfg.OverlayColor,
		logger:    cfg.Logger,
		warnLog:   cfg.Logger.Sample(&zerolog.BurstSampler{Burst: 1, Period: cfg.WarnInterval}),
	}, nil
}

// Strategy returns the segmenter name.
func (p *Pipeline) Strategy() string {
	return p.segmenter.Name()
}

// Store returns the tuning store the pipeline snapshots each frame.
func (p *Pipeline) Store() *tuning.Store {
	return p.store
}

// Counter returns the call counter shared with the Reporter.
func (p *Pipeline) Counter() *CallCounter {
	return p.counter
}

// Latencies returns the latency recorder shared with the Reporter.
func (p *Pipeline) Latencies() *LatencyRecorder {
	return p.latencies
}

// Process runs one frame through the whole pipeline and transmits the fix.
//
// Process never fails. A frame that cannot be segmented is logged (rate
// limited) and answered with the neutral fix, as is a frame with no
// acceptable target.
func (p *Pipeline) Process(frame image.Image) Result {
	start := time.Now()

	p.mu.Lock()
	defer p.mu.Unlock()

	seq := p.seq.Add(1)
	res, err := p.detect(frame)
	res.Seq = seq
	if err != nil {
		n := p.badFrames.Add(1)
		p.warnLog.Warn().Err(err).Uint64("bad_frames", n).Msg("skipping frame")
	}

	p.sender.Send(res.Fix.Direction, res.Fix.Distance)
	p.publish(res)

	if p.overlay && err == nil {
		p.latest.Store(p.drawOverlay(frame, res))
	}

	p.last.Store(&res)
	p.counter.Inc()
	p.latencies.Record(time.Since(start))
	return res
}

// Detect runs segmentation, selection and encoding without sending,
// publishing or counting.
func (p *Pipeline) Detect(frame image.Image) (Result, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.detect(frame)
}

func (p *Pipeline) detect(frame image.Image) (Result, error) {
	res := Result{Bounds: p.store.Snapshot()}
	p.checkDegenerate(res.Bounds.Accept)
	if err := imaging.CheckFrame(frame); err != nil {
		return res, err
	}
	res.Width, res.Height = frame.Bounds().Dx(), frame.Bounds().Dy()

	seg, err := p.segmenter.Segment(frame, res.Bounds.Color)
	res.Segmentation = seg
	if err != nil {
		return res, err
	}
	res.Candidates = len(seg.Candidates)

	res.Target, res.Found = detection.Select(seg.Candidates, res.Bounds.Accept)
	res.Fix = detection.Encode(res.Target, res.Found, res.Width, res.Height)
	return res, nil
}

// checkDegenerate logs once when the tuned acceptance bounds become
// degenerate and once when they recover.
func (p *Pipeline) checkDegenerate(accept tuning.AcceptanceBounds) {
	bad := accept.Degenerate()
	if bad == p.degenerate {
		return
	}
	p.degenerate = bad
	if bad {
		p.logger.Warn().Interface("accept", accept).Msg("acceptance bounds are inverted; no target can match")
		return
	}
	p.logger.Info().Msg("acceptance bounds restored")
}

func (p *Pipeline) publish(res Result) {
	d := p.diag
	d.PutNumber(KeyDirection, float64(res.Fix.Direction))
	d.PutNumber(KeyDistance, float64(res.Fix.Distance))
	d.PutNumber(KeyArea, res.Target.Area)
	d.PutNumber(KeyFullness, res.Target.Fullness)
	d.PutNumber(KeyAspect, res.Target.Aspect)
	d.PutNumber(KeyTargetVisible, boolNumber(res.Found))
	d.PutNumber(KeyCandidates, float64(res.Candidates))
	d.PutNumber(KeyCenterC1, float64(res.Segmentation.Probe[0]))
	d.PutNumber(KeyCenterC2, float64(res.Segmentation.Probe[1]))
	d.PutNumber(KeyCenterC3, float64(res.Segmentation.Probe[2]))
	d.PutNumber(KeyPipelineCalls, float64(res.Seq))

	if res.Segmentation.Label != "" {
		d.PutString(KeyColor, res.Segmentation.Label)
		d.PutNumber(KeyColorIdx, float64(res.Segmentation.LabelIndex))
		d.PutNumber(KeyColorArea, res.Segmentation.Largest())
	}
}

// LatestFrame returns the most recent overlay, or nil when overlays are
// disabled or no frame has been processed.
func (p *Pipeline) LatestFrame() *image.NRGBA {
	return p.latest.Load()
}

// LastResult returns the result of the most recent Process call.
func (p *Pipeline) LastResult() (Result, bool) {
	r := p.last.Load()
	if r == nil {
		return Result{}, false
	}
	return *r, true
}

// BadFrames returns the number of frames that could not be segmented.
func (p *Pipeline) BadFrames() uint64 {
	return p.badFrames.Load()
}

func boolNumber(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

type discard struct{}

func (discard) PutNumber(string, float64) {}
func (discard) PutString(string, string)  {}
