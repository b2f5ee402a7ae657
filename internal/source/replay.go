package source

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/target-vision/internal/imaging"
)

// DefaultPattern matches every image format the decoder understands.
const DefaultPattern = "*"

var imageExts = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".bmp": true, ".tif": true, ".tiff": true,
	RawExt: true,
}

// RawExt marks headerless camera dumps: Width*Height*3 bytes in B, G, R order.
const RawExt = ".bgr"

// ErrNoFrames is returned when a replay directory holds no images.
var ErrNoFrames = errors.New("no image files found")

// Frame is one image handed to the consumer.
type Frame struct {
	Image image.Image
	Seq   uint64
	Path  string
	Time  time.Time
}

// ReplayConfig configures a Replay.
type ReplayConfig struct {
	// Dir is the directory holding the frames.
	Dir string

	// Pattern is a filepath.Match glob applied to file names. Empty selects
	// DefaultPattern. Only image extensions are considered either way.
	Pattern string

	// FPS is the playback rate. Zero or less plays as fast as the consumer
	// allows.
	FPS float64

	// Loops is the number of passes over the files. Zero loops forever.
	Loops int

	// Width and Height give the size of raw frames. Only needed when the
	// directory holds RawExt files.
	Width, Height int
}

// Replay plays image files as a frame stream.
type Replay struct {
	cfg    ReplayConfig
	files  []string
	cache  *imaging.ImageCache
	logger zerolog.Logger
}

// NewReplay lists the frames in cfg.Dir. cache may be shared with other
// users; nil creates a private one.
func NewReplay(cfg ReplayConfig, cache *imaging.ImageCache, logger zerolog.Logger) (*Replay, error) {
	if cfg.Pattern == "" {
		cfg.Pattern = DefaultPattern
	}
	if cache == nil {
		cache = imaging.NewImageCache()
	}

	matches, err := filepath.Glob(filepath.Join(cfg.Dir, cfg.Pattern))
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", cfg.Pattern, err)
	}

	files := matches[:0]
	for _, m := range matches {
		if imageExts[strings.ToLower(filepath.Ext(m))] {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoFrames, cfg.Dir)
	}
	sort.Strings(files)

	return &Replay{cfg: cfg, files: files, cache: cache, logger: logger}, nil
}

// Files returns the frame paths in playback order.
func (r *Replay) Files() []string {
	return append([]string(nil), r.files...)
}

// Run delivers frames to handle until every loop is done or ctx is
// cancelled. handle runs on the calling goroutine; a slow consumer delays
// the next frame rather than queueing frames up. Files that fail to decode
// are logged and skipped.
//
// Returns nil after the last loop, ctx.Err() when cancelled, or an error if
// a whole pass produced no decodable frame.
func (r *Replay) Run(ctx context.Context, handle func(Frame)) error {
	var tick <-chan time.Time
	if r.cfg.FPS > 0 {
		ticker := time.NewTicker(time.Duration(float64(time.Second) / r.cfg.FPS))
		defer ticker.Stop()
		tick = ticker.C
	}

	var seq uint64
	for loop := 0; r.cfg.Loops <= 0 || loop < r.cfg.Loops; loop++ {
		delivered := 0
		for _, path := range r.files {
			if err := ctx.Err(); err != nil {
				return err
			}
			if tick != nil {
				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-tick:
				}
			}

			img, err := r.load(path)
			if err != nil {
				r.logger.Warn().Err(err).Str("path", path).Msg("skipping frame")
				continue
			}

			seq++
			delivered++
			handle(Frame{Image: img, Seq: seq, Path: path, Time: time.Now()})
		}

		if delivered == 0 {
			return fmt.Errorf("no decodable frames in %s", r.cfg.Dir)
		}
		r.logger.Debug().Int("loop", loop+1).Int("frames", delivered).Msg("replay pass complete")
	}
	return nil
}

func (r *Replay) load(path string) (image.Image, error) {
	if strings.ToLower(filepath.Ext(path)) != RawExt {
		return r.cache.Load(path)
	}
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read raw frame: %w", err)
	}
	return imaging.FrameFromBGR(buf, r.cfg.Width, r.cfg.Height)
}
