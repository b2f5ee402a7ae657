package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/google/uuid"
	"github.com/ironsheep/target-vision/internal/config"
	"github.com/ironsheep/target-vision/internal/dashboard"
	"github.com/ironsheep/target-vision/internal/detection"
	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/logging"
	"github.com/ironsheep/target-vision/internal/pipeline"
	"github.com/ironsheep/target-vision/internal/server"
	"github.com/ironsheep/target-vision/internal/source"
	"github.com/ironsheep/target-vision/internal/telemetry"
	"github.com/ironsheep/target-vision/internal/tuning"
	"github.com/rs/zerolog"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func usage() {
	fmt.Println("target-vision - colored target detection with UDP telemetry")
	fmt.Println()
	fmt.Println("Usage: target-vision [-config file.ini]")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  -config FILE     INI configuration file (defaults are used without one)")
	fmt.Println("  --version, -v    Print version information")
	fmt.Println("  --help, -h       Print this help message")
	fmt.Println()
	fmt.Println("Environment variables:")
	fmt.Println("  TARGET_VISION_LOG_LEVEL=debug         Log level (debug, info, warn, error)")
	fmt.Println("  TARGET_VISION_PIPELINE_STRATEGY=hsv   Segmentation strategy (" + joinStrategies() + ")")
	fmt.Println("  TARGET_VISION_CAMERA_REPLAY_DIR=DIR   Directory of frames to replay")
	fmt.Println("  TARGET_VISION_TELEMETRY_PORT=5801     UDP port fixes are sent to")
	fmt.Println("  TARGET_VISION_TUNING_FILE=FILE        Tuning file, reloaded when it changes")
	fmt.Println("  TARGET_VISION_DASHBOARD_STDIO=true    Serve the dashboard over stdin/stdout")
}

func joinStrategies() string {
	return strings.Join(detection.Strategies(), ", ")
}

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("target-vision %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		}
	}

	configPath := flag.String("config", "", "INI configuration file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "target-vision: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// Logging goes to stderr, stdout is for the dashboard protocol.
	root, err := logging.Init(cfg.Log.Level, os.Stderr)
	if err != nil {
		return err
	}
	runID := uuid.NewString()
	root = root.With().Str("run", runID).Logger()
	root.Info().
		Str("version", Version).
		Str("commit", GitCommit).
		Str("strategy", cfg.Pipeline.Strategy).
		Msg("target-vision starting")

	table := dashboard.NewTable()
	table.PutString(pipeline.KeyRunID, runID)

	seg, err := detection.New(cfg.Pipeline.Strategy, detection.Options{
		Scale:      cfg.Pipeline.Scale,
		BlurRadius: cfg.Pipeline.BlurRadius,
	})
	if err != nil {
		return err
	}
	markColor, err := imaging.ParseHexColor(cfg.Pipeline.OverlayColor)
	if err != nil {
		return err
	}

	telemetryLog := logging.Component(root, "telemetry")
	endpoints, err := telemetry.DiscoverEndpoints(cfg.Telemetry.Port, cfg.Telemetry.Fallback, telemetryLog)
	if err != nil {
		return err
	}
	bc, err := telemetry.NewBroadcaster(endpoints, telemetry.BroadcasterConfig{
		WriteTimeout: cfg.Telemetry.WriteTimeout,
		LogInterval:  cfg.Telemetry.LogInterval,
		TOS:          cfg.Telemetry.TOS,
	}, telemetryLog)
	if err != nil {
		return err
	}
	defer bc.Close()

	pipe, err := pipeline.New(pipeline.Config{
		Segmenter:    seg,
		Tuning:       table,
		Sender:       bc,
		Diagnostics:  table,
		Overlay:      cfg.Pipeline.Overlay,
		OverlayColor: markColor,
		Logger:       logging.Component(root, "pipeline"),
	})
	if err != nil {
		return err
	}
	reporter := pipeline.NewReporter(pipe.Counter(), pipe.Latencies(), table, cfg.Reporter.Interval, logging.Component(root, "reporter"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		reporter.Run(ctx)
	}()

	if cfg.Tuning.File != "" {
		watcher := tuning.NewFileWatcher(cfg.Tuning.File, cfg.Tuning.PollInterval, table, root)
		wg.Add(1)
		go func() {
			defer wg.Done()
			watcher.Run(ctx)
		}()
	}

	cache := imaging.NewImageCache()

	if cfg.Dashboard.Stdio {
		srv, err := server.New(server.Options{
			Pipeline:   pipe,
			Table:      table,
			Cache:      cache,
			Endpoints:  bc,
			TuningFile: cfg.Tuning.File,
			RunID:      runID,
			Logger:     logging.Component(root, "dashboard"),
		})
		if err != nil {
			return err
		}
		// Not waited for: the read on stdin only ends when the client closes it.
		go func() {
			if err := srv.Run(os.Stdin, os.Stdout); err != nil {
				root.Error().Err(err).Msg("dashboard server stopped")
			}
		}()
	}

	err = runSource(ctx, cfg.Camera, cache, pipe, logging.Component(root, "source"))
	stop()
	wg.Wait()

	st := bc.Stats()
	last, _ := pipe.LastResult()
	root.Info().
		Uint64("frames", last.Seq).
		Uint64("bad_frames", pipe.BadFrames()).
		Uint64("sent", st.Sent).
		Uint64("send_failures", st.Failed).
		Msg("shutdown complete")

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// runSource feeds frames to the pipeline until the source is exhausted or
// ctx is cancelled. Without a source it just waits for ctx.
func runSource(ctx context.Context, cam config.CameraConfig, cache *imaging.ImageCache, pipe *pipeline.Pipeline, logger zerolog.Logger) error {
	if cam.ReplayDir == "" {
		logger.Warn().Msg("no frame source configured, idling")
		<-ctx.Done()
		return ctx.Err()
	}

	replay, err := source.NewReplay(source.ReplayConfig{
		Dir:     cam.ReplayDir,
		Pattern: cam.Pattern,
		FPS:     cam.FPS,
		Loops:   cam.Loops,
		Width:   cam.Width,
		Height:  cam.Height,
	}, cache, logger)
	if err != nil {
		return err
	}
	logger.Info().Int("files", len(replay.Files())).Str("dir", cam.ReplayDir).Msg("replaying frames")

	want := image.Pt(cam.Width, cam.Height)
	warned := false
	return replay.Run(ctx, func(f source.Frame) {
		if got := f.Image.Bounds().Size(); got != want && !warned {
			logger.Warn().
				Str("path", f.Path).
				Int("width", got.X).
				Int("height", got.Y).
				Msg("frame size differs from configured camera size")
			warned = true
		}
		pipe.Process(f.Image)
	})
}
