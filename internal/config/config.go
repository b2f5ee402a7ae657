// Package config loads the target-vision INI configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/ironsheep/target-vision/internal/detection"
	"github.com/ironsheep/target-vision/internal/imaging"
	"github.com/ironsheep/target-vision/internal/pipeline"
	"github.com/ironsheep/target-vision/internal/telemetry"
	ini "gopkg.in/ini.v1"
)

// EnvPrefix prefixes every environment override, e.g. TARGET_VISION_TELEMETRY_PORT.
const EnvPrefix = "TARGET_VISION_"

// CameraConfig describes the frame source.
type CameraConfig struct {
	Width     int     `ini:"width"`
	Height    int     `ini:"height"`
	FPS       float64 `ini:"fps"`
	ReplayDir string  `ini:"replay_dir"`
	Pattern   string  `ini:"pattern"`
	Loops     int     `ini:"loops"`
}

// PipelineConfig selects and tunes the segmentation strategy.
type PipelineConfig struct {
	Strategy     string  `ini:"strategy"`
	Scale        int     `ini:"scale"`
	BlurRadius   float64 `ini:"blur_radius"`
	Overlay      bool    `ini:"overlay"`
	OverlayColor string  `ini:"overlay_color"`
}

// TelemetryConfig controls the UDP broadcast.
type TelemetryConfig struct {
	Port         int           `ini:"port"`
	Fallback     string        `ini:"fallback"`
	WriteTimeout time.Duration `ini:"write_timeout"`
	TOS          int           `ini:"tos"`
	LogInterval  time.Duration `ini:"log_interval"`
}

// ReporterConfig sets how often pipeline throughput is logged.
type ReporterConfig struct {
	Interval time.Duration `ini:"interval"`
}

// TuningConfig points at the optional tuning file.
type TuningConfig struct {
	File         string        `ini:"file"`
	PollInterval time.Duration `ini:"poll_interval"`
}

// DashboardConfig enables the MCP tuning server on stdin/stdout.
type DashboardConfig struct {
	Stdio bool `ini:"stdio"`
}

// LogConfig sets the minimum log level.
type LogConfig struct {
	Level string `ini:"level"`
}

// Config is the whole configuration file. Each field maps to one INI section.
type Config struct {
	Camera    CameraConfig    `ini:"camera"`
	Pipeline  PipelineConfig  `ini:"pipeline"`
	Telemetry TelemetryConfig `ini:"telemetry"`
	Reporter  ReporterConfig  `ini:"reporter"`
	Tuning    TuningConfig    `ini:"tuning_file"`
	Dashboard DashboardConfig `ini:"dashboard"`
	Log       LogConfig       `ini:"log"`
}

// Default returns the compiled-in configuration.
func Default() *Config {
	return &Config{
		Camera: CameraConfig{
			Width:   320,
			Height:  240,
			FPS:     30,
			Pattern: "*",
			Loops:   0,
		},
		Pipeline: PipelineConfig{
			Strategy:     detection.StrategyHSV,
			Scale:        detection.DefaultScale,
			BlurRadius:   imaging.DefaultBlurRadius,
			Overlay:      true,
			OverlayColor: "#FF64C8",
		},
		Telemetry: TelemetryConfig{
			Port:         telemetry.DefaultPort,
			Fallback:     telemetry.DefaultFallback,
			WriteTimeout: telemetry.DefaultWriteTimeout,
			TOS:          telemetry.DefaultTOS,
			LogInterval:  telemetry.DefaultLogInterval,
		},
		Reporter: ReporterConfig{
			Interval: pipeline.DefaultReportInterval,
		},
		Tuning: TuningConfig{
			PollInterval: time.Second,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		f, err := ini.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		// Missing keys leave the defaults in place.
		if err := f.MapTo(cfg); err != nil {
			return nil, fmt.Errorf("failed to map config: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	var errs []error
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	num := func(name string, dst *int) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = n
		}
	}
	flag := func(name string, dst *bool) {
		if v, ok := lookup(EnvPrefix + name); ok && v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s%s: %w", EnvPrefix, name, err))
				return
			}
			*dst = b
		}
	}

	str("PIPELINE_STRATEGY", &c.Pipeline.Strategy)
	flag("PIPELINE_OVERLAY", &c.Pipeline.Overlay)
	str("CAMERA_REPLAY_DIR", &c.Camera.ReplayDir)
	num("TELEMETRY_PORT", &c.Telemetry.Port)
	str("TELEMETRY_FALLBACK", &c.Telemetry.Fallback)
	str("TUNING_FILE", &c.Tuning.File)
	flag("DASHBOARD_STDIO", &c.Dashboard.Stdio)
	str("LOG_LEVEL", &c.Log.Level)

	return errors.Join(errs...)
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Camera.Width <= 0 || c.Camera.Height <= 0 {
		errs = append(errs, fmt.Errorf("camera size %dx%d must be positive", c.Camera.Width, c.Camera.Height))
	}
	if c.Camera.FPS < 0 {
		errs = append(errs, fmt.Errorf("camera fps %g must not be negative", c.Camera.FPS))
	}
	if c.Camera.Loops < 0 {
		errs = append(errs, fmt.Errorf("camera loops %d must not be negative", c.Camera.Loops))
	}

	known := detection.Strategies()
	found := false
	for _, s := range known {
		if s == c.Pipeline.Strategy {
			found = true
			break
		}
	}
	if !found {
		errs = append(errs, fmt.Errorf("unknown pipeline strategy %q (want one of %s)", c.Pipeline.Strategy, strings.Join(known, ", ")))
	}
	if c.Pipeline.Scale < 1 {
		errs = append(errs, fmt.Errorf("pipeline scale %d must be at least 1", c.Pipeline.Scale))
	}
	if _, err := imaging.ParseHexColor(c.Pipeline.OverlayColor); err != nil {
		errs = append(errs, fmt.Errorf("pipeline overlay_color %q: %w", c.Pipeline.OverlayColor, err))
	}

	if c.Telemetry.Port <= 0 || c.Telemetry.Port > 65535 {
		errs = append(errs, fmt.Errorf("telemetry port %d out of range", c.Telemetry.Port))
	}
	if c.Telemetry.TOS < 0 || c.Telemetry.TOS > 255 {
		errs = append(errs, fmt.Errorf("telemetry tos %d out of range", c.Telemetry.TOS))
	}
	if c.Telemetry.WriteTimeout < 0 {
		errs = append(errs, fmt.Errorf("telemetry write_timeout must not be negative"))
	}

	if c.Reporter.Interval <= 0 {
		errs = append(errs, fmt.Errorf("reporter interval must be positive"))
	}

	return errors.Join(errs...)
}
