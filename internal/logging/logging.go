// Package logging configures the process-wide zerolog logger.
//
// Components never reach for the global logger on their own; main builds one
// here and hands each component a sub-logger tagged with its name.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// EnvLevel overrides the configured level when set.
const EnvLevel = "TARGET_VISION_LOG_LEVEL"

// ParseLevel maps debug, info, warn and error (case-insensitive) to a zerolog
// level. An empty string means info.
func ParseLevel(s string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zerolog.InfoLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unknown log level %q", s)
	}
}

// Init builds the root logger writing human-readable lines to w (stderr when
// nil) and installs it as the zerolog global. The environment variable wins
// over level.
//
// Stdout is left alone because the dashboard server speaks JSON-RPC on it.
func Init(level string, w io.Writer) (zerolog.Logger, error) {
	if env := os.Getenv(EnvLevel); env != "" {
		level = env
	}
	lvl, err := ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), err
	}
	if w == nil {
		w = os.Stderr
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.SetGlobalLevel(lvl)

	logger := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: "15:04:05.000",
		NoColor:    true,
	}).Level(lvl).With().Timestamp().Logger()

	log.Logger = logger
	return logger, nil
}

// Component returns a sub-logger tagged with the component name.
func Component(logger zerolog.Logger, name string) zerolog.Logger {
	return logger.With().Str("component", name).Logger()
}
