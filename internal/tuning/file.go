package tuning

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	ini "gopkg.in/ini.v1"
)

// Section is the INI section holding tuning values.
const Section = "tuning"

// NumberSink receives values loaded from a tuning file.
type NumberSink interface {
	PutNumber(key string, value float64)
}

// LoadFile reads every key of the [tuning] section of an INI file and writes
// it to sink. Keys whose value is not a number are skipped and reported in
// the returned error only if nothing could be loaded.
func LoadFile(path string, sink NumberSink) (int, error) {
	f, err := ini.Load(path)
	if err != nil {
		return 0, fmt.Errorf("failed to load tuning file: %w", err)
	}

	sec, err := f.GetSection(Section)
	if err != nil {
		return 0, fmt.Errorf("tuning file %s has no [%s] section", path, Section)
	}

	loaded := 0
	var lastErr error
	for _, key := range sec.Keys() {
		v, err := key.Float64()
		if err != nil {
			lastErr = fmt.Errorf("key %s: %w", key.Name(), err)
			continue
		}
		sink.PutNumber(key.Name(), v)
		loaded++
	}

	if loaded == 0 && lastErr != nil {
		return 0, lastErr
	}
	return loaded, nil
}

// SaveFile writes the given key/values to the [tuning] section of path,
// preserving any other sections already in the file.
func SaveFile(path string, values map[string]float64) error {
	f, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("failed to open tuning file: %w", err)
	}
	sec := f.Section(Section)
	for k, v := range values {
		sec.Key(k).SetValue(fmt.Sprintf("%g", v))
	}
	if err := f.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save tuning file: %w", err)
	}
	return nil
}

// FileWatcher re-loads a tuning file into a sink whenever its modification
// time changes.
type FileWatcher struct {
	path     string
	interval time.Duration
	sink     NumberSink
	logger   zerolog.Logger

	lastMod time.Time
}

// NewFileWatcher creates a watcher polling path every interval.
func NewFileWatcher(path string, interval time.Duration, sink NumberSink, logger zerolog.Logger) *FileWatcher {
	if interval <= 0 {
		interval = time.Second
	}
	return &FileWatcher{
		path:     path,
		interval: interval,
		sink:     sink,
		logger:   logger.With().Str("component", "tuning").Str("file", path).Logger(),
	}
}

// Poll checks the file once and reloads it if it changed. It reports whether
// a reload happened.
func (w *FileWatcher) Poll() (bool, error) {
	st, err := os.Stat(w.path)
	if err != nil {
		return false, err
	}
	if !st.ModTime().After(w.lastMod) {
		return false, nil
	}
	n, err := LoadFile(w.path, w.sink)
	if err != nil {
		return false, err
	}
	w.lastMod = st.ModTime()
	w.logger.Info().Int("keys", n).Msg("Tuning file loaded")
	return true, nil
}

// Run polls until ctx is cancelled. A missing or unreadable file keeps the
// previous values in effect.
func (w *FileWatcher) Run(ctx context.Context) {
	if _, err := w.Poll(); err != nil {
		w.logger.Warn().Err(err).Msg("Tuning file not loaded, using defaults")
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastErr string
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := w.Poll(); err != nil {
				// Only log when the failure changes.
				if err.Error() != lastErr {
					w.logger.Warn().Err(err).Msg("Tuning file reload failed")
					lastErr = err.Error()
				}
				continue
			}
			lastErr = ""
		}
	}
}
