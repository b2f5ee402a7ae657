// Package pipeline runs frames through detection and telemetry and reports
// throughput.
//
// Pipeline.Process is the per-frame entry point:
//
//	snapshot tuning -> segment -> select -> encode -> send -> diagnostics -> overlay
//
// Frames are processed one at a time. Process holds a mutex for its whole
// duration, so overlapping callers are serialised rather than interleaved.
//
// The Reporter runs in its own goroutine. It shares only the CallCounter
// and the LatencyRecorder with the pipeline, and publishes calls per second
// and frame latency statistics once per interval.
package pipeline
