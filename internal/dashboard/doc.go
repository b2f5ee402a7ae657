// Package dashboard provides the in-process key/value table shared by the
// vision pipeline, the tuning store and the stdio dashboard server.
//
// The table holds two kinds of entries:
//   - Numbers: tuning bounds (HueMin, AreaMax, ...) and numeric diagnostics
//     (Direction, PipelineCPS, ...)
//   - Strings: textual diagnostics such as the detected sector color
//
// Defaults registered with SetDefaultNumber never overwrite a value that was
// already written, so a tuning file loaded before the pipeline starts keeps
// precedence over compiled defaults.
//
// # Thread Safety
//
// Table is safe for concurrent use. Readers see each write atomically but no
// consistency is promised across several keys.
package dashboard
