// Package tuning holds the live-tunable segmentation and acceptance bounds.
//
// Every bound is read from an injected Provider with get(key, default)
// semantics. The compiled defaults are registered once when a Store is
// created; afterwards each frame calls Store.Snapshot, which re-reads all
// keys back to back so that one frame never mixes values from widely
// separated writes.
//
// # Keys
//
// Color bounds use three channel pairs whose names depend on the color space
// of the active segmenter:
//   - HSV: HueMin/HueMax, SatMin/SatMax, ValMin/ValMax
//   - HLS: HueMin/HueMax, LumMin/LumMax, SatMin/SatMax
//   - BGR: BlueMin/BlueMax, GreenMin/GreenMax, RedMin/RedMax
//
// Acceptance bounds always use AreaMin/AreaMax, AspectMin/AspectMax and
// FullnessMin/FullnessMax.
//
// # Degenerate Bounds
//
// A pair with min > max is accepted as-is. Range checks against such a pair
// simply never pass, so "nothing matches" is the observable result.
//
// # Tuning Files
//
// LoadFile reads the [tuning] section of an INI file into a table and
// FileWatcher re-applies it whenever the file's modification time changes.
package tuning
