// Package dataset implements the indexing core of the visualizer: an immutable,
// block-sorted view of a simulation log with position lookups for animation.
//
// The package maps a continuous animation position (a real-valued "current
// block") onto the discrete, mostly-regularly sampled rows of the log:
//
//   - [Build]: constructs a [Dataset] from raw records (sort, derived fields,
//     interval estimate)
//   - [Dataset.Nearest]: row closest to a target position
//   - [Dataset.Bracket]: adjacent pair of rows bounding a target position
//   - [Dataset.At]: linearly interpolated row at an arbitrary position
//   - [Dataset.Window]: bounded, downsampled slice of rows around a position
//     for charting
//
// # Lookup Strategy
//
// Lookups use the estimated block interval (the mode of consecutive gaps) to
// jump to an approximate index, verify it, and only then fall back to a full
// scan or binary search. The fallback is the correctness guarantee; the fast
// path is an optimization and agrees with it whenever accepted.
//
// # Thread Safety
//
// A Dataset is read-only after Build and safe for concurrent lookups. Rows
// returned by lookups share the Dataset's field maps and must not be modified.
package dataset
