// Package tasks orchestrates chord harvests with real-time progress reporting.
//
// # Core Operations
//
// [HarvestEngine] provides three operations:
//
//  1. [HarvestEngine.FetchSongs] : List songs to harvest
//     - Queries the catalog by genre and year range
//     - Songs carry the key and mode detected by the catalog
//
//  2. [HarvestEngine.Run] : Harvest songs in order
//     - Skips songs already stored, in the database or the genre CSV
//     - Skips songs whose key the catalog could not detect
//     - Searches the chart site, opens the best chart and reads its capo
//     - Plans a shift to C major ([theory.PlanShift]) and applies it to the chart
//     - Encodes the chord stream into Roman-numeral progressions and stores them
//
//  3. [HarvestEngine.Reanalyze] : Recompute progressions for stored songs
//     - Runs extraction on a worker pool, e.g. with a new window size
//     - Writes results back one song at a time
//
// # Failure Handling
//
// A failing song is logged and counted in the run totals and never aborts the run.
// Cancelling the context stops the run between steps and returns the partial result.
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, messages, and optional data for advanced UI rendering.
// [SongDone] updates carry the [SongResult] and the [Finished] update carries the [HarvestResult].
// Updates use select with default to prevent blocking.
package tasks
