// Package ui implements an interactive harvest monitor using bubbletea's Elm architecture.
//
// The TUI walks through one harvest:
//  1. [GenreListView] : Pick a configured genre, with the size of its catalog file
//  2. [ConfirmView] : Confirm the harvest settings
//  3. [HarvestView] : Spinner, current step and saved/skipped/failed counters while the harvest runs
//  4. [ResultView] : Totals and the songs that failed
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Progress updates flow through a channel from the [tasks.HarvestEngine]. Pressing q during a harvest cancels its
// context; the TUI exits once the engine has returned.
package ui
