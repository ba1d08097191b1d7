// Package repositories implements SQLite persistence for harvested songs and harvest runs.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// Songs support soft deletes via deleted_at timestamps and deleted records are excluded from queries by default.
//
// Key Implementations:
//   - [SongRepository] : Harvested chord streams and their progressions, one per (genre, song)
//   - [RunRepository] : Harvest run history with per-run counters
//
// A song is identified within a genre by [shared.NormalizeSongKey], so "Hello (Remastered)" by "Adèle"
// and "hello" by "Adele" are the same song. Token streams, progressions and validity masks are stored
// as JSON text columns.
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
