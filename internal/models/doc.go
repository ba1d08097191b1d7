// Package models defines domain entities and persistence interfaces for chordex.
//
// The package contains two categories of types:
//
// 1. Data Transfer Objects (DTOs): Lightweight structs passed between services and tasks
//   - [Song] : Catalog entry with the key and mode reported by the catalog
//   - [Analysis] : Windowed, encoded progressions of one chord stream
//
// 2. Persistent Entities: Database-backed models with full lifecycle management
//   - [PersistedSong] : Harvested song with its C major chord stream and analysis
//   - [HarvestRun] : Counters for one harvest run
//
// Persistent entities implement the [Model] interface providing ID, timestamps and validation.
// The [Repository] interface defines standard CRUD operations for database access.
package models
