// package tasks harvests chord progressions: it walks a list of catalog songs, finds and opens a
// chart for each, moves the chart to C major, and stores the encoded progressions.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/chordex/internal/formatter"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/services"
	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/theory"
)

// SongStore persists harvested songs. Implemented by repositories.SongRepository.
type SongStore interface {
	Exists(genre, title, artist string) (bool, error)
	Create(song *models.PersistedSong) error
	UpdateAnalysis(song *models.PersistedSong, analysis models.Analysis) error
}

// RunRecorder records harvest runs. Implemented by repositories.RunRepository.
type RunRecorder interface {
	Start(run *models.HarvestRun) error
	Finish(run *models.HarvestRun) error
}

// Status is the outcome of harvesting one song.
type Status int

const (
	StatusSaved Status = iota
	StatusSkipped
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSaved:
		return "saved"
	case StatusSkipped:
		return "skipped"
	case StatusFailed:
		return "failed"
	default:
		return ""
	}
}

// SongResult describes what happened to one song.
type SongResult struct {
	Song         models.Song
	Status       Status
	Reason       string      // Why the song was skipped or failed
	Err          error       // Underlying error for failures
	Capo         int         // Capo read from the chart
	Plan         theory.Plan // Shift applied to the chart
	Progressions int         // Number of encoded progressions stored
}

// HarvestResult contains the outcome of a full harvest.
type HarvestResult struct {
	Run     models.HarvestRun
	Results []SongResult
}

// HarvestOpts contains configuration for a harvest run.
type HarvestOpts struct {
	Genre      string        // Genre the songs are stored under
	Genres     []string      // Allowed genres; empty allows any
	Delay      time.Duration // Pause after a search and after each saved song
	WindowSize int           // Progression length (default: theory.DefaultWindowSize)
	OutputDir  string        // Directory for the {genre}_database.csv file; empty disables CSV output
}

// HarvestEngine runs harvests against a chord chart site.
type HarvestEngine struct {
	catalog services.Catalog
	charts  services.ChartSource
	songs   SongStore
	runs    RunRecorder
	logger  *log.Logger
	sleep   func(ctx context.Context, d time.Duration) error
}

// NewHarvestEngine creates a HarvestEngine. catalog and runs may be nil.
func NewHarvestEngine(catalog services.Catalog, charts services.ChartSource, songs SongStore, runs RunRecorder, logger *log.Logger) *HarvestEngine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &HarvestEngine{
		catalog: catalog,
		charts:  charts,
		songs:   songs,
		runs:    runs,
		logger:  logger,
		sleep:   sleepContext,
	}
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *HarvestEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}

// ValidateGenre checks genre against the allowed list, ignoring case.
func ValidateGenre(genre string, allowed []string) error {
	if strings.TrimSpace(genre) == "" {
		return fmt.Errorf("%w: genre is required", shared.ErrMissingArgument)
	}
	if len(allowed) == 0 {
		return nil
	}
	if slices.ContainsFunc(allowed, func(g string) bool { return strings.EqualFold(g, genre) }) {
		return nil
	}
	return fmt.Errorf("%w: %q (allowed: %s)", shared.ErrInvalidGenre, genre, strings.Join(allowed, ", "))
}

// FetchSongs lists songs to harvest from the catalog.
func (e *HarvestEngine) FetchSongs(ctx context.Context, progress chan<- ProgressUpdate, query services.CatalogQuery) ([]models.Song, error) {
	if e.catalog == nil {
		return nil, fmt.Errorf("%w: catalog not initialized", shared.ErrServiceUnavailable)
	}

	e.sendProgress(progress, fetchCatalogUpdate(query.Genre, query.Count))
	songs, err := e.catalog.SearchSongs(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch songs from %s: %w", e.catalog.Name(), err)
	}

	e.logger.Info("fetched catalog songs", "catalog", e.catalog.Name(), "genre", query.Genre, "count", len(songs))
	return songs, nil
}

// Run harvests songs in order.
//
// Failures of a single song are recorded in its [SongResult] and never stop the run.
// Cancelling ctx stops the run after the current step; the partial result is returned along
// with the context error.
func (e *HarvestEngine) Run(ctx context.Context, progress chan<- ProgressUpdate, songs []models.Song, opts HarvestOpts) (*HarvestResult, error) {
	if e.charts == nil {
		return nil, fmt.Errorf("%w: chart source not initialized", shared.ErrServiceUnavailable)
	}
	if e.songs == nil {
		return nil, fmt.Errorf("%w: song store not initialized", shared.ErrServiceUnavailable)
	}
	if err := ValidateGenre(opts.Genre, opts.Genres); err != nil {
		return nil, err
	}
	if opts.WindowSize <= 0 {
		opts.WindowSize = theory.DefaultWindowSize
	}

	existing := map[string]bool{}
	if opts.OutputDir != "" {
		var err error
		if existing, err = formatter.ExistingSongs(opts.OutputDir, opts.Genre); err != nil {
			return nil, fmt.Errorf("failed to read harvested songs: %w", err)
		}
	}

	result := &HarvestResult{
		Run:     models.HarvestRun{Genre: opts.Genre, Total: len(songs)},
		Results: make([]SongResult, 0, len(songs)),
	}
	if e.runs != nil {
		if err := e.runs.Start(&result.Run); err != nil {
			e.logger.Warn("failed to record harvest run", "error", err)
		}
	}

	logger := shared.WithLogger(e.logger, "genre", opts.Genre)
	logger.Info("harvest started", "songs", len(songs), "window", opts.WindowSize, "delay", opts.Delay)

	var runErr error
	for i, song := range songs {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}

		song.Genre = opts.Genre
		res := e.harvestSong(ctx, progress, i+1, len(songs), song, opts, existing)

		if res.Status == StatusFailed && ctx.Err() != nil {
			runErr = ctx.Err()
			break
		}

		result.Results = append(result.Results, res)
		switch res.Status {
		case StatusSaved:
			result.Run.Saved++
			logger.Info("song saved", "title", song.Title, "artist", song.Artist, "progressions", res.Progressions)
		case StatusSkipped:
			result.Run.Skipped++
			logger.Info("song skipped", "title", song.Title, "artist", song.Artist, "reason", res.Reason)
		case StatusFailed:
			result.Run.Failed++
			logger.Error("song failed", "title", song.Title, "artist", song.Artist, "reason", res.Reason, "error", res.Err)
		}
		e.sendProgress(progress, songDoneUpdate(i+1, len(songs), res))
	}

	if e.runs != nil && result.Run.ID != "" {
		if err := e.runs.Finish(&result.Run); err != nil {
			e.logger.Warn("failed to record harvest run", "error", err)
		}
	}

	if runErr != nil {
		logger.Warn("harvest interrupted", "processed", len(result.Results), "total", len(songs))
	}
	logger.Info("harvest finished", "saved", result.Run.Saved, "skipped", result.Run.Skipped, "failed", result.Run.Failed)
	e.sendProgress(progress, finishedUpdate(result))
	return result, runErr
}

func skipped(song models.Song, reason string) SongResult {
	return SongResult{Song: song, Status: StatusSkipped, Reason: reason}
}

func failed(song models.Song, reason string, err error) SongResult {
	return SongResult{Song: song, Status: StatusFailed, Reason: reason, Err: err}
}

// harvestSong runs the per-song pipeline: search, open, transpose, read, analyze, persist.
func (e *HarvestEngine) harvestSong(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	step, total int,
	song models.Song,
	opts HarvestOpts,
	existing map[string]bool,
) SongResult {
	key := shared.NormalizeSongKey(song.Title, song.Artist)
	if existing[key] {
		return skipped(song, "already in "+formatter.DatabaseFilename(opts.OutputDir, opts.Genre))
	}

	exists, err := e.songs.Exists(opts.Genre, song.Title, song.Artist)
	if err != nil {
		return failed(song, "could not check database", err)
	}
	if exists {
		return skipped(song, "already harvested")
	}

	if song.Key < 0 || song.Key > 11 {
		return skipped(song, fmt.Errorf("%w: %d", shared.ErrUnknownKey, song.Key).Error())
	}

	e.sendProgress(progress, searchChartUpdate(step, total, song))
	found, err := e.charts.Search(ctx, song.Title, song.Artist)
	if errors.Is(err, shared.ErrChartNotFound) {
		return skipped(song, "not available on "+e.charts.Name())
	}
	if err != nil {
		return failed(song, "search failed", err)
	}

	if err := e.sleep(ctx, opts.Delay); err != nil {
		return failed(song, "interrupted", err)
	}

	e.sendProgress(progress, openChartUpdate(step, total, song))
	chart, err := e.charts.Open(ctx, found)
	if errors.Is(err, shared.ErrChartNotFound) {
		return skipped(song, "chart has no chords")
	}
	if err != nil {
		return failed(song, "could not open chart", err)
	}

	res := SongResult{Song: song}
	res.Capo = theory.ParseCapo(chart.CapoText(), shared.WithLogger(e.logger, "title", song.Title, "artist", song.Artist))
	res.Plan = theory.PlanShift(theory.PitchClass(song.Key), theory.Mode(song.Mode), res.Capo)
	e.sendProgress(progress, transposeUpdate(step, total, song, res))

	if err := theory.ApplyPlan(ctx, chart, res.Plan); err != nil {
		return failed(song, "could not be transposed", err)
	}

	tokens := chart.Tokens()
	extraction := theory.Analyze(tokens, opts.WindowSize)
	analysis := models.Analysis{
		WindowSize:   opts.WindowSize,
		Progressions: extraction.Progressions,
		Mask:         extraction.Mask,
	}

	e.sendProgress(progress, saveSongUpdate(step, total, song))
	record := models.NewPersistedSong(song, res.Capo, chart.URL(), tokens, analysis)
	if err := e.songs.Create(record); err != nil {
		if errors.Is(err, shared.ErrSongExists) {
			return skipped(song, "already harvested")
		}
		return failed(song, "could not save", err)
	}

	if opts.OutputDir != "" {
		if _, err := formatter.AppendDatabase(opts.OutputDir, record); err != nil {
			e.logger.Warn("song saved to database but not to CSV", "title", song.Title, "error", err)
		}
	}
	existing[key] = true

	res.Status = StatusSaved
	res.Progressions = len(analysis.Progressions)

	if err := e.sleep(ctx, opts.Delay); err != nil {
		// the song is stored; the interruption is picked up by the next ctx check
		e.logger.Debug("delay interrupted", "error", err)
	}
	return res
}
