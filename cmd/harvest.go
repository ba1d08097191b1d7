package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/desertthunder/chordex/internal/formatter"
	"github.com/desertthunder/chordex/internal/repositories"
	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/tasks"
	"github.com/urfave/cli/v3"
)

// HarvestRun harvests every song of a genre catalog CSV.
//
// Interrupting with ctrl+c stops after the current step and still prints the partial summary.
func (r *Runner) HarvestRun(ctx context.Context, cmd *cli.Command) error {
	genre, err := r.genreFlag(cmd)
	if err != nil {
		return err
	}

	dir := r.outputDir(cmd)
	songs, err := formatter.ReadCatalogFile(formatter.CatalogFilename(dir, genre), genre)
	if err != nil {
		return fmt.Errorf("%w (run 'chordex catalog fetch --genre %s' first)", err, genre)
	}

	engine, err := r.harvestEngine()
	if err != nil {
		return err
	}

	config := r.cfg().Harvest
	opts := tasks.HarvestOpts{
		Genre:      genre,
		Genres:     config.Genres,
		Delay:      config.Delay(),
		WindowSize: config.WindowSize,
		OutputDir:  dir,
	}
	if cmd.IsSet("delay") {
		opts.Delay = cmd.Duration("delay")
	}
	if window := cmd.Int("window"); window > 0 {
		opts.WindowSize = window
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	progress := make(chan tasks.ProgressUpdate, 100)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.logger.Debug(update.Message, "phase", update.Phase, "step", update.Step, "total", update.Total)
		}
	}()

	result, err := engine.Run(ctx, progress, songs, opts)
	close(progress)
	<-done

	if result == nil {
		return err
	}

	r.printHarvestSummary(result)
	if errors.Is(err, context.Canceled) {
		r.logger.Warn("harvest cancelled")
		return nil
	}
	return err
}

func (r *Runner) printHarvestSummary(result *tasks.HarvestResult) {
	run := result.Run
	r.writePlainHeader(fmt.Sprintf("Harvest: %s", run.Genre))
	r.writePlain("Processed: %d/%d\n", len(result.Results), run.Total)
	r.writePlain("Saved:     %d\n", run.Saved)
	r.writePlain("Skipped:   %d\n", run.Skipped)
	r.writePlain("Failed:    %d\n", run.Failed)

	var failures []string
	for _, res := range result.Results {
		if res.Status == tasks.StatusFailed {
			failures = append(failures, fmt.Sprintf("  ✗ %s - %s: %s", res.Song.Artist, res.Song.Title, res.Reason))
		}
	}
	if len(failures) > 0 {
		r.writePlainln("Failures:")
		r.writePlain("%s\n", strings.Join(failures, "\n"))
	}
}

// HarvestList prints harvested songs from SQLite, or from the genre database CSV with --csv.
func (r *Runner) HarvestList(ctx context.Context, cmd *cli.Command) error {
	genre := strings.ToLower(strings.TrimSpace(cmd.String("genre")))

	if cmd.Bool("csv") {
		if genre == "" {
			return fmt.Errorf("%w: --csv requires --genre", shared.ErrMissingArgument)
		}
		return r.listDatabaseCSV(genre)
	}

	db, err := r.database()
	if err != nil {
		return err
	}

	songs, err := repositories.NewSongRepository(db).List(map[string]any{
		"genre":  genre,
		"artist": cmd.String("artist"),
		"limit":  cmd.Int("limit"),
	})
	if err != nil {
		return err
	}

	if len(songs) == 0 {
		r.writePlain("No harvested songs\n")
		return nil
	}

	_, err = r.output.Write(formatter.ExportToText(songs))
	return err
}

func (r *Runner) listDatabaseCSV(genre string) error {
	path := formatter.DatabaseFilename(r.cfg().Harvest.OutputDir, genre)
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open database file: %w", err)
	}
	defer f.Close()

	rows, err := formatter.ReadDatabase(f, genre)
	if err != nil {
		return err
	}

	r.writePlainHeader("Database: " + path)
	for i, row := range rows {
		r.writePlain("%d. %s - %s (%s)\n", i+1, row.Song.Artist, row.Song.Title, keyName(row.Song))
		for _, p := range row.Progressions {
			r.writePlain("   %s\n", strings.Join(p, " - "))
		}
	}
	r.writePlainln("Total: %d songs", len(rows))
	return nil
}

// HarvestRuns prints recent harvest runs, newest first.
func (r *Runner) HarvestRuns(ctx context.Context, cmd *cli.Command) error {
	db, err := r.database()
	if err != nil {
		return err
	}

	runs, err := repositories.NewRunRepository(db).List(strings.ToLower(cmd.String("genre")), cmd.Int("limit"))
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		r.writePlain("No harvest runs\n")
		return nil
	}

	r.writePlainHeader("Harvest runs")
	for _, run := range runs {
		finished := "running"
		if run.FinishedAt != nil {
			finished = run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String()
		}
		r.writePlain("%s  %-10s %3d saved %3d skipped %3d failed of %3d  (%s)\n",
			run.StartedAt.Format(time.DateTime), run.Genre, run.Saved, run.Skipped, run.Failed, run.Total, finished)
	}
	return nil
}

// HarvestReanalyze recomputes the progressions of stored songs with a new window size.
func (r *Runner) HarvestReanalyze(ctx context.Context, cmd *cli.Command) error {
	window := cmd.Int("window")
	if window < 1 {
		return fmt.Errorf("%w: --window must be positive", shared.ErrInvalidFlag)
	}

	db, err := r.database()
	if err != nil {
		return err
	}

	engine, err := r.harvestEngine()
	if err != nil {
		return err
	}

	songs, err := repositories.NewSongRepository(db).List(map[string]any{
		"genre": strings.ToLower(cmd.String("genre")),
	})
	if err != nil {
		return err
	}

	result, err := engine.Reanalyze(ctx, nil, songs, tasks.ReanalyzeOpts{
		WindowSize: window,
		NumWorkers: cmd.Int("workers"),
	})
	if err != nil {
		return err
	}

	r.writePlain("✓ Reanalyzed %d/%d songs with window %d\n", result.Updated, result.Total, window)
	for _, err := range result.Errors {
		r.writePlain("  ✗ %v\n", err)
	}
	return nil
}
