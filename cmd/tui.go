package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/chordex/internal/formatter"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
	"github.com/desertthunder/chordex/internal/tasks"
	"github.com/desertthunder/chordex/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for harvesting a genre.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	config := r.cfg().Harvest
	if len(config.Genres) == 0 {
		return fmt.Errorf("%w: harvest.genres is empty", shared.ErrInvalidConfig)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(cmd.String("log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	engine, err := r.harvestEngine()
	if err != nil {
		return err
	}

	dir := r.outputDir(cmd)
	load := func(genre string) ([]models.Song, error) {
		return formatter.ReadCatalogFile(formatter.CatalogFilename(dir, genre), genre)
	}

	model := ui.NewModel(ctx, engine, config.Genres, load, tasks.HarvestOpts{
		Genres:     config.Genres,
		Delay:      config.Delay(),
		WindowSize: config.WindowSize,
		OutputDir:  dir,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
