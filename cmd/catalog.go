package main

import (
	"context"
	"strings"

	"github.com/desertthunder/chordex/internal/formatter"
	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/services"
	"github.com/desertthunder/chordex/internal/tasks"
	"github.com/desertthunder/chordex/internal/theory"
	"github.com/urfave/cli/v3"
)

// genreFlag reads and validates the --genre flag against the configured genres.
func (r *Runner) genreFlag(cmd *cli.Command) (string, error) {
	genre := strings.ToLower(strings.TrimSpace(cmd.String("genre")))
	if err := tasks.ValidateGenre(genre, r.cfg().Harvest.Genres); err != nil {
		return "", err
	}
	return genre, nil
}

// CatalogFetch fetches songs from Spotify and writes them to spotify_songs_<genre>.csv.
func (r *Runner) CatalogFetch(ctx context.Context, cmd *cli.Command) error {
	genre, err := r.genreFlag(cmd)
	if err != nil {
		return err
	}

	engine, err := r.catalogEngine(ctx)
	if err != nil {
		return err
	}

	songs, err := engine.FetchSongs(ctx, nil, services.CatalogQuery{
		Genre:     genre,
		Count:     cmd.Int("count"),
		StartYear: cmd.Int("start-year"),
		EndYear:   cmd.Int("end-year"),
	})
	if err != nil {
		return err
	}

	path, err := formatter.WriteCatalog(r.outputDir(cmd), genre, songs)
	if err != nil {
		return err
	}

	r.writePlain("✓ Saved %d %s songs to %s\n", len(songs), genre, path)
	return nil
}

// CatalogList prints the songs of a catalog CSV.
func (r *Runner) CatalogList(ctx context.Context, cmd *cli.Command) error {
	genre, err := r.genreFlag(cmd)
	if err != nil {
		return err
	}

	songs, err := formatter.ReadCatalogFile(formatter.CatalogFilename(r.outputDir(cmd), genre), genre)
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(songs, true)
	}

	r.writePlainHeader("Catalog: " + genre)
	for i, song := range songs {
		r.writePlain("%d. %s - %s (%s)\n", i+1, song.Artist, song.Title, keyName(song))
	}
	r.writePlainln("Total: %d songs", len(songs))
	return nil
}

// keyName spells a catalog key, e.g. "A minor".
func keyName(song models.Song) string {
	if song.Key < 0 || song.Key > 11 {
		return "unknown key"
	}
	return theory.SpellPitch(theory.PitchClass(song.Key), false) + " " + theory.Mode(song.Mode).String()
}
