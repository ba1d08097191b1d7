// package services defines the catalog and chart-site clients used by a harvest
//
// Spotify (catalog), Ultimate Guitar (charts)
package services

import (
	"context"

	"github.com/desertthunder/chordex/internal/models"
)

// Catalog is a music catalog that can list songs with their detected key and mode.
type Catalog interface {
	// SearchSongs returns up to query.Count songs matching the genre and year range.
	// Songs without audio analysis are left out.
	SearchSongs(ctx context.Context, query CatalogQuery) ([]models.Song, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// CatalogQuery selects songs from a [Catalog].
type CatalogQuery struct {
	Genre     string
	Count     int
	StartYear int
	EndYear   int
}

// ChartSource is a chord chart site.
type ChartSource interface {
	// Search finds the best chord chart for a song.
	// Returns [shared.ErrChartNotFound] when the site has no usable chart.
	Search(ctx context.Context, title, artist string) (*ChartResult, error)

	// Open downloads a chart so it can be transposed and read.
	Open(ctx context.Context, result *ChartResult) (*RenderedChart, error)

	// Name returns the name of the site
	Name() string
}

// ChartResult is one search hit on a chart site.
type ChartResult struct {
	Title    string
	Artist   string
	URL      string
	Type     string
	Votes    int
	Rating   float64
	TonalKey string
}
