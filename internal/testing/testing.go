// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"testing"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/services"
	"github.com/desertthunder/chordex/internal/shared"
)

// MockCatalog is a test double for [services.Catalog]
type MockCatalog struct {
	Songs []models.Song
	Err   error
}

func (m *MockCatalog) SearchSongs(ctx context.Context, q services.CatalogQuery) ([]models.Song, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	var songs []models.Song
	for _, s := range m.Songs {
		if len(songs) == q.Count {
			break
		}
		s.Genre = q.Genre
		songs = append(songs, s)
	}
	return songs, nil
}

func (m *MockCatalog) Name() string { return "mock" }

// MockChart is a chart served by [MockChartSource], as written on the site.
type MockChart struct {
	Capo    string
	Tokens  []string
	OpenErr error
}

// MockChartSource is a test double for [services.ChartSource] keyed by song title.
type MockChartSource struct {
	Charts    map[string]MockChart
	SearchErr error
	OpenErr   error

	mu       sync.Mutex
	searches []string
}

func (m *MockChartSource) Search(ctx context.Context, title, artist string) (*services.ChartResult, error) {
	m.mu.Lock()
	m.searches = append(m.searches, title)
	m.mu.Unlock()

	if m.SearchErr != nil {
		return nil, m.SearchErr
	}
	if _, ok := m.Charts[title]; !ok {
		return nil, fmt.Errorf("%w: %s by %s", shared.ErrChartNotFound, title, artist)
	}
	return &services.ChartResult{Title: title, Artist: artist, URL: "https://charts.test/" + title, Type: "Chords"}, nil
}

func (m *MockChartSource) Open(ctx context.Context, result *services.ChartResult) (*services.RenderedChart, error) {
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	chart := m.Charts[result.Title]
	if chart.OpenErr != nil {
		return nil, chart.OpenErr
	}
	return services.NewRenderedChart(result.URL, chart.Capo, chart.Tokens), nil
}

func (m *MockChartSource) Name() string { return "mock" }

// Searches returns the titles searched so far, in order.
func (m *MockChartSource) Searches() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.searches...)
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

func MustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write file %s: %v", path, err)
	}
}
