package models

import (
	"fmt"
	"strings"
	"time"
)

// PersistedSong is a harvested song stored in the database.
//
// Tokens are the chord symbols read after the chart was moved to C major.
type PersistedSong struct {
	id        string
	sequence  int
	song      Song
	capo      int
	chartURL  string
	tokens    []string
	analysis  Analysis
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewPersistedSong creates an unsaved song record.
func NewPersistedSong(song Song, capo int, chartURL string, tokens []string, analysis Analysis) *PersistedSong {
	now := time.Now()
	return &PersistedSong{
		song:      song,
		capo:      capo,
		chartURL:  chartURL,
		tokens:    tokens,
		analysis:  analysis,
		createdAt: now,
		updatedAt: now,
	}
}

func (s *PersistedSong) ID() string                { return s.id }
func (s *PersistedSong) Sequence() int             { return s.sequence }
func (s *PersistedSong) Song() Song                { return s.song }
func (s *PersistedSong) Capo() int                 { return s.capo }
func (s *PersistedSong) ChartURL() string          { return s.chartURL }
func (s *PersistedSong) Tokens() []string          { return s.tokens }
func (s *PersistedSong) Analysis() Analysis        { return s.analysis }
func (s *PersistedSong) CreatedAt() time.Time      { return s.createdAt }
func (s *PersistedSong) UpdatedAt() time.Time      { return s.updatedAt }
func (s *PersistedSong) DeletedAt() *time.Time     { return s.deletedAt }
func (s *PersistedSong) SetID(id string)           { s.id = id }
func (s *PersistedSong) SetSequence(n int)         { s.sequence = n }
func (s *PersistedSong) SetCreatedAt(t time.Time)  { s.createdAt = t }
func (s *PersistedSong) SetUpdatedAt(t time.Time)  { s.updatedAt = t }
func (s *PersistedSong) SetDeletedAt(t *time.Time) { s.deletedAt = t }

// SetAnalysis replaces the stored progressions, e.g. after re-analysis with a new window size.
func (s *PersistedSong) SetAnalysis(a Analysis) {
	s.analysis = a
	s.updatedAt = time.Now()
}

// Validate checks required fields and value ranges.
func (s *PersistedSong) Validate() error {
	switch {
	case strings.TrimSpace(s.song.Title) == "":
		return fmt.Errorf("title is required")
	case strings.TrimSpace(s.song.Artist) == "":
		return fmt.Errorf("artist is required")
	case strings.TrimSpace(s.song.Genre) == "":
		return fmt.Errorf("genre is required")
	case s.song.Key < 0 || s.song.Key > 11:
		return fmt.Errorf("key %d out of range", s.song.Key)
	case s.song.Mode != 0 && s.song.Mode != 1:
		return fmt.Errorf("mode %d out of range", s.song.Mode)
	case s.capo < 0:
		return fmt.Errorf("capo %d is negative", s.capo)
	case len(s.analysis.Progressions) != len(s.analysis.Mask):
		return fmt.Errorf("analysis has %d progressions but %d mask entries", len(s.analysis.Progressions), len(s.analysis.Mask))
	}
	return nil
}

// HarvestRun records the outcome of one harvest invocation.
type HarvestRun struct {
	ID         string
	Genre      string
	Total      int
	Saved      int
	Skipped    int
	Failed     int
	StartedAt  time.Time
	FinishedAt *time.Time
}
