package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
)

const songColumns = `id, sequence, genre, title, artist, pitch, mode, capo, chart_url, window_size, tokens, progressions, mask, created_at, updated_at, deleted_at`

// SongRepository implements models.Repository[*models.PersistedSong] for harvested songs.
//
// A (genre, normalized title and artist) pair is stored at most once among live rows.
type SongRepository struct {
	db *sql.DB
}

// NewSongRepository creates a new SongRepository with the given database connection
func NewSongRepository(db *sql.DB) *SongRepository {
	return &SongRepository{db: db}
}

// Create inserts a new [models.PersistedSong] into the database with generated ID and sequence.
//
// Returns [shared.ErrSongExists] when the song was already harvested for its genre.
func (r *SongRepository) Create(song *models.PersistedSong) error {
	if err := song.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	sequence, err := NextSequence(r.db, "songs")
	if err != nil {
		return fmt.Errorf("failed to generate sequence: %w", err)
	}

	tokens, err := jsonColumn(song.Tokens())
	if err != nil {
		return err
	}
	analysis := song.Analysis()
	progressions, err := jsonColumn(analysis.Progressions)
	if err != nil {
		return err
	}
	mask, err := jsonColumn(analysis.Mask)
	if err != nil {
		return err
	}

	s := song.Song()
	id := shared.GenerateID()

	query := `
		INSERT INTO songs (id, sequence, genre, title, artist, norm_key, pitch, mode, capo, chart_url, window_size, tokens, progressions, mask, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.Exec(query,
		id,
		sequence,
		s.Genre,
		s.Title,
		s.Artist,
		shared.NormalizeSongKey(s.Title, s.Artist),
		s.Key,
		s.Mode,
		song.Capo(),
		song.ChartURL(),
		analysis.WindowSize,
		tokens,
		progressions,
		mask,
		song.CreatedAt(),
		song.UpdatedAt(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s by %s (%s)", shared.ErrSongExists, s.Title, s.Artist, s.Genre)
	}
	if err != nil {
		return fmt.Errorf("failed to insert song: %w", err)
	}

	song.SetID(id)
	song.SetSequence(sequence)
	return nil
}

// Get retrieves a song by ID, excluding soft-deleted songs
func (r *SongRepository) Get(id string) (*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE id = ? AND deleted_at IS NULL`

	song, err := r.scan(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}
	return song, err
}

// Exists reports whether a live song with the same normalized title and artist is stored for genre.
func (r *SongRepository) Exists(genre, title, artist string) (bool, error) {
	query := `SELECT COUNT(*) FROM songs WHERE genre = ? AND norm_key = ? AND deleted_at IS NULL`

	var n int
	if err := r.db.QueryRow(query, genre, shared.NormalizeSongKey(title, artist)).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to check song: %w", err)
	}
	return n > 0, nil
}

// UpdateAnalysis replaces the progressions of a stored song.
func (r *SongRepository) UpdateAnalysis(song *models.PersistedSong, analysis models.Analysis) error {
	progressions, err := jsonColumn(analysis.Progressions)
	if err != nil {
		return err
	}
	mask, err := jsonColumn(analysis.Mask)
	if err != nil {
		return err
	}

	song.SetAnalysis(analysis)

	query := `
		UPDATE songs
		SET window_size = ?, progressions = ?, mask = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, analysis.WindowSize, progressions, mask, song.UpdatedAt(), song.ID())
	if err != nil {
		return fmt.Errorf("failed to update song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, song.ID())
	}

	return nil
}

// Delete soft-deletes a song by ID
func (r *SongRepository) Delete(id string) error {
	query := `
		UPDATE songs
		SET deleted_at = ?
		WHERE id = ? AND deleted_at IS NULL
	`

	result, err := r.db.Exec(query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete song: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: %s", shared.ErrSongNotFound, id)
	}

	return nil
}

// List retrieves all songs matching the given criteria in harvest order, excluding soft-deleted songs.
//
// Supported criteria: "genre" (string), "artist" (string), "limit" (int).
func (r *SongRepository) List(criteria map[string]any) ([]*models.PersistedSong, error) {
	query := `SELECT ` + songColumns + ` FROM songs WHERE deleted_at IS NULL`
	args := []any{}

	if genre, ok := criteria["genre"].(string); ok && genre != "" {
		query += " AND genre = ?"
		args = append(args, genre)
	}

	if artist, ok := criteria["artist"].(string); ok && artist != "" {
		query += " AND artist = ?"
		args = append(args, artist)
	}

	query += " ORDER BY sequence ASC"

	if limit, ok := criteria["limit"].(int); ok && limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query songs: %w", err)
	}
	defer rows.Close()

	var songs []*models.PersistedSong
	for rows.Next() {
		song, err := r.scan(rows)
		if err != nil {
			return nil, err
		}
		songs = append(songs, song)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return songs, nil
}

// scan reads one row selected with songColumns into a [models.PersistedSong]
func (r *SongRepository) scan(row scanner) (*models.PersistedSong, error) {
	var (
		id           string
		sequence     int
		s            models.Song
		capo         int
		chartURL     string
		windowSize   int
		tokens       string
		progressions string
		mask         string
		createdAt    time.Time
		updatedAt    time.Time
		deletedAt    sql.NullTime
	)

	err := row.Scan(&id, &sequence, &s.Genre, &s.Title, &s.Artist, &s.Key, &s.Mode, &capo, &chartURL,
		&windowSize, &tokens, &progressions, &mask, &createdAt, &updatedAt, &deletedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan song: %w", err)
	}

	analysis := models.Analysis{WindowSize: windowSize}
	var tokenList []string
	if err := json.Unmarshal([]byte(tokens), &tokenList); err != nil {
		return nil, fmt.Errorf("failed to decode tokens for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(progressions), &analysis.Progressions); err != nil {
		return nil, fmt.Errorf("failed to decode progressions for %s: %w", id, err)
	}
	if err := json.Unmarshal([]byte(mask), &analysis.Mask); err != nil {
		return nil, fmt.Errorf("failed to decode mask for %s: %w", id, err)
	}

	song := models.NewPersistedSong(s, capo, chartURL, tokenList, analysis)
	song.SetID(id)
	song.SetSequence(sequence)
	song.SetCreatedAt(createdAt)
	song.SetUpdatedAt(updatedAt)
	if deletedAt.Valid {
		song.SetDeletedAt(&deletedAt.Time)
	}

	return song, nil
}

var _ models.Repository[*models.PersistedSong] = (*SongRepository)(nil)
