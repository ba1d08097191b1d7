package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/desertthunder/chordex/internal/models"
	"github.com/desertthunder/chordex/internal/shared"
)

// RunRepository records harvest runs.
type RunRepository struct {
	db *sql.DB
}

// NewRunRepository creates a new RunRepository with the given database connection
func NewRunRepository(db *sql.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Start inserts an unfinished run and assigns its ID.
func (r *RunRepository) Start(run *models.HarvestRun) error {
	if run.Genre == "" {
		return fmt.Errorf("%w: genre is required", shared.ErrMissingArgument)
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	run.ID = shared.GenerateID()

	query := `INSERT INTO harvest_runs (id, genre, total, started_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.Exec(query, run.ID, run.Genre, run.Total, run.StartedAt); err != nil {
		return fmt.Errorf("failed to insert harvest run: %w", err)
	}
	return nil
}

// Finish stores the final counters of a run and marks it finished.
func (r *RunRepository) Finish(run *models.HarvestRun) error {
	now := time.Now()

	query := `
		UPDATE harvest_runs
		SET total = ?, saved = ?, skipped = ?, failed = ?, finished_at = ?
		WHERE id = ?
	`

	result, err := r.db.Exec(query, run.Total, run.Saved, run.Skipped, run.Failed, now, run.ID)
	if err != nil {
		return fmt.Errorf("failed to update harvest run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("harvest run not found: %s", run.ID)
	}

	run.FinishedAt = &now
	return nil
}

// List returns the most recent runs first, optionally filtered by genre.
func (r *RunRepository) List(genre string, limit int) ([]*models.HarvestRun, error) {
	query := `
		SELECT id, genre, total, saved, skipped, failed, started_at, finished_at
		FROM harvest_runs
	`
	args := []any{}

	if genre != "" {
		query += " WHERE genre = ?"
		args = append(args, genre)
	}

	query += " ORDER BY started_at DESC"

	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query harvest runs: %w", err)
	}
	defer rows.Close()

	var runs []*models.HarvestRun
	for rows.Next() {
		var (
			run        models.HarvestRun
			finishedAt sql.NullTime
		)
		if err := rows.Scan(&run.ID, &run.Genre, &run.Total, &run.Saved, &run.Skipped, &run.Failed, &run.StartedAt, &finishedAt); err != nil {
			return nil, fmt.Errorf("failed to scan harvest run: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}
		runs = append(runs, &run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}
