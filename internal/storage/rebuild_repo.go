package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_rebuild_store.go -package=mocks dossier-ai/internal/storage RebuildStore

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RebuildRun records one index rebuild: when it started, how long it took
// and what it processed.
type RebuildRun struct {
	ID             int64     `json:"id"`
	StartedAt      time.Time `json:"started_at"`
	Duration       int64     `json:"duration_ms"`
	FilesProcessed int       `json:"files_processed"`
	FilesSkipped   int       `json:"files_skipped"`
	ChunksIndexed  int       `json:"chunks_indexed"`
}

// RebuildStore defines the interface for rebuild run history.
type RebuildStore interface {
	// Record inserts a rebuild run into the history.
	Record(ctx context.Context, run *RebuildRun) error
	// ListRecent returns the most recent rebuild runs, newest first.
	ListRecent(ctx context.Context, limit int) ([]RebuildRun, error)
}

// RebuildRepo provides methods for rebuild run history operations.
// It implements the RebuildStore interface.
type RebuildRepo struct {
	db *sql.DB
}

// NewRebuildRepo creates a new RebuildRepo.
func NewRebuildRepo(db *sql.DB) *RebuildRepo {
	return &RebuildRepo{db: db}
}

// Record inserts a rebuild run into the history.
func (r *RebuildRepo) Record(ctx context.Context, run *RebuildRun) error {
	result, err := r.db.ExecContext(ctx,
		"INSERT INTO rebuild_runs (started_at, duration_ms, files_processed, files_skipped, chunks_indexed) VALUES (?, ?, ?, ?, ?)",
		run.StartedAt, run.Duration, run.FilesProcessed, run.FilesSkipped, run.ChunksIndexed,
	)
	if err != nil {
		return fmt.Errorf("failed to insert rebuild run: %w", err)
	}
	if id, err := result.LastInsertId(); err == nil {
		run.ID = id
	}
	return nil
}

// ListRecent returns the most recent rebuild runs, newest first.
// Returns an empty slice if no runs exist (not an error).
func (r *RebuildRepo) ListRecent(ctx context.Context, limit int) ([]RebuildRun, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := r.db.QueryContext(ctx,
		"SELECT id, started_at, duration_ms, files_processed, files_skipped, chunks_indexed FROM rebuild_runs ORDER BY started_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rebuild runs: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	runs := make([]RebuildRun, 0, limit)
	for rows.Next() {
		var run RebuildRun
		if err := rows.Scan(&run.ID, &run.StartedAt, &run.Duration, &run.FilesProcessed, &run.FilesSkipped, &run.ChunksIndexed); err != nil {
			return nil, fmt.Errorf("failed to scan rebuild run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rebuild runs: %w", err)
	}
	return runs, nil
}
