package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mlindemann/menucard-importer/constants"
)

// MenuJob is one processed upload in the history table.
type MenuJob struct {
	ID           uuid.UUID           `json:"id"`
	Filename     string              `json:"filename"`
	SourceFormat string              `json:"source_format"`
	Status       constants.JobStatus `json:"status"`
	ChunkCount   int                 `json:"chunk_count"`
	FailedChunks int                 `json:"failed_chunks"`
	ItemCount    int                 `json:"item_count"`
	DroppedItems int                 `json:"dropped_items"`
	ErrorMessage string              `json:"error_message,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	FinishedAt   *time.Time          `json:"finished_at,omitempty"`
}

// JobOutcome carries the counters written when a job finishes.
type JobOutcome struct {
	ChunkCount   int
	FailedChunks int
	ItemCount    int
	DroppedItems int
	ErrorMessage string
}

// JobStore persists job history in an embedded sqlite database.
type JobStore struct {
	db *sql.DB
}

const jobsDDL = `
CREATE TABLE IF NOT EXISTS menu_jobs (
    id            TEXT PRIMARY KEY,
    filename      TEXT NOT NULL,
    source_format TEXT NOT NULL,
    status        TEXT NOT NULL,
    chunk_count   INTEGER NOT NULL DEFAULT 0,
    failed_chunks INTEGER NOT NULL DEFAULT 0,
    item_count    INTEGER NOT NULL DEFAULT 0,
    dropped_items INTEGER NOT NULL DEFAULT 0,
    error_message TEXT NOT NULL DEFAULT '',
    created_at    TEXT NOT NULL,
    finished_at   TEXT
);`

// OpenJobStore opens (and if needed creates) the sqlite database at path.
// Use ":memory:" for an ephemeral store.
func OpenJobStore(ctx context.Context, path string) (*JobStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q: %w", path, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite %q: %w", path, err)
	}
	if _, err := db.ExecContext(ctx, jobsDDL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate menu_jobs: %w", err)
	}
	return &JobStore{db: db}, nil
}

func (s *JobStore) Close() error {
	return s.db.Close()
}

// Start inserts a RUNNING job row and returns it.
func (s *JobStore) Start(ctx context.Context, filename string, format constants.SourceFormat) (MenuJob, error) {
	job := MenuJob{
		ID:           uuid.New(),
		Filename:     filename,
		SourceFormat: string(format),
		Status:       constants.JobStatusRunning,
		CreatedAt:    time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO menu_jobs (id, filename, source_format, status, created_at) VALUES (?, ?, ?, ?, ?)`,
		job.ID.String(), job.Filename, job.SourceFormat, string(job.Status), job.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return MenuJob{}, fmt.Errorf("insert job: %w", err)
	}
	return job, nil
}

// Finish writes the terminal status and counters for a job.
func (s *JobStore) Finish(ctx context.Context, id uuid.UUID, status constants.JobStatus, out JobOutcome) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE menu_jobs
		    SET status = ?, chunk_count = ?, failed_chunks = ?, item_count = ?,
		        dropped_items = ?, error_message = ?, finished_at = ?
		  WHERE id = ?`,
		string(status), out.ChunkCount, out.FailedChunks, out.ItemCount,
		out.DroppedItems, out.ErrorMessage, now, id.String(),
	)
	if err != nil {
		return fmt.Errorf("finish job %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("finish job %s: no such job", id)
	}
	return nil
}

// GetByID loads one job.
func (s *JobStore) GetByID(ctx context.Context, id uuid.UUID) (MenuJob, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, source_format, status, chunk_count, failed_chunks,
		        item_count, dropped_items, error_message, created_at, finished_at
		   FROM menu_jobs WHERE id = ?`, id.String())
	return scanJob(row)
}

// List returns the most recent jobs, newest first.
func (s *JobStore) List(ctx context.Context, limit int) ([]MenuJob, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, source_format, status, chunk_count, failed_chunks,
		        item_count, dropped_items, error_message, created_at, finished_at
		   FROM menu_jobs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []MenuJob
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(r rowScanner) (MenuJob, error) {
	var (
		job        MenuJob
		idStr      string
		status     string
		createdAt  string
		finishedAt sql.NullString
	)
	err := r.Scan(&idStr, &job.Filename, &job.SourceFormat, &status,
		&job.ChunkCount, &job.FailedChunks, &job.ItemCount, &job.DroppedItems,
		&job.ErrorMessage, &createdAt, &finishedAt)
	if err != nil {
		return MenuJob{}, fmt.Errorf("scan job: %w", err)
	}
	if job.ID, err = uuid.Parse(idStr); err != nil {
		return MenuJob{}, fmt.Errorf("parse job id %q: %w", idStr, err)
	}
	job.Status = constants.JobStatus(status)
	if job.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return MenuJob{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	if finishedAt.Valid {
		t, err := time.Parse(time.RFC3339Nano, finishedAt.String)
		if err != nil {
			return MenuJob{}, fmt.Errorf("parse finished_at %q: %w", finishedAt.String, err)
		}
		job.FinishedAt = &t
	}
	return job, nil
}
