// Package history records every generate run in the SQLite ledger so that
// "when did the schema last change, and what did it produce" can be answered
// without diffing the output tree.
package history

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/teranos/schemagen/db"
	"github.com/teranos/schemagen/errors"
)

// Status is the outcome of a run.
type Status string

const (
	StatusSkipped   Status = "skipped"
	StatusGenerated Status = "generated"
	StatusFailed    Status = "failed"
)

// Run is one row of the ledger.
type Run struct {
	ID            string    `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	FinishedAt    time.Time `json:"finished_at"`
	Stale         bool      `json:"stale"`
	SchemaVersion string    `json:"schema_version"`
	ArtifactCount int       `json:"artifact_count"`
	Status        Status    `json:"status"`
	Error         string    `json:"error,omitempty"`
}

// Duration is the wall time of the run.
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store reads and writes runs.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore returns a Store over a migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, now: time.Now}
}

// Begin starts a run with a fresh ID. Nothing is written until Finish.
func (s *Store) Begin() *Run {
	return &Run{
		ID:        uuid.NewString(),
		StartedAt: s.now().UTC(),
	}
}

// Finish stamps the run with its outcome and records it. A non-nil runErr
// marks the run failed regardless of status.
func (s *Store) Finish(run *Run, status Status, runErr error) error {
	run.FinishedAt = s.now().UTC()
	run.Status = status
	if runErr != nil {
		run.Status = StatusFailed
		run.Error = runErr.Error()
	}
	return s.Record(run)
}

// Record inserts run as-is.
func (s *Store) Record(run *Run) error {
	if run.ID == "" {
		return errors.New("run has no id")
	}
	_, err := s.db.Exec(`
		INSERT INTO generation_runs (
			id, started_at, finished_at, stale, schema_version,
			artifact_count, status, error
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt, run.FinishedAt, run.Stale, run.SchemaVersion,
		run.ArtifactCount, string(run.Status), run.Error,
	)
	if err != nil {
		err = errors.Wrapf(err, "record run %s", run.ID)
		if db.IsDatabaseClosed(err) {
			err = errors.Mark(err, db.ErrDatabaseClosed)
		}
		return err
	}
	return nil
}

// Recent returns up to limit runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) Recent(limit int) ([]Run, error) {
	query := `
		SELECT id, started_at, finished_at, stale, schema_version,
			artifact_count, status, error
		FROM generation_runs
		ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	return runs, nil
}

// Last returns the most recent run, or nil when the ledger is empty.
func (s *Store) Last() (*Run, error) {
	runs, err := s.Recent(1)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// LastGenerated returns the most recent run that wrote artifacts, or nil.
func (s *Store) LastGenerated() (*Run, error) {
	row := s.db.QueryRow(`
		SELECT id, started_at, finished_at, stale, schema_version,
			artifact_count, status, error
		FROM generation_runs
		WHERE status = ?
		ORDER BY started_at DESC, id
		LIMIT 1`, string(StatusGenerated))

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run    Run
		status string
	)
	err := row.Scan(
		&run.ID, &run.StartedAt, &run.FinishedAt, &run.Stale, &run.SchemaVersion,
		&run.ArtifactCount, &status, &run.Error,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, errors.Wrap(err, "scan run")
	}
	run.Status = Status(status)
	return &run, nil
}
