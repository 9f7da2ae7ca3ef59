// Package runlog persists a history of import and export runs in a local
// sqlite database so past conversions can be audited from the CLI.
package runlog

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jameskane05/shadow/internal/timeutil"
)

// Run kinds.
const (
	KindImport = "import"
	KindExport = "export"
)

// Run is one recorded pipeline run.
type Run struct {
	ID              string
	Kind            string
	Source          string
	Frames          int
	DurationSeconds float64
	ReferenceSpace  string
	Status          string
	Message         string
	CreatedAt       time.Time
}

// DB wraps the sqlite handle holding the run history.
type DB struct {
	*sql.DB
	clock timeutil.Clock
}

// Open opens (creating if necessary) the run log at path and applies any
// pending schema migrations. clock defaults to the real clock when nil.
func Open(path string, clock timeutil.Clock) (*DB, error) {
	if clock == nil {
		clock = timeutil.RealClock{}
	}
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open run log: %w", err)
	}
	db := &DB{DB: sqlDB, clock: clock}
	if err := db.migrateUp(); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return db, nil
}

// Record inserts a run row and returns its id. A fresh UUID is assigned when
// the run has none.
func (db *DB) Record(r Run) (string, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	createdAt := r.CreatedAt
	if createdAt.IsZero() {
		createdAt = db.clock.Now().UTC()
	}
	_, err := db.Exec(
		`INSERT INTO runs (
			id, kind, source, frames, duration_seconds,
			reference_space, status, message, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Kind, r.Source, r.Frames, r.DurationSeconds,
		r.ReferenceSpace, r.Status, r.Message, createdAt,
	)
	if err != nil {
		return "", fmt.Errorf("failed to record run: %w", err)
	}
	return r.ID, nil
}

// List returns the most recent runs, newest first.
func (db *DB) List(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.Query(
		`SELECT id, kind, source, frames, duration_seconds,
			reference_space, status, message, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(
			&r.ID, &r.Kind, &r.Source, &r.Frames, &r.DurationSeconds,
			&r.ReferenceSpace, &r.Status, &r.Message, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
