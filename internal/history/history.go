// Package history keeps a local record of collection runs in sqlite.
package history

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/mattn/go-sqlite3" // sqlite driver
)

// Run is one recorded collection run.
type Run struct {
	ID            int64     `db:"id"`
	Root          string    `db:"root"`
	StartedAt     time.Time `db:"started_at"`
	FilesScanned  int       `db:"files_scanned"`
	FilesSelected int       `db:"files_selected"`
	Bytes         int       `db:"bytes"`
	Tokens        int       `db:"tokens"`
	OutputPath    string    `db:"output_path"`
	Format        string    `db:"format"`
}

// Store wraps the runs table.
type Store struct {
	DB     *sqlx.DB
	Logger *slog.Logger
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY,
	root TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL,
	files_scanned INTEGER NOT NULL,
	files_selected INTEGER NOT NULL,
	bytes INTEGER NOT NULL,
	tokens INTEGER NOT NULL,
	output_path TEXT NOT NULL DEFAULT '',
	format TEXT NOT NULL DEFAULT ''
);
`

// Open opens (creating if needed) the history database at path and ensures
// the schema exists.
func Open(path string, logger *slog.Logger) (*Store, error) {
	db, err := sqlx.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize history db: %w", err)
	}
	return &Store{DB: db, Logger: logger}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Record inserts one run row.
func (s *Store) Record(run Run) error {
	_, err := s.DB.Exec(
		`INSERT INTO runs (root, started_at, files_scanned, files_selected, bytes, tokens, output_path, format)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Root, run.StartedAt, run.FilesScanned, run.FilesSelected,
		run.Bytes, run.Tokens, run.OutputPath, run.Format,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(limit int) ([]Run, error) {
	var runs []Run
	err := s.DB.Select(&runs, `SELECT * FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}
