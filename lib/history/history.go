// Package history implements the sqlite-backed search history used by the
// CLI: one row per completed search with its query identity, target and
// outcome counts.
package history

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS searches (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	query       TEXT    NOT NULL,
	mode        TEXT    NOT NULL,
	db          INTEGER NOT NULL,
	endpoint    TEXT    NOT NULL,
	hits        INTEGER NOT NULL,
	reported    INTEGER NOT NULL,
	included    INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL,
	created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_searches_created_at ON searches(created_at);
`

// Entry is one recorded search.
type Entry struct {
	ID         int64
	Query      string
	Mode       string
	DB         uint64
	Endpoint   string
	Hits       uint64
	Reported   uint64
	Included   uint64
	DurationMS int64
	CreatedAt  time.Time
}

// Store is a sqlite-backed history store.
type Store struct {
	db *sql.DB
}

// Open creates or opens the history database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("history path required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Record appends one entry to the history.
func (s *Store) Record(e Entry) error {
	_, err := s.db.Exec(
		`INSERT INTO searches (query, mode, db, endpoint, hits, reported, included, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Query, e.Mode, e.DB, e.Endpoint, e.Hits, e.Reported, e.Included, e.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}
	return nil
}

// Recent returns up to n entries, newest first.
func (s *Store) Recent(n int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT id, query, mode, db, endpoint, hits, reported, included, duration_ms, created_at
		 FROM searches ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Query, &e.Mode, &e.DB, &e.Endpoint,
			&e.Hits, &e.Reported, &e.Included, &e.DurationMS, &e.CreatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}
