// Package history keeps a log of rendered embeds in a local SQLite
// database. Recording is best-effort: a history failure must never break
// a render, so callers treat errors here as advisory.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded render.
type Entry struct {
	Service   string
	MediaID   string
	Width     int
	Height    int
	CreatedAt time.Time
}

// Store wraps the history database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating history dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrate(db *sql.DB) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS renders (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		service TEXT NOT NULL,
		media_id TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_renders_created_at ON renders(created_at);
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrating history db: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Record appends one render to the log.
func (s *Store) Record(e Entry) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		`INSERT INTO renders (service, media_id, width, height, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Service, e.MediaID, e.Width, e.Height, e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("recording render: %w", err)
	}
	return nil
}

// Recent returns the most recent renders, newest first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT service, media_id, width, height, created_at FROM renders ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.Service, &e.MediaID, &e.Width, &e.Height, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear removes all recorded renders.
func (s *Store) Clear() error {
	if _, err := s.db.Exec(`DELETE FROM renders`); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	return nil
}
