// Package sqlitestore keeps slots as rows of a SQLite key-value table.
package sqlitestore

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/idilsaglam/tada/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS slots (
	key        TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at INTEGER NOT NULL
)`

// Slot is a store.Slot backed by a SQLite database file.
type Slot struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (creating if needed) the database at path and ensures the table exists.
func Open(path string) (*Slot, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return &Slot{db: db, now: time.Now}, nil
}

func (s *Slot) Get(key string) ([]byte, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM slots WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query slot: %w", err)
	}
	return []byte(value), nil
}

func (s *Slot) Set(key string, value []byte) error {
	_, err := s.db.Exec(`
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), s.now().UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert slot: %w", err)
	}
	return nil
}

// UpdatedAt reports when key was last written.
func (s *Slot) UpdatedAt(key string) (time.Time, error) {
	var ms int64
	err := s.db.QueryRow(`SELECT updated_at FROM slots WHERE key = ?`, key).Scan(&ms)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, store.ErrNotFound
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("query slot: %w", err)
	}
	return time.UnixMilli(ms), nil
}

func (s *Slot) Close() error {
	return s.db.Close()
}
