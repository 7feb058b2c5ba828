// Package store persists elapsed simulated time across runs in a small
// sqlite key-value table. Persistence failures are never fatal: loads fall
// back to the default epoch and the caller logs write errors.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "modernc.org/sqlite"
)

// SimTime is the elapsed simulated time.
type SimTime struct {
	Day    int
	Hour   int
	Minute int
}

// DefaultTime is the epoch used when no valid saved state exists.
func DefaultTime() SimTime {
	return SimTime{Day: 1, Hour: 0, Minute: 0}
}

// TimeStore persists SimTime in a sqlite database.
type TimeStore struct {
	db *sql.DB
}

// Open opens (or creates) the store at path.
func Open(path string) (*TimeStore, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &TimeStore{db: db}, nil
}

// Load reads the saved simulated time. Missing or corrupt data returns the
// default epoch and no error; only real I/O failures are reported.
func (s *TimeStore) Load() (SimTime, error) {
	t := DefaultTime()

	day, ok, err := s.getInt("day")
	if err != nil {
		return DefaultTime(), err
	}
	if !ok {
		return DefaultTime(), nil
	}
	hour, ok, err := s.getInt("hour")
	if err != nil || !ok {
		return DefaultTime(), err
	}
	minute, ok, err := s.getInt("minute")
	if err != nil || !ok {
		return DefaultTime(), err
	}

	if day < 1 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return DefaultTime(), nil
	}
	t.Day, t.Hour, t.Minute = day, hour, minute
	return t, nil
}

// Save writes the simulated time.
func (s *TimeStore) Save(t SimTime) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	for _, kv := range []struct {
		k string
		v int
	}{
		{"day", t.Day},
		{"hour", t.Hour},
		{"minute", t.Minute},
	} {
		if _, err := tx.Exec(
			`INSERT INTO kv(key, value) VALUES(?, ?)
			 ON CONFLICT(key) DO UPDATE SET value=excluded.value`,
			kv.k, strconv.Itoa(kv.v),
		); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("save %s: %w", kv.k, err)
		}
	}
	return tx.Commit()
}

// Close closes the underlying database.
func (s *TimeStore) Close() error {
	return s.db.Close()
}

// getInt reads one integer key. ok is false when the key is missing or the
// value does not parse.
func (s *TimeStore) getInt(key string) (val int, ok bool, err error) {
	var raw string
	err = s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	v, perr := strconv.Atoi(raw)
	if perr != nil {
		return 0, false, nil
	}
	return v, true, nil
}
