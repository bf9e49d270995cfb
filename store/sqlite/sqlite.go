/*
Package sqlite provides a SQLite-backed implementation of the storage
interfaces.

PURPOSE:
  Implements roster.SettingsStore and roster.Archive on SQLite for
  deployments that outgrow the JSON documents. The same shapes are kept:
  constraint records are stored as their JSON interchange form, archive
  snapshots as the week grid JSON keyed by ISO Sunday date.

IMMUTABILITY ENFORCEMENT:
  published_weeks is insert-only. There is no UPDATE or DELETE path;
  writing an existing key fails with roster.ErrWeekPublished.

WAL MODE:
  The database is opened with WAL for better read concurrency and crash
  recovery.

SEE ALSO:
  - roster/archive.go:  interface contracts
  - store/jsonfile:     document-based backend with the same interfaces
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/rota-engine/roster"
)

// Store implements the settings and archive interfaces on SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New opens (or creates) the database at dbPath and migrates the
// schema. Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS bartenders (
		name TEXT PRIMARY KEY,
		constraints_json TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS shifts (
		label TEXT PRIMARY KEY,
		active INTEGER NOT NULL DEFAULT 1
	);

	-- Published weeks (insert-only archive)
	CREATE TABLE IF NOT EXISTS published_weeks (
		week_start TEXT PRIMARY KEY,
		schedule_json TEXT NOT NULL,
		published_at TEXT NOT NULL DEFAULT (datetime('now'))
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// SETTINGS
// =============================================================================

func (s *Store) LoadConstraints(ctx context.Context) (map[string]roster.Constraints, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT name, constraints_json FROM bartenders`)
	if err != nil {
		return nil, fmt.Errorf("load constraints: %w", err)
	}
	defer rows.Close()

	out := make(map[string]roster.Constraints)
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, err
		}
		var c roster.Constraints
		if err := json.Unmarshal([]byte(raw), &c); err != nil {
			return nil, fmt.Errorf("constraints for %s: %w", name, err)
		}
		out[name] = c
	}
	return out, rows.Err()
}

func (s *Store) SaveConstraints(ctx context.Context, records map[string]roster.Constraints) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM bartenders`); err != nil {
		return err
	}
	for name, c := range records {
		raw, err := json.Marshal(c)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bartenders (name, constraints_json) VALUES (?, ?)`,
			name, string(raw)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Store) LoadShifts(ctx context.Context) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rows, err := s.db.QueryContext(ctx, `SELECT label, active FROM shifts`)
	if err != nil {
		return nil, fmt.Errorf("load shifts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]bool)
	for rows.Next() {
		var label string
		var active int
		if err := rows.Scan(&label, &active); err != nil {
			return nil, err
		}
		out[label] = active != 0
	}
	return out, rows.Err()
}

func (s *Store) SaveShifts(ctx context.Context, labels map[string]bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM shifts`); err != nil {
		return err
	}
	for label, active := range labels {
		n := 0
		if active {
			n = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO shifts (label, active) VALUES (?, ?)`, label, n); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// =============================================================================
// ARCHIVE (insert-only)
// =============================================================================

func (s *Store) Put(ctx context.Context, key string, grid roster.Grid) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1) FROM published_weeks WHERE week_start = ?`, key).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return roster.ErrWeekPublished
	}

	raw, err := json.Marshal(grid)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO published_weeks (week_start, schedule_json) VALUES (?, ?)`,
		key, string(raw))
	return err
}

func (s *Store) Get(ctx context.Context, key string) (roster.Grid, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT schedule_json FROM published_weeks WHERE week_start = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var grid roster.Grid
	if err := json.Unmarshal([]byte(raw), &grid); err != nil {
		return nil, false, fmt.Errorf("snapshot for %s: %w", key, err)
	}
	return grid, true, nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT week_start FROM published_weeks`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}
