/*
Package jsonfile persists the engine's three documents as flat JSON
files in a data directory.

DOCUMENTS:
  constraints.json  { name: {allowedShifts, restrictedDays, restrictedShifts, maxShifts} }
  shifts.json       { "start-end": active }
  archive.json      { "YYYY-MM-DD": { dayLabel: { shiftLabel: occupant } } }

RECOVERY CONTRACT:
  A missing or malformed document is treated as empty state with a
  non-fatal warning. This deliberately trades silent history loss for
  never refusing to start; the warning is the caller's only signal.

ATOMICITY:
  Every save writes a temp file in the same directory and renames it
  over the target, so a crash mid-write never leaves a torn document.

SEE ALSO:
  - watch.go: fsnotify-based reload notifications
  - store/sqlite: relational backend with the same interfaces
*/
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/warp/rota-engine/roster"
)

const (
	ConstraintsFile = "constraints.json"
	ShiftsFile      = "shifts.json"
	ArchiveFile     = "archive.json"
)

// Store reads and writes the three JSON documents under one directory.
// It implements roster.SettingsStore and roster.Archive. Archive calls
// re-read archive.json on each use; persistence is a blocking call with
// no cache to go stale.
type Store struct {
	dir string
}

// New returns a store rooted at dir, creating the directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the data directory.
func (s *Store) Dir() string { return s.dir }

// =============================================================================
// SETTINGS DOCUMENTS
// =============================================================================

func (s *Store) LoadConstraints(_ context.Context) (map[string]roster.Constraints, error) {
	out := make(map[string]roster.Constraints)
	s.readDoc(ConstraintsFile, &out)
	return out, nil
}

func (s *Store) SaveConstraints(_ context.Context, records map[string]roster.Constraints) error {
	return s.writeDoc(ConstraintsFile, records)
}

func (s *Store) LoadShifts(_ context.Context) (map[string]bool, error) {
	out := make(map[string]bool)
	s.readDoc(ShiftsFile, &out)
	return out, nil
}

func (s *Store) SaveShifts(_ context.Context, labels map[string]bool) error {
	return s.writeDoc(ShiftsFile, labels)
}

// =============================================================================
// ARCHIVE DOCUMENT
// =============================================================================

func (s *Store) Put(_ context.Context, key string, grid roster.Grid) error {
	weeks := make(map[string]roster.Grid)
	s.readDoc(ArchiveFile, &weeks)
	if _, ok := weeks[key]; ok {
		return roster.ErrWeekPublished
	}
	weeks[key] = grid
	return s.writeDoc(ArchiveFile, weeks)
}

func (s *Store) Get(_ context.Context, key string) (roster.Grid, bool, error) {
	weeks := make(map[string]roster.Grid)
	s.readDoc(ArchiveFile, &weeks)
	grid, ok := weeks[key]
	return grid, ok, nil
}

func (s *Store) Keys(_ context.Context) ([]string, error) {
	weeks := make(map[string]roster.Grid)
	s.readDoc(ArchiveFile, &weeks)
	keys := make([]string, 0, len(weeks))
	for k := range weeks {
		keys = append(keys, k)
	}
	return keys, nil
}

// =============================================================================
// FILE PLUMBING
// =============================================================================

// readDoc unmarshals a document into v. Missing or corrupt files leave
// v untouched and log a warning.
func (s *Store) readDoc(name string, v any) {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("jsonfile: cannot read %s, starting empty: %v", name, err)
		}
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		log.Printf("jsonfile: %s is malformed, starting empty: %v", name, err)
	}
}

// writeDoc marshals v and atomically replaces the document.
func (s *Store) writeDoc(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}
