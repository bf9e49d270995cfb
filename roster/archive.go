/*
archive.go - Published week archive interface

PURPOSE:
  Publication freezes a week: its grid is written under its ISO Sunday
  key and never mutated again. Generation for an archived key restores
  the snapshot verbatim instead of recomputing.

  Keys are raw strings at this boundary so the streak walk can skip (and
  warn about) archive entries whose key fails date parsing instead of
  failing outright.

IMPLEMENTATIONS:
  - roster/store:   in-memory, for tests
  - store/jsonfile: the archive JSON document
  - store/sqlite:   insert-only published_weeks table
*/
package roster

import "context"

// Archive persists published week snapshots. Entries are immutable:
// Put rejects a key that already exists with ErrWeekPublished.
type Archive interface {
	// Put writes a snapshot under the given ISO week-start key.
	Put(ctx context.Context, key string, grid Grid) error

	// Get returns the snapshot for a key, with ok=false when absent.
	Get(ctx context.Context, key string) (Grid, bool, error)

	// Keys returns every archive key, unordered and unvalidated.
	Keys(ctx context.Context) ([]string, error)
}
