/*
settings.go - Persistence interface for configuration state

PURPOSE:
  Constraint records and the shift catalog outlive the process; this
  interface is how they round-trip. jsonfile keeps the documents on
  disk in the interchange layout, sqlite keeps them relationally, and
  roster/store keeps them in memory for tests.

  Loads are forgiving by contract: a file-backed implementation treats
  missing or corrupt documents as empty state with a logged warning,
  never a startup failure.
*/
package roster

import "context"

// SettingsStore persists constraint records and the shift catalog.
type SettingsStore interface {
	LoadConstraints(ctx context.Context) (map[string]Constraints, error)
	SaveConstraints(ctx context.Context, records map[string]Constraints) error
	LoadShifts(ctx context.Context) (map[string]bool, error)
	SaveShifts(ctx context.Context, labels map[string]bool) error
}
