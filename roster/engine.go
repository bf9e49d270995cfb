/*
engine.go - Engine facade

PURPOSE:
  One explicit instance owning all mutable schedule state: the shift
  catalog, the constraint store, the calendar, the archive handle, and
  the week under view. There are no package-level singletons; callers
  construct an Engine with its collaborators and drive every operation
  through it.

CONCURRENCY:
  The scheduling model is a single logical actor. The engine still
  serializes its operations behind a mutex because the HTTP layer and
  the file watcher call in from multiple goroutines.

OPERATIONS:
  Week / Regenerate        generate-or-restore the viewed week
  NextWeek / PreviousWeek  navigate, regenerating the new view
  Swap / Override          manual corrections, counters kept consistent
  Publish                  validate the streak cap, then archive
  Streaks / Report         derived views
*/
package roster

import (
	"context"
	"sync"
	"time"
)

// PublishStreakLimit is the streak a publish must not let any bartender
// reach.
const PublishStreakLimit = 4

// EngineConfig carries an Engine's collaborators. Catalog, Constraints
// and Archive are required; Random defaults to a time-seeded picker and
// Clock to time.Now.
type EngineConfig struct {
	Catalog     *Catalog
	Constraints *ConstraintStore
	Archive     Archive
	Random      Picker
	Clock       func() time.Time
}

// Engine owns the schedule state and exposes every scheduling
// operation.
type Engine struct {
	mu       sync.Mutex
	catalog  *Catalog
	store    *ConstraintStore
	archive  Archive
	calendar *Calendar
	random   Picker
	now      func() time.Time
	week     *Week
}

// NewEngine builds an engine from its collaborators.
func NewEngine(cfg EngineConfig) *Engine {
	if cfg.Random == nil {
		cfg.Random = NewTimePicker()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Engine{
		catalog:  cfg.Catalog,
		store:    cfg.Constraints,
		archive:  cfg.Archive,
		calendar: NewCalendar(cfg.Clock),
		random:   cfg.Random,
		now:      cfg.Clock,
	}
}

// Catalog returns the engine's shift catalog for configuration calls.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// Constraints returns the engine's constraint store for configuration
// calls.
func (e *Engine) Constraints() *ConstraintStore { return e.store }

// Week returns the week under view, generating it on first access or
// after navigation. Archived weeks come back as their published
// snapshot. The returned week is a copy; mutate through Swap/Override.
func (e *Engine) Week(ctx context.Context) (*Week, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return nil, err
	}
	return e.week.Clone(), nil
}

// Regenerate discards the week under view, manual edits included, and
// rebuilds it. An archived week is restored, never recomputed.
func (e *Engine) Regenerate(ctx context.Context) (*Week, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.week = nil
	if err := e.ensureWeekLocked(ctx); err != nil {
		return nil, err
	}
	return e.week.Clone(), nil
}

// NextWeek advances the view one week and regenerates it.
func (e *Engine) NextWeek(ctx context.Context) (*Week, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calendar.Advance()
	e.week = nil
	if err := e.ensureWeekLocked(ctx); err != nil {
		return nil, err
	}
	return e.week.Clone(), nil
}

// PreviousWeek moves the view one week back and regenerates it.
func (e *Engine) PreviousWeek(ctx context.Context) (*Week, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.calendar.Previous()
	e.week = nil
	if err := e.ensureWeekLocked(ctx); err != nil {
		return nil, err
	}
	return e.week.Clone(), nil
}

// Swap exchanges two slots of the week under view.
func (e *Engine) Swap(ctx context.Context, day1, shift1, day2, shift2 string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return err
	}
	return e.week.Swap(day1, shift1, day2, shift2)
}

// Override assigns a bartender to a slot without eligibility checks.
func (e *Engine) Override(ctx context.Context, worker, day, shift string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return err
	}
	return e.week.Override(worker, day, shift)
}

// Publish validates the week under view against the Saturday streak cap
// and archives it. A blocked publish names every violator and leaves
// the archive untouched; a published week becomes immutable and later
// generation restores the snapshot.
func (e *Engine) Publish(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return err
	}
	key := ArchiveKey(e.week.Start)
	if _, ok, err := e.archive.Get(ctx, key); err != nil {
		return err
	} else if ok {
		return ErrWeekPublished
	}

	streaks, err := e.trackerLocked().SaturdayStreaks(ctx, e.week.Start, e.week.Grid, true)
	if err != nil {
		return err
	}
	var violators []string
	for _, name := range e.store.Workers() {
		if streaks[name] >= PublishStreakLimit {
			violators = append(violators, name)
		}
	}
	if len(violators) > 0 {
		return &PublishBlockedError{WeekStart: e.week.Start, Violators: violators}
	}
	return e.archive.Put(ctx, key, e.week.Grid.Clone())
}

// Streaks returns the Saturday streak per bartender as of the viewed
// week, optionally counting the in-progress schedule as one more week.
func (e *Engine) Streaks(ctx context.Context, includeCurrent bool) (map[string]int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return nil, err
	}
	return e.trackerLocked().SaturdayStreaks(ctx, e.week.Start, e.week.Grid, includeCurrent)
}

// Report summarizes coverage and per-bartender load for the viewed week.
func (e *Engine) Report(ctx context.Context) (LoadReport, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.ensureWeekLocked(ctx); err != nil {
		return LoadReport{}, err
	}
	return BuildLoadReport(e.week), nil
}

// ViewedWeekStart returns the start date of the week under view.
func (e *Engine) ViewedWeekStart() time.Time {
	return e.calendar.Viewed()
}

func (e *Engine) trackerLocked() *StreakTracker {
	return &StreakTracker{Archive: e.archive, Constraints: e.store, Now: e.now}
}

// ensureWeekLocked generates the viewed week when it is absent or the
// view has moved.
func (e *Engine) ensureWeekLocked(ctx context.Context) error {
	viewed := e.calendar.Viewed()
	if e.week != nil && e.week.Start.Equal(viewed) {
		return nil
	}
	gen := &Generator{
		Catalog:     e.catalog,
		Constraints: e.store,
		Archive:     e.archive,
		Random:      e.random,
		Now:         e.now,
	}
	week, err := gen.Generate(ctx, viewed)
	if err != nil {
		return err
	}
	e.week = week
	return nil
}
