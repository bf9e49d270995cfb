/*
streak.go - Consecutive-Saturday accounting

PURPOSE:
  Computes, per bartender, how many consecutive recent weeks ended with
  a Saturday assignment. Generation uses the streak to keep anyone off a
  fourth straight Saturday; publication refuses weeks that would push a
  streak to four.

WALK SEMANTICS:
  Archived weeks are walked in ascending date order. Every known
  bartender is touched every week: present on that Saturday (and not
  Unassigned) increments the streak, anything else resets it to zero. A
  week without a Saturday row resets everyone. Keys that do not parse as
  dates are skipped with a warning, as are weeks after the week under
  view.
*/
package roster

import (
	"context"
	"log"
	"sort"
	"time"
)

// StreakTracker computes Saturday streaks from the archive plus,
// optionally, the in-progress week.
type StreakTracker struct {
	Archive     Archive
	Constraints *ConstraintStore

	// Now is the clock used to decide whether the viewed week is in the
	// future; nil means time.Now.
	Now func() time.Time
}

// SaturdayStreaks returns the streak per known bartender as of the week
// starting at viewStart. When includeCurrent is true and viewStart is
// not in the future, the in-progress grid is applied as one more step
// after the archive walk; current may be nil when includeCurrent is
// false.
func (st *StreakTracker) SaturdayStreaks(ctx context.Context, viewStart time.Time, current Grid, includeCurrent bool) (map[string]int, error) {
	streaks := make(map[string]int)
	for _, name := range st.Constraints.Workers() {
		streaks[name] = 0
	}

	keys, err := st.Archive.Keys(ctx)
	if err != nil {
		return nil, err
	}

	type archivedWeek struct {
		key   string
		start time.Time
	}
	weeks := make([]archivedWeek, 0, len(keys))
	for _, key := range keys {
		start, err := time.Parse(ArchiveKeyLayout, key)
		if err != nil {
			log.Printf("roster: skipping archive entry with bad key %q: %v", key, err)
			continue
		}
		if start.After(viewStart) {
			continue
		}
		weeks = append(weeks, archivedWeek{key: key, start: start})
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].start.Before(weeks[j].start) })

	for _, wk := range weeks {
		grid, ok, err := st.Archive.Get(ctx, wk.key)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}
		applySaturdayStep(streaks, grid)
	}

	if includeCurrent {
		now := time.Now
		if st.Now != nil {
			now = st.Now
		}
		if !viewStart.After(now()) {
			applySaturdayStep(streaks, current)
		}
	}
	return streaks, nil
}

// applySaturdayStep advances every tracked streak by one week of
// evidence: increment on a Saturday assignment, reset otherwise.
func applySaturdayStep(streaks map[string]int, grid Grid) {
	row := grid.SaturdayRow()
	if row == nil {
		for name := range streaks {
			streaks[name] = 0
		}
		return
	}
	worked := make(map[string]bool, len(row))
	for _, who := range row {
		if who != Unassigned {
			worked[who] = true
		}
	}
	for name := range streaks {
		if worked[name] {
			streaks[name]++
		} else {
			streaks[name] = 0
		}
	}
}
