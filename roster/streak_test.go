package roster_test

import (
	"context"
	"testing"
	"time"

	"github.com/warp/rota-engine/roster"
	"github.com/warp/rota-engine/roster/store"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

var viewStart = time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC) // a Sunday

func testClock() time.Time {
	return time.Date(2026, time.August, 30, 12, 0, 0, 0, time.UTC)
}

// satGrid builds a minimal week grid whose Saturday slot holds the given
// occupants, one per shift label "s0", "s1", ...
func satGrid(weekStart time.Time, occupants ...string) roster.Grid {
	row := make(map[string]string)
	for i, who := range occupants {
		row["18-2"+string(rune('0'+i))] = who
	}
	if len(occupants) == 0 {
		row["18-23"] = roster.Unassigned
	}
	return roster.Grid{roster.DayLabel(weekStart, 6): row}
}

// noSatGrid builds a grid with no Saturday row at all.
func noSatGrid(weekStart time.Time) roster.Grid {
	return roster.Grid{roster.DayLabel(weekStart, 0): {"18-23": "someone"}}
}

func archiveWeeks(t *testing.T, arc roster.Archive, grids map[time.Time]roster.Grid) {
	t.Helper()
	for start, grid := range grids {
		if err := arc.Put(context.Background(), roster.ArchiveKey(start), grid); err != nil {
			t.Fatalf("archiving %v: %v", start, err)
		}
	}
}

func newTracker(arc roster.Archive, names ...string) *roster.StreakTracker {
	cs := roster.NewConstraintStore()
	for _, n := range names {
		_ = cs.Add(n)
	}
	return &roster.StreakTracker{Archive: arc, Constraints: cs, Now: testClock}
}

// =============================================================================
// STREAK WALK
// =============================================================================

func TestSaturdayStreaks_AbsentWorkerIsZero(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -14): satGrid(viewStart.AddDate(0, 0, -14), "ann"),
		viewStart.AddDate(0, 0, -7):  satGrid(viewStart.AddDate(0, 0, -7), "ann"),
	})
	tr := newTracker(arc, "ann", "bob")

	streaks, err := tr.SaturdayStreaks(context.Background(), viewStart, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["bob"] != 0 {
		t.Errorf("bob's streak = %d, want 0", streaks["bob"])
	}
	if streaks["ann"] != 2 {
		t.Errorf("ann's streak = %d, want 2", streaks["ann"])
	}
}

func TestSaturdayStreaks_GapResets(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -21): satGrid(viewStart.AddDate(0, 0, -21), "ann"),
		viewStart.AddDate(0, 0, -14): satGrid(viewStart.AddDate(0, 0, -14)), // Unassigned Saturday
		viewStart.AddDate(0, 0, -7):  satGrid(viewStart.AddDate(0, 0, -7), "ann"),
	})
	tr := newTracker(arc, "ann")

	streaks, err := tr.SaturdayStreaks(context.Background(), viewStart, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["ann"] != 1 {
		t.Errorf("ann's streak = %d, want 1 (reset by the gap week)", streaks["ann"])
	}
}

func TestSaturdayStreaks_MissingSaturdayRowResetsEveryone(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -14): satGrid(viewStart.AddDate(0, 0, -14), "ann"),
		viewStart.AddDate(0, 0, -7):  noSatGrid(viewStart.AddDate(0, 0, -7)),
	})
	tr := newTracker(arc, "ann")

	streaks, err := tr.SaturdayStreaks(context.Background(), viewStart, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["ann"] != 0 {
		t.Errorf("ann's streak = %d, want 0 after a week with no Saturday row", streaks["ann"])
	}
}

func TestSaturdayStreaks_SkipsBadKeysAndFutureWeeks(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -7): satGrid(viewStart.AddDate(0, 0, -7), "ann"),
		viewStart.AddDate(0, 0, 7):  satGrid(viewStart.AddDate(0, 0, 7), "ann"), // after the view
	})
	// A key that does not parse as a date must be skipped, not fatal.
	if err := arc.Put(context.Background(), "not-a-date", satGrid(viewStart, "ann")); err != nil {
		t.Fatal(err)
	}
	tr := newTracker(arc, "ann")

	streaks, err := tr.SaturdayStreaks(context.Background(), viewStart, nil, false)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["ann"] != 1 {
		t.Errorf("ann's streak = %d, want 1 (bad key and future week ignored)", streaks["ann"])
	}
}

func TestSaturdayStreaks_IncludeCurrent(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -7): satGrid(viewStart.AddDate(0, 0, -7), "ann"),
	})
	tr := newTracker(arc, "ann")
	current := satGrid(viewStart, "ann")

	streaks, err := tr.SaturdayStreaks(context.Background(), viewStart, current, true)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["ann"] != 2 {
		t.Errorf("ann's streak = %d, want 2 with the current week counted", streaks["ann"])
	}

	// A future view keeps the current week out even when asked for.
	future := viewStart.AddDate(0, 0, 7)
	streaks, err = tr.SaturdayStreaks(context.Background(), future, satGrid(future, "ann"), true)
	if err != nil {
		t.Fatal(err)
	}
	if streaks["ann"] != 1 {
		t.Errorf("ann's streak = %d, want 1 (future current week excluded)", streaks["ann"])
	}
}
