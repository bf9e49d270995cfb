package roster_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rota-engine/roster"
	"github.com/warp/rota-engine/roster/store"
)

func newTestEngine(t *testing.T, arc roster.Archive, names ...string) *roster.Engine {
	t.Helper()
	catalog := roster.NewCatalog()
	require.NoError(t, catalog.Add("18-23", true))

	cs := roster.NewConstraintStore()
	for _, n := range names {
		require.NoError(t, cs.Add(n))
		require.NoError(t, cs.Set(n, roster.Constraints{MaxShifts: 7}))
	}
	return roster.NewEngine(roster.EngineConfig{
		Catalog:     catalog,
		Constraints: cs,
		Archive:     arc,
		Random:      roster.NewPicker(99),
		Clock:       testClock,
	})
}

func TestEngine_PublishThenRestore(t *testing.T) {
	arc := store.NewMemory()
	engine := newTestEngine(t, arc, "ann", "bob")
	ctx := context.Background()

	before, err := engine.Week(ctx)
	require.NoError(t, err)
	require.Equal(t, viewStart, before.Start)

	require.NoError(t, engine.Publish(ctx))

	// Regeneration of a published week restores the snapshot verbatim.
	after, err := engine.Regenerate(ctx)
	require.NoError(t, err)
	assert.Equal(t, before.Grid, after.Grid, "published week must be restored, not recomputed")

	// A second publish of the same week is rejected and the archive untouched.
	err = engine.Publish(ctx)
	assert.ErrorIs(t, err, roster.ErrWeekPublished)
	keys, err := arc.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 1)
}

func TestEngine_PublishBlockedByStreakCap(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -21): satGrid(viewStart.AddDate(0, 0, -21), "ann"),
		viewStart.AddDate(0, 0, -14): satGrid(viewStart.AddDate(0, 0, -14), "ann"),
		viewStart.AddDate(0, 0, -7):  satGrid(viewStart.AddDate(0, 0, -7), "ann"),
	})
	// ann is the only bartender, so the Saturday filter degrades and the
	// generated week puts her on a fourth straight Saturday.
	engine := newTestEngine(t, arc, "ann")
	ctx := context.Background()

	week, err := engine.Week(ctx)
	require.NoError(t, err)
	require.Equal(t, "ann", week.Grid.SaturdayRow()["18-23"])

	err = engine.Publish(ctx)
	require.Error(t, err)

	var blocked *roster.PublishBlockedError
	require.True(t, errors.As(err, &blocked), "want PublishBlockedError, got %v", err)
	assert.Equal(t, []string{"ann"}, blocked.Violators)
	assert.True(t, errors.Is(err, roster.ErrPublishBlocked))

	// No partial commit.
	keys, err := arc.Keys(ctx)
	require.NoError(t, err)
	assert.Len(t, keys, 3)

	// Clearing the Saturday slot unblocks publication.
	require.NoError(t, engine.Override(ctx, roster.Unassigned, "Saturday", "18-23"))
	require.NoError(t, engine.Publish(ctx))
}

func TestEngine_Navigation(t *testing.T) {
	engine := newTestEngine(t, store.NewMemory(), "ann")
	ctx := context.Background()

	next, err := engine.NextWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, viewStart.AddDate(0, 0, 7), next.Start)

	back, err := engine.PreviousWeek(ctx)
	require.NoError(t, err)
	assert.Equal(t, viewStart, back.Start)
}

func TestEngine_SwapKeepsCountersConsistent(t *testing.T) {
	engine := newTestEngine(t, store.NewMemory(), "ann", "bob")
	ctx := context.Background()

	require.NoError(t, engine.Swap(ctx, "Monday", "18-23", "Friday", "18-23"))
	week, err := engine.Week(ctx)
	require.NoError(t, err)

	recount := week.Clone()
	recount.RecountLoads()
	assert.Equal(t, recount.Loads, week.Loads)
}

func TestEngine_StreaksIncludeCurrentWeek(t *testing.T) {
	arc := store.NewMemory()
	archiveWeeks(t, arc, map[time.Time]roster.Grid{
		viewStart.AddDate(0, 0, -7): satGrid(viewStart.AddDate(0, 0, -7), "ann"),
	})
	engine := newTestEngine(t, arc, "ann")
	ctx := context.Background()

	withoutCurrent, err := engine.Streaks(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, withoutCurrent["ann"])

	// The generated week has ann on Saturday (only bartender).
	withCurrent, err := engine.Streaks(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, withCurrent["ann"])
}
