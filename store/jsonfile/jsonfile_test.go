package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/rota-engine/roster"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestConstraintsRoundtrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := map[string]roster.Constraints{
		"ann": {AllowedShifts: []string{"12-18"}, MaxShifts: 3},
		"bob": {RestrictedDays: []string{"Monday"}, MaxShifts: 5},
	}
	require.NoError(t, s.SaveConstraints(ctx, in))

	out, err := s.LoadConstraints(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestShiftsRoundtrip(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	in := map[string]bool{"12-18": true, "18-23": false}
	require.NoError(t, s.SaveShifts(ctx, in))

	out, err := s.LoadShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestMissingDocumentsLoadEmpty(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	constraints, err := s.LoadConstraints(ctx)
	require.NoError(t, err)
	assert.Empty(t, constraints)

	shifts, err := s.LoadShifts(ctx)
	require.NoError(t, err)
	assert.Empty(t, shifts)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestCorruptDocumentLoadsEmpty(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	path := filepath.Join(s.Dir(), ConstraintsFile)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	out, err := s.LoadConstraints(ctx)
	require.NoError(t, err, "a corrupt document must not be a fatal error")
	assert.Empty(t, out)
}

func TestArchivePutGetKeys(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	grid := roster.Grid{
		"Saturday 2026-09-05": {"18-23": "ann"},
	}
	require.NoError(t, s.Put(ctx, "2026-08-30", grid))

	got, ok, err := s.Get(ctx, "2026-08-30")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, grid, got)

	_, ok, err = s.Get(ctx, "2026-09-06")
	require.NoError(t, err)
	assert.False(t, ok)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-08-30"}, keys)
}

func TestArchiveIsInsertOnly(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	first := roster.Grid{"Saturday 2026-09-05": {"18-23": "ann"}}
	require.NoError(t, s.Put(ctx, "2026-08-30", first))

	err := s.Put(ctx, "2026-08-30", roster.Grid{"Saturday 2026-09-05": {"18-23": "bob"}})
	assert.ErrorIs(t, err, roster.ErrWeekPublished)

	got, ok, err := s.Get(ctx, "2026-08-30")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, first, got, "a rejected publish must not overwrite the snapshot")
}

func TestWritesLeaveNoTempFiles(t *testing.T) {
	s := newStore(t)
	require.NoError(t, s.SaveShifts(context.Background(), map[string]bool{"12-18": true}))

	entries, err := os.ReadDir(s.Dir())
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
