// Package store provides in-memory Archive and settings implementations
// for tests and development.
package store

import (
	"context"
	"sync"

	"github.com/warp/rota-engine/roster"
)

// =============================================================================
// MEMORY ARCHIVE
// =============================================================================

// Memory is an in-memory roster.Archive. Snapshots are deep-copied on
// the way in and out, so callers can never mutate an archived week.
type Memory struct {
	mu    sync.RWMutex
	weeks map[string]roster.Grid
}

// NewMemory returns an empty in-memory archive.
func NewMemory() *Memory {
	return &Memory{weeks: make(map[string]roster.Grid)}
}

// Put stores a snapshot. Existing keys are immutable.
func (m *Memory) Put(_ context.Context, key string, grid roster.Grid) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.weeks[key]; ok {
		return roster.ErrWeekPublished
	}
	m.weeks[key] = grid.Clone()
	return nil
}

// Get returns the snapshot for a key.
func (m *Memory) Get(_ context.Context, key string) (roster.Grid, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	grid, ok := m.weeks[key]
	if !ok {
		return nil, false, nil
	}
	return grid.Clone(), true, nil
}

// Keys returns every stored key, unordered.
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.weeks))
	for k := range m.weeks {
		keys = append(keys, k)
	}
	return keys, nil
}

// =============================================================================
// MEMORY SETTINGS
// =============================================================================

// MemorySettings is an in-memory roster.SettingsStore.
type MemorySettings struct {
	mu          sync.RWMutex
	constraints map[string]roster.Constraints
	shifts      map[string]bool
}

// NewMemorySettings returns an empty settings store.
func NewMemorySettings() *MemorySettings {
	return &MemorySettings{
		constraints: make(map[string]roster.Constraints),
		shifts:      make(map[string]bool),
	}
}

func (m *MemorySettings) LoadConstraints(_ context.Context) (map[string]roster.Constraints, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]roster.Constraints, len(m.constraints))
	for k, v := range m.constraints {
		out[k] = v.Clone()
	}
	return out, nil
}

func (m *MemorySettings) SaveConstraints(_ context.Context, records map[string]roster.Constraints) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.constraints = make(map[string]roster.Constraints, len(records))
	for k, v := range records {
		m.constraints[k] = v.Clone()
	}
	return nil
}

func (m *MemorySettings) LoadShifts(_ context.Context) (map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[string]bool, len(m.shifts))
	for k, v := range m.shifts {
		out[k] = v
	}
	return out, nil
}

func (m *MemorySettings) SaveShifts(_ context.Context, labels map[string]bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.shifts = make(map[string]bool, len(labels))
	for k, v := range labels {
		m.shifts[k] = v
	}
	return nil
}
