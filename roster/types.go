/*
Package roster provides the core bartender rota engine.

PURPOSE:
  This package contains the types and algorithms for assigning bartenders
  to recurring weekly shift slots: week-relative date computation,
  constraint evaluation, randomized-but-constrained assignment, rest-time
  and Saturday-streak accounting, manual overrides, and publish-time
  validation against the archive of prior weeks.

KEY CONCEPTS IN THIS FILE (types.go):
  - ShiftDef: A parsed shift with overnight-normalized start/end hours
  - Constraints: Per-bartender eligibility record
  - Grid: One week's day -> shift -> occupant mapping (the wire shape)
  - Week: A Grid plus derived load counters and unassigned reasons

DESIGN PRINCIPLES:
  1. Explicit state: the engine owns all mutable state, no package globals
  2. Derived counters (loads) must always match a fresh scan of the Grid
  3. Archived weeks are immutable snapshots, restored verbatim

SEE ALSO:
  - generator.go: Slot assignment algorithm
  - streak.go: Consecutive-Saturday accounting
  - engine.go: Facade tying the pieces together
*/
package roster

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Unassigned is the reserved occupant for a slot no bartender could fill.
const Unassigned = "Unassigned"

// DayNames lists the weekday names in schedule order, Sunday first.
// Day index 0..6 throughout the package refers to this ordering.
var DayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// DayLabelLayout is the date portion of a Grid day key.
const DayLabelLayout = "2006-01-02"

// DayLabel builds the Grid key for day index i of the week starting at
// weekStart, e.g. "Sunday 2026-09-06".
func DayLabel(weekStart time.Time, i int) string {
	return fmt.Sprintf("%s %s", DayNames[i], weekStart.AddDate(0, 0, i).Format(DayLabelLayout))
}

// =============================================================================
// SHIFT DEFINITION
// =============================================================================

// ShiftDef is a parsed, overnight-normalized shift.
// End is always strictly greater than Start; an overnight shift like
// "16-1" carries End=25.
type ShiftDef struct {
	Label string
	Start int
	End   int
}

// =============================================================================
// CONSTRAINTS - Per-bartender eligibility record
// =============================================================================

// DefaultMaxShifts is the weekly load cap applied when none is given.
const DefaultMaxShifts = 5

// Constraints is the eligibility record for one bartender.
// An empty AllowedShifts list means no whitelist: every shift not
// otherwise restricted is fair game.
type Constraints struct {
	AllowedShifts    []string `json:"allowedShifts"`
	RestrictedDays   []string `json:"restrictedDays"`
	RestrictedShifts []string `json:"restrictedShifts"`
	MaxShifts        int      `json:"maxShifts"`
}

// DefaultConstraints returns the record applied to a bartender with no
// stated restrictions.
func DefaultConstraints() Constraints {
	return Constraints{MaxShifts: DefaultMaxShifts}
}

// AllowsDay reports whether this record permits working the named day.
func (c Constraints) AllowsDay(day string) bool {
	for _, d := range c.RestrictedDays {
		if strings.EqualFold(d, day) {
			return false
		}
	}
	return true
}

// AllowsShift reports whether this record permits working the labeled
// shift, honoring both the restriction list and the whitelist.
func (c Constraints) AllowsShift(label string) bool {
	for _, s := range c.RestrictedShifts {
		if strings.EqualFold(s, label) {
			return false
		}
	}
	if len(c.AllowedShifts) == 0 {
		return true
	}
	for _, s := range c.AllowedShifts {
		if strings.EqualFold(s, label) {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the record.
func (c Constraints) Clone() Constraints {
	out := c
	out.AllowedShifts = append([]string(nil), c.AllowedShifts...)
	out.RestrictedDays = append([]string(nil), c.RestrictedDays...)
	out.RestrictedShifts = append([]string(nil), c.RestrictedShifts...)
	return out
}

// =============================================================================
// GRID - day label -> shift label -> occupant
// =============================================================================

// Grid is the persisted shape of one week's schedule. Keys follow
// DayLabel; values are bartender names or Unassigned.
type Grid map[string]map[string]string

// Clone deep-copies the grid.
func (g Grid) Clone() Grid {
	if g == nil {
		return nil
	}
	out := make(Grid, len(g))
	for day, row := range g {
		cp := make(map[string]string, len(row))
		for shift, who := range row {
			cp[shift] = who
		}
		out[day] = cp
	}
	return out
}

// SaturdayRow returns the Saturday row of the grid, or nil if the grid
// has none.
func (g Grid) SaturdayRow() map[string]string {
	for day, row := range g {
		if strings.HasPrefix(day, "Saturday") {
			return row
		}
	}
	return nil
}

// =============================================================================
// WEEK - In-progress schedule with derived state
// =============================================================================

// Week is one week's schedule under view. Loads is derived from Grid and
// every mutation keeps the two consistent; Reasons holds a cause per
// Unassigned slot, keyed "day - shift" with the plain weekday name.
type Week struct {
	Start   time.Time
	Grid    Grid
	Loads   map[string]int
	Reasons map[string]string
}

// NewWeek builds an empty week starting at the given Sunday.
func NewWeek(start time.Time) *Week {
	return &Week{
		Start:   start,
		Grid:    make(Grid),
		Loads:   make(map[string]int),
		Reasons: make(map[string]string),
	}
}

// WeekFromGrid restores a week from an archived grid, recomputing loads
// by scanning the snapshot.
func WeekFromGrid(start time.Time, g Grid) *Week {
	w := &Week{
		Start:   start,
		Grid:    g.Clone(),
		Loads:   make(map[string]int),
		Reasons: make(map[string]string),
	}
	w.RecountLoads()
	return w
}

// Clone deep-copies the week.
func (w *Week) Clone() *Week {
	out := &Week{
		Start:   w.Start,
		Grid:    w.Grid.Clone(),
		Loads:   make(map[string]int, len(w.Loads)),
		Reasons: make(map[string]string, len(w.Reasons)),
	}
	for k, v := range w.Loads {
		out.Loads[k] = v
	}
	for k, v := range w.Reasons {
		out.Reasons[k] = v
	}
	return out
}

// RecountLoads rebuilds the load map from the grid. The result is the
// ground truth every incremental update must agree with.
func (w *Week) RecountLoads() {
	w.Loads = make(map[string]int)
	for _, row := range w.Grid {
		for _, who := range row {
			if who != Unassigned {
				w.Loads[who]++
			}
		}
	}
}

// TotalSlots returns the number of (day, shift) cells in the grid.
func (w *Week) TotalSlots() int {
	n := 0
	for _, row := range w.Grid {
		n += len(row)
	}
	return n
}

// AssignedSlots returns the number of cells held by a bartender.
func (w *Week) AssignedSlots() int {
	n := 0
	for _, v := range w.Loads {
		n += v
	}
	return n
}

// DayLabels returns the grid's day keys in Sunday..Saturday order.
func (w *Week) DayLabels() []string {
	labels := make([]string, 0, 7)
	for i := range DayNames {
		l := DayLabel(w.Start, i)
		if _, ok := w.Grid[l]; ok {
			labels = append(labels, l)
		}
	}
	if len(labels) == len(w.Grid) {
		return labels
	}
	// Fallback for grids restored from foreign snapshots.
	labels = labels[:0]
	for l := range w.Grid {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// SlotKey is the Reasons map key for a slot: weekday name, " - ", shift.
func SlotKey(dayName, shiftLabel string) string {
	return dayName + " - " + shiftLabel
}
