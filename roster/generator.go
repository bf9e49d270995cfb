/*
generator.go - Weekly slot assignment

PURPOSE:
  Produces one week's slot -> bartender assignment. For an archived week
  the snapshot is restored verbatim with no randomization. Otherwise
  each of the 7 days is filled in fixed Sunday..Saturday order; within a
  day the active shifts are processed in a freshly shuffled order so no
  shift is systematically favored by being assigned first. Day order
  stays fixed because the rest-gap chain depends on it.

ELIGIBILITY (all must hold):
  - day not in the bartender's restricted days
  - shift not in their restricted shifts
  - shift on their whitelist, when a whitelist exists
  - current weekly load below their cap
  - at least 8 hours between their previous assignment's end and this
    shift's start, day-adjusted; vacuous without a prior assignment

SATURDAY FAIRNESS:
  Bartenders already on a 3-week Saturday streak (archive only, current
  week excluded) are filtered out of Saturday slots - unless the filter
  would empty the candidate set, in which case it is skipped for that
  slot rather than leaving it open.

SEE ALSO:
  - streak.go: streak computation feeding the Saturday filter
  - editor.go: manual corrections after generation
*/
package roster

import (
	"context"
	"time"
)

// RestGapHours is the minimum rest between two assignments in a week.
const RestGapHours = 8

// SaturdayStreakCap is the consecutive-Saturday count at which a
// bartender is kept off further Saturdays during generation, and at
// which publication is refused.
const SaturdayStreakCap = 3

// Generator produces weekly schedules.
type Generator struct {
	Catalog     *Catalog
	Constraints *ConstraintStore
	Archive     Archive
	Random      Picker

	// Now feeds the streak tracker's future-week check; nil means time.Now.
	Now func() time.Time
}

// lastAssignment tracks the most recent slot a bartender took this week,
// for the rest-gap rule.
type lastAssignment struct {
	dayIdx int
	end    int
}

// Generate builds the schedule for the week starting at weekStart. If
// that week is archived the snapshot is returned unchanged and the
// random source is never consulted.
func (g *Generator) Generate(ctx context.Context, weekStart time.Time) (*Week, error) {
	if grid, ok, err := g.Archive.Get(ctx, ArchiveKey(weekStart)); err != nil {
		return nil, err
	} else if ok {
		return WeekFromGrid(weekStart, grid), nil
	}

	tracker := &StreakTracker{Archive: g.Archive, Constraints: g.Constraints, Now: g.Now}
	streaks, err := tracker.SaturdayStreaks(ctx, weekStart, nil, false)
	if err != nil {
		return nil, err
	}

	week := NewWeek(weekStart)
	workers := g.Constraints.Workers()
	last := make(map[string]lastAssignment)

	for dayIdx := 0; dayIdx < 7; dayIdx++ {
		dayName := DayNames[dayIdx]
		label := DayLabel(weekStart, dayIdx)
		row := make(map[string]string)
		week.Grid[label] = row

		shifts := g.Catalog.Active()
		shuffleShifts(g.Random, shifts)

		for _, shift := range shifts {
			eligible := make([]string, 0, len(workers))
			for _, name := range workers {
				if g.eligible(name, dayName, shift, week.Loads, last, dayIdx) {
					eligible = append(eligible, name)
				}
			}

			if dayName == "Saturday" {
				rested := eligible[:0:0]
				for _, name := range eligible {
					if streaks[name] < SaturdayStreakCap {
						rested = append(rested, name)
					}
				}
				// Degrade gracefully: only enforce the streak cap when
				// someone else can take the slot.
				if len(rested) > 0 {
					eligible = rested
				}
			}

			if len(eligible) == 0 {
				row[shift.Label] = Unassigned
				week.Reasons[SlotKey(dayName, shift.Label)] = "no eligible bartender for this slot"
				continue
			}

			pick := eligible[g.Random.Pick(len(eligible))]
			row[shift.Label] = pick
			week.Loads[pick]++
			last[pick] = lastAssignment{dayIdx: dayIdx, end: shift.End}
		}
	}
	return week, nil
}

// eligible applies every constraint and rest predicate for one slot.
func (g *Generator) eligible(name, dayName string, shift ShiftDef, loads map[string]int, last map[string]lastAssignment, dayIdx int) bool {
	c, ok := g.Constraints.Get(name)
	if !ok {
		return false
	}
	if !c.AllowsDay(dayName) || !c.AllowsShift(shift.Label) {
		return false
	}
	if loads[name] >= c.MaxShifts {
		return false
	}
	if prev, ok := last[name]; ok {
		gap := (dayIdx-prev.dayIdx)*24 + (shift.Start - prev.end)
		if gap < RestGapHours {
			return false
		}
	}
	return true
}
