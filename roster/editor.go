/*
editor.go - Manual corrections to the in-progress week

PURPOSE:
  Swap exchanges two slots; Override replaces a slot's occupant outright.
  Both keep the derived load counters exactly consistent with the grid.

  Override deliberately skips every eligibility check: a manual
  assignment is an intentional correction and may violate restrictions.
  Callers wanting constrained assignment go through generation instead.
*/
package roster

import "strings"

// Swap exchanges the occupants of two slots. Applying the same swap
// twice restores the original grid and load counters exactly.
func (w *Week) Swap(day1, shift1, day2, shift2 string) error {
	a, err := w.occupant(day1, shift1)
	if err != nil {
		return err
	}
	b, err := w.occupant(day2, shift2)
	if err != nil {
		return err
	}
	if a != Unassigned {
		w.Loads[a]--
	}
	if b != Unassigned {
		w.Loads[b]--
	}
	w.setOccupant(day1, shift1, b)
	w.setOccupant(day2, shift2, a)
	if b != Unassigned {
		w.Loads[b]++
	}
	if a != Unassigned {
		w.Loads[a]++
	}
	// Reason entries travel with an Unassigned occupant, so reasons keep
	// describing exactly the slots that are currently unassigned.
	key1 := SlotKey(dayNameOf(day1), shift1)
	key2 := SlotKey(dayNameOf(day2), shift2)
	r1, ok1 := w.Reasons[key1]
	r2, ok2 := w.Reasons[key2]
	delete(w.Reasons, key1)
	delete(w.Reasons, key2)
	if ok2 {
		w.Reasons[key1] = r2
	}
	if ok1 {
		w.Reasons[key2] = r1
	}
	w.pruneLoads()
	return nil
}

// Override sets a slot's occupant without re-checking eligibility.
// Passing Unassigned clears the slot.
func (w *Week) Override(worker, day, shift string) error {
	out, err := w.occupant(day, shift)
	if err != nil {
		return err
	}
	if out != Unassigned {
		w.Loads[out]--
	}
	w.setOccupant(day, shift, worker)
	dayName := dayNameOf(day)
	if worker != Unassigned {
		w.Loads[worker]++
		delete(w.Reasons, SlotKey(dayName, shift))
	} else {
		w.Reasons[SlotKey(dayName, shift)] = "manually cleared"
	}
	w.pruneLoads()
	return nil
}

// occupant resolves a slot, accepting either a full day label or a bare
// weekday name for the day coordinate.
func (w *Week) occupant(day, shift string) (string, error) {
	row, ok := w.Grid[w.resolveDay(day)]
	if !ok {
		return "", ErrUnknownSlot
	}
	who, ok := row[shift]
	if !ok {
		return "", ErrUnknownSlot
	}
	return who, nil
}

func (w *Week) setOccupant(day, shift, who string) {
	w.Grid[w.resolveDay(day)][shift] = who
}

// resolveDay maps a bare weekday name onto this week's full day label.
func (w *Week) resolveDay(day string) string {
	if _, ok := w.Grid[day]; ok {
		return day
	}
	for label := range w.Grid {
		if strings.HasPrefix(label, day+" ") {
			return label
		}
	}
	return day
}

// dayNameOf strips the date portion of a day label.
func dayNameOf(day string) string {
	if i := strings.IndexByte(day, ' '); i > 0 {
		return day[:i]
	}
	return day
}

// pruneLoads drops zero counters so the load map stays equal to a fresh
// scan of the grid.
func (w *Week) pruneLoads() {
	for name, n := range w.Loads {
		if n <= 0 {
			delete(w.Loads, name)
		}
	}
}
