/*
random.go - Injectable random source

PURPOSE:
  Slot assignment picks uniformly among eligible bartenders and shuffles
  the per-day shift order. Both reduce to a single primitive, "pick one
  of n", exposed as an interface so tests can force specific outcomes
  while production uses a seeded math/rand source.
*/
package roster

import (
	"math/rand"
	"time"
)

// Picker selects an index in [0, n). n is always >= 1.
type Picker interface {
	Pick(n int) int
}

type randPicker struct {
	r *rand.Rand
}

// NewPicker returns a Picker backed by math/rand with the given seed.
func NewPicker(seed int64) Picker {
	return &randPicker{r: rand.New(rand.NewSource(seed))}
}

// NewTimePicker returns a Picker seeded from the wall clock.
func NewTimePicker() Picker {
	return NewPicker(time.Now().UnixNano())
}

func (p *randPicker) Pick(n int) int {
	return p.r.Intn(n)
}

// shuffleShifts runs a Fisher-Yates shuffle over the definitions using
// the picker as the only randomness source.
func shuffleShifts(p Picker, defs []ShiftDef) {
	for i := len(defs) - 1; i > 0; i-- {
		j := p.Pick(i + 1)
		defs[i], defs[j] = defs[j], defs[i]
	}
}
