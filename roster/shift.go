/*
shift.go - Shift label parsing and the active shift catalog

PURPOSE:
  A shift is described by its label, "start-end" with integer hours.
  Overnight shifts wrap: if end < start the end is advanced by 24, so
  "16-1" runs 16..25 and derived end is always strictly after start.

CATALOG CONTRACT:
  - Invalid labels are rejected on insert, never stored.
  - Every mutation of the shift set re-parses all stored labels, so the
    parsed cache can never go stale against the label set.

SEE ALSO:
  - generator.go: consumes Active() definitions
*/
package roster

import (
	"log"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// ParseShiftLabel parses a "start-end" label into normalized hours.
// End < start means the shift crosses midnight and end is advanced 24.
func ParseShiftLabel(label string) (ShiftDef, error) {
	parts := strings.Split(label, "-")
	if len(parts) != 2 {
		return ShiftDef{}, &ShiftLabelError{Label: label, Reason: "want exactly two hours separated by \"-\""}
	}
	start, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ShiftDef{}, &ShiftLabelError{Label: label, Reason: "start hour is not an integer"}
	}
	end, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ShiftDef{}, &ShiftLabelError{Label: label, Reason: "end hour is not an integer"}
	}
	if end < start {
		end += 24
	}
	return ShiftDef{Label: label, Start: start, End: end}, nil
}

// =============================================================================
// CATALOG
// =============================================================================

// Catalog owns the shift set: label -> active flag plus the parsed
// definitions derived from it.
type Catalog struct {
	mu     sync.RWMutex
	active map[string]bool
	parsed map[string]ShiftDef
}

// NewCatalog returns an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		active: make(map[string]bool),
		parsed: make(map[string]ShiftDef),
	}
}

// Add registers a shift label. The label must parse; duplicates simply
// update the active flag.
func (c *Catalog) Add(label string, active bool) error {
	def, err := ParseShiftLabel(label)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[label] = active
	c.parsed[label] = def
	c.reparseLocked()
	return nil
}

// SetActive toggles an existing shift.
func (c *Catalog) SetActive(label string, active bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[label]; !ok {
		return ErrShiftNotFound
	}
	c.active[label] = active
	c.reparseLocked()
	return nil
}

// Remove drops a shift label from the catalog.
func (c *Catalog) Remove(label string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.active[label]; !ok {
		return ErrShiftNotFound
	}
	delete(c.active, label)
	delete(c.parsed, label)
	c.reparseLocked()
	return nil
}

// Replace swaps in a whole label set, e.g. one loaded from disk.
// Labels that fail to parse are dropped with a warning rather than
// stored: the catalog never holds an unparsable label.
func (c *Catalog) Replace(labels map[string]bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active = make(map[string]bool, len(labels))
	c.parsed = make(map[string]ShiftDef, len(labels))
	for label, active := range labels {
		def, err := ParseShiftLabel(label)
		if err != nil {
			log.Printf("roster: dropping shift %q: %v", label, err)
			continue
		}
		c.active[label] = active
		c.parsed[label] = def
	}
}

// Active returns the active shift definitions sorted by label.
// Generation re-shuffles this per day; the sort only makes iteration
// order stable for callers and tests.
func (c *Catalog) Active() []ShiftDef {
	c.mu.RLock()
	defer c.mu.RUnlock()
	defs := make([]ShiftDef, 0, len(c.active))
	for label, on := range c.active {
		if on {
			defs = append(defs, c.parsed[label])
		}
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Label < defs[j].Label })
	return defs
}

// Lookup returns the parsed definition for a label.
func (c *Catalog) Lookup(label string) (ShiftDef, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	def, ok := c.parsed[label]
	return def, ok
}

// Labels returns a snapshot of label -> active, the persisted shape.
func (c *Catalog) Labels() map[string]bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]bool, len(c.active))
	for label, on := range c.active {
		out[label] = on
	}
	return out
}

// reparseLocked rebuilds every parsed definition from its label. Runs on
// each mutation of the shift set.
func (c *Catalog) reparseLocked() {
	for label := range c.active {
		def, err := ParseShiftLabel(label)
		if err != nil {
			// Cannot happen for labels admitted through Add/Replace.
			log.Printf("roster: dropping shift %q: %v", label, err)
			delete(c.active, label)
			delete(c.parsed, label)
			continue
		}
		c.parsed[label] = def
	}
}
