/*
constraints.go - Bartender registry and free-text constraint parsing

PURPOSE:
  Owns the per-bartender constraint records (add/remove/rename/update)
  and parses free-text restriction notes into typed records.

PARSER RULES (applied per line, case-insensitive keywords, first match
wins in this priority order):
  1. "doesn't work"   -> remainder is a restricted day
  2. "cannot work"    -> remainder is a restricted shift label
  3. "can only work"  -> remainder split on "," / " or " -> whitelist
  4. "up to" + "shifts" -> integer between them is the weekly cap;
                           an unparsable number falls back to 5

  A line matching more than one rule is applied under the highest
  priority rule and reported back as ambiguous so the caller can flag it.

SEE ALSO:
  - generator.go: consumes the records via eligibility checks
*/
package roster

import (
	"sort"
	"strconv"
	"strings"
	"sync"
)

// =============================================================================
// CONSTRAINT STORE
// =============================================================================

// ConstraintStore owns the bartender roster and each bartender's
// constraint record. Names are unique.
type ConstraintStore struct {
	mu      sync.RWMutex
	records map[string]Constraints
}

// NewConstraintStore returns an empty store.
func NewConstraintStore() *ConstraintStore {
	return &ConstraintStore{records: make(map[string]Constraints)}
}

// Add registers a new bartender with default constraints.
func (s *ConstraintStore) Add(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; ok {
		return ErrWorkerExists
	}
	s.records[name] = DefaultConstraints()
	return nil
}

// Remove deletes a bartender and their record.
func (s *ConstraintStore) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		return ErrWorkerNotFound
	}
	delete(s.records, name)
	return nil
}

// Rename moves a record to a new, unused name.
func (s *ConstraintStore) Rename(oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[oldName]
	if !ok {
		return ErrWorkerNotFound
	}
	if _, taken := s.records[newName]; taken {
		return ErrNameTaken
	}
	delete(s.records, oldName)
	s.records[newName] = rec
	return nil
}

// Set replaces a bartender's constraint record.
func (s *ConstraintStore) Set(name string, c Constraints) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[name]; !ok {
		return ErrWorkerNotFound
	}
	if c.MaxShifts <= 0 {
		c.MaxShifts = DefaultMaxShifts
	}
	s.records[name] = c.Clone()
	return nil
}

// Get returns a bartender's record.
func (s *ConstraintStore) Get(name string) (Constraints, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[name]
	if !ok {
		return Constraints{}, false
	}
	return rec.Clone(), true
}

// Workers returns all registered names, sorted.
func (s *ConstraintStore) Workers() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.records))
	for name := range s.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Records returns a snapshot of every record, the persisted shape.
func (s *ConstraintStore) Records() map[string]Constraints {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Constraints, len(s.records))
	for name, rec := range s.records {
		out[name] = rec.Clone()
	}
	return out
}

// Replace swaps in a whole record set, e.g. one loaded from disk.
// Records with a non-positive cap get the default.
func (s *ConstraintStore) Replace(records map[string]Constraints) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]Constraints, len(records))
	for name, rec := range records {
		if rec.MaxShifts <= 0 {
			rec.MaxShifts = DefaultMaxShifts
		}
		s.records[name] = rec.Clone()
	}
}

// =============================================================================
// FREE-TEXT PARSER
// =============================================================================

// ParseResult is the outcome of parsing constraint text. Ambiguous
// lists lines that matched more than one rule; the first rule was
// applied to each.
type ParseResult struct {
	Constraints Constraints
	Ambiguous   []string
}

// constraintRule is one matcher in the ordered rule list.
type constraintRule struct {
	name  string
	match func(lower string) bool
	apply func(line, lower string, c *Constraints)
}

// constraintRules holds the parser rules in priority order.
var constraintRules = []constraintRule{
	{
		name:  "restricted day",
		match: func(lower string) bool { return strings.Contains(lower, "doesn't work") },
		apply: func(line, lower string, c *Constraints) {
			day := capitalize(remainderAfter(line, lower, "doesn't work"))
			if day != "" {
				c.RestrictedDays = append(c.RestrictedDays, day)
			}
		},
	},
	{
		name:  "restricted shift",
		match: func(lower string) bool { return strings.Contains(lower, "cannot work") },
		apply: func(line, lower string, c *Constraints) {
			shift := remainderAfter(line, lower, "cannot work")
			if shift != "" {
				c.RestrictedShifts = append(c.RestrictedShifts, shift)
			}
		},
	},
	{
		name:  "shift whitelist",
		match: func(lower string) bool { return strings.Contains(lower, "can only work") },
		apply: func(line, lower string, c *Constraints) {
			rest := remainderAfter(line, lower, "can only work")
			rest = strings.ReplaceAll(strings.ToLower(rest), " or ", ",")
			for _, tok := range strings.Split(rest, ",") {
				if tok = strings.TrimSpace(tok); tok != "" {
					c.AllowedShifts = append(c.AllowedShifts, tok)
				}
			}
		},
	},
	{
		name: "weekly cap",
		match: func(lower string) bool {
			return strings.Contains(lower, "up to") && strings.Contains(lower, "shifts")
		},
		apply: func(line, lower string, c *Constraints) {
			from := strings.Index(lower, "up to") + len("up to")
			to := strings.Index(lower[from:], "shifts")
			if to < 0 {
				return
			}
			n, err := strconv.Atoi(strings.TrimSpace(lower[from : from+to]))
			if err != nil || n <= 0 {
				// Soft failure: keep the default cap.
				c.MaxShifts = DefaultMaxShifts
				return
			}
			c.MaxShifts = n
		},
	},
}

// ParseConstraintText parses free-text restriction notes into a typed
// record. Empty input yields the default record.
func ParseConstraintText(text string) ParseResult {
	res := ParseResult{Constraints: DefaultConstraints()}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		matched := 0
		for _, rule := range constraintRules {
			if !rule.match(lower) {
				continue
			}
			if matched == 0 {
				rule.apply(line, lower, &res.Constraints)
			}
			matched++
		}
		if matched > 1 {
			res.Ambiguous = append(res.Ambiguous, line)
		}
	}
	return res
}

// remainderAfter returns the trimmed text following the keyword,
// preserving the original line's casing.
func remainderAfter(line, lower, keyword string) string {
	i := strings.Index(lower, keyword)
	if i < 0 {
		return ""
	}
	return strings.TrimSpace(line[i+len(keyword):])
}

// capitalize upper-cases the first letter and lower-cases the rest, so
// "tuesday" and "TUESDAY" both become "Tuesday".
func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
