/*
calendar.go - Week-relative date computation and navigation

PURPOSE:
  Weeks run Sunday..Saturday. WeekStart maps any reference date to the
  canonical Sunday 00:00 of its week; Calendar layers a signed week
  offset on top so the caller can page forward and backward from "now".
*/
package roster

import (
	"sync"
	"time"
)

// WeekStart returns the Sunday 00:00 of the week containing ref, in
// ref's location.
func WeekStart(ref time.Time) time.Time {
	ref = ref.AddDate(0, 0, -int(ref.Weekday()))
	return time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location())
}

// ArchiveKeyLayout is the ISO date format keying published weeks.
const ArchiveKeyLayout = "2006-01-02"

// ArchiveKey returns the archive key for a week start date.
func ArchiveKey(weekStart time.Time) string {
	return weekStart.Format(ArchiveKeyLayout)
}

// Calendar tracks which week is under view as an offset from the
// current week. Navigation only moves the offset; the engine
// regenerates the viewed week after each move.
type Calendar struct {
	mu     sync.Mutex
	offset int
	now    func() time.Time
}

// NewCalendar builds a calendar around the given clock; a nil clock
// means time.Now.
func NewCalendar(clock func() time.Time) *Calendar {
	if clock == nil {
		clock = time.Now
	}
	return &Calendar{now: clock}
}

// Viewed returns the start of the week currently under view.
func (c *Calendar) Viewed() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return WeekStart(c.now().AddDate(0, 0, c.offset*7))
}

// Advance moves the view one week forward and returns its start.
func (c *Calendar) Advance() time.Time {
	c.mu.Lock()
	c.offset++
	c.mu.Unlock()
	return c.Viewed()
}

// Previous moves the view one week back and returns its start.
func (c *Calendar) Previous() time.Time {
	c.mu.Lock()
	c.offset--
	c.mu.Unlock()
	return c.Viewed()
}

// Reset returns the view to the current week.
func (c *Calendar) Reset() time.Time {
	c.mu.Lock()
	c.offset = 0
	c.mu.Unlock()
	return c.Viewed()
}

// Offset returns the signed week offset under view.
func (c *Calendar) Offset() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.offset
}
