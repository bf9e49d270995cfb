package roster

import (
	"testing"
	"time"
)

func TestWeekStart(t *testing.T) {
	sunday := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		ref  time.Time
	}{
		{"sunday maps to itself", time.Date(2026, time.August, 30, 15, 30, 0, 0, time.UTC)},
		{"monday", time.Date(2026, time.August, 31, 9, 0, 0, 0, time.UTC)},
		{"wednesday", time.Date(2026, time.September, 2, 23, 59, 0, 0, time.UTC)},
		{"saturday", time.Date(2026, time.September, 5, 1, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		got := WeekStart(tc.ref)
		if !got.Equal(sunday) {
			t.Errorf("%s: WeekStart(%v) = %v, want %v", tc.name, tc.ref, got, sunday)
		}
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Errorf("%s: time of day not zeroed: %v", tc.name, got)
		}
	}
}

func TestCalendar_Navigation(t *testing.T) {
	clock := func() time.Time {
		return time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC)
	}
	cal := NewCalendar(clock)

	base := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	if got := cal.Viewed(); !got.Equal(base) {
		t.Fatalf("Viewed() = %v, want %v", got, base)
	}

	if got := cal.Advance(); !got.Equal(base.AddDate(0, 0, 7)) {
		t.Errorf("Advance() = %v, want %v", got, base.AddDate(0, 0, 7))
	}
	if got := cal.Previous(); !got.Equal(base) {
		t.Errorf("Previous() = %v, want %v", got, base)
	}
	cal.Previous()
	cal.Previous()
	if got := cal.Offset(); got != -2 {
		t.Errorf("Offset() = %d, want -2", got)
	}
	if got := cal.Reset(); !got.Equal(base) {
		t.Errorf("Reset() = %v, want %v", got, base)
	}
}

func TestArchiveKey(t *testing.T) {
	start := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
	if got := ArchiveKey(start); got != "2026-08-30" {
		t.Errorf("ArchiveKey = %q, want 2026-08-30", got)
	}
}
