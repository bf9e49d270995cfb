/*
errors.go - Centralized error types for the rota engine

PURPOSE:
  All engine error types in one place. Callers classify failures with
  errors.Is / errors.As; structured errors carry the detail the HTTP
  layer needs for status mapping.

ERROR CATEGORIES:
  1. Validation errors - bad shift labels, name collisions, unknown slots
  2. Publish errors    - fairness cap violations (full violator list)
  3. Persistence       - soft by design: corrupt files degrade to empty
                         state with a logged warning, see store/jsonfile

SEE ALSO:
  - shift.go:  wraps ErrBadShiftLabel with the offending label
  - engine.go: returns PublishBlockedError from Publish
*/
package roster

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrBadShiftLabel is returned when a shift label does not split into
	// two integers via a single separator.
	ErrBadShiftLabel = errors.New("invalid shift label")

	// ErrWorkerExists is returned when adding a bartender whose name is
	// already registered.
	ErrWorkerExists = errors.New("bartender already exists")

	// ErrWorkerNotFound is returned when renaming or removing an unknown
	// bartender.
	ErrWorkerNotFound = errors.New("bartender not found")

	// ErrNameTaken is returned when a rename targets a name already in use.
	ErrNameTaken = errors.New("target name already in use")

	// ErrShiftNotFound is returned when removing or toggling an unknown
	// shift label.
	ErrShiftNotFound = errors.New("shift not found")

	// ErrUnknownSlot is returned by swap/override when a (day, shift)
	// coordinate does not exist in the week under view.
	ErrUnknownSlot = errors.New("unknown slot")

	// ErrWeekPublished is returned when writing to an archive key that is
	// already present. Published weeks are immutable.
	ErrWeekPublished = errors.New("week already published")

	// ErrPublishBlocked is the sentinel wrapped by PublishBlockedError.
	ErrPublishBlocked = errors.New("publish blocked by saturday streak cap")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// ShiftLabelError reports a malformed shift label with its cause.
type ShiftLabelError struct {
	Label  string
	Reason string
}

func (e *ShiftLabelError) Error() string {
	return fmt.Sprintf("invalid shift label %q: %s", e.Label, e.Reason)
}

func (e *ShiftLabelError) Unwrap() error { return ErrBadShiftLabel }

// PublishBlockedError reports every bartender whose consecutive-Saturday
// streak would reach the fairness cap if the week were published.
// The archive is untouched when this error is returned.
type PublishBlockedError struct {
	WeekStart time.Time
	Violators []string
}

func (e *PublishBlockedError) Error() string {
	return fmt.Sprintf("cannot publish week of %s: saturday streak cap reached for %s",
		e.WeekStart.Format(DayLabelLayout), strings.Join(e.Violators, ", "))
}

func (e *PublishBlockedError) Unwrap() error { return ErrPublishBlocked }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsNotFound reports whether the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrWorkerNotFound) ||
		errors.Is(err, ErrShiftNotFound) ||
		errors.Is(err, ErrUnknownSlot)
}

// IsClientError reports whether the error is due to invalid caller input
// rather than an engine or persistence failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrBadShiftLabel) ||
		errors.Is(err, ErrWorkerExists) ||
		errors.Is(err, ErrNameTaken) ||
		errors.Is(err, ErrWeekPublished) ||
		IsNotFound(err)
}
