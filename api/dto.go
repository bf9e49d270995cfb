/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  JSON shapes for the HTTP surface, decoupled from the roster package's
  internal types so the API contract can evolve independently.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation happens in handlers; DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"github.com/warp/rota-engine/roster"
)

// =============================================================================
// WEEK
// =============================================================================

// DayDTO is one day's row of the schedule.
type DayDTO struct {
	Label string            `json:"label"`
	Slots map[string]string `json:"slots"`
}

// WeekDTO is the schedule under view.
type WeekDTO struct {
	WeekStart string            `json:"week_start"`
	Published bool              `json:"published"`
	Days      []DayDTO          `json:"days"`
	Loads     map[string]int    `json:"loads"`
	Reasons   map[string]string `json:"reasons,omitempty"`
}

func weekToDTO(w *roster.Week, published bool) WeekDTO {
	dto := WeekDTO{
		WeekStart: w.Start.Format(roster.ArchiveKeyLayout),
		Published: published,
		Loads:     w.Loads,
		Reasons:   w.Reasons,
	}
	for _, label := range w.DayLabels() {
		dto.Days = append(dto.Days, DayDTO{Label: label, Slots: w.Grid[label]})
	}
	return dto
}

// SwapRequest names the two slots to exchange. Days accept either the
// full day label or the bare weekday name.
type SwapRequest struct {
	Day1   string `json:"day1"`
	Shift1 string `json:"shift1"`
	Day2   string `json:"day2"`
	Shift2 string `json:"shift2"`
}

// OverrideRequest assigns a bartender to a slot with no eligibility
// check. An empty worker clears the slot.
type OverrideRequest struct {
	Worker string `json:"worker"`
	Day    string `json:"day"`
	Shift  string `json:"shift"`
}

// =============================================================================
// WORKERS
// =============================================================================

// WorkerDTO is one bartender and their constraint record.
type WorkerDTO struct {
	Name        string             `json:"name"`
	Constraints roster.Constraints `json:"constraints"`
}

// CreateWorkerRequest registers a bartender; ConstraintText, when
// present, is parsed with the free-text rules.
type CreateWorkerRequest struct {
	Name           string `json:"name"`
	ConstraintText string `json:"constraint_text,omitempty"`
}

// RenameWorkerRequest moves a bartender to an unused name.
type RenameWorkerRequest struct {
	NewName string `json:"new_name"`
}

// UpdateConstraintsRequest replaces a bartender's record, either from
// free text or from a structured record (text wins when both appear).
type UpdateConstraintsRequest struct {
	Text        string              `json:"text,omitempty"`
	Constraints *roster.Constraints `json:"constraints,omitempty"`
}

// ConstraintParseDTO reports the parsed record and any lines that
// matched more than one rule.
type ConstraintParseDTO struct {
	Constraints roster.Constraints `json:"constraints"`
	Ambiguous   []string           `json:"ambiguous,omitempty"`
}

// =============================================================================
// SHIFTS
// =============================================================================

// ShiftDTO is one catalog entry with its derived hours.
type ShiftDTO struct {
	Label  string `json:"label"`
	Active bool   `json:"active"`
	Start  int    `json:"start"`
	End    int    `json:"end"`
}

// CreateShiftRequest adds a shift label to the catalog.
type CreateShiftRequest struct {
	Label  string `json:"label"`
	Active *bool  `json:"active,omitempty"`
}

// SetShiftActiveRequest toggles a shift.
type SetShiftActiveRequest struct {
	Active bool `json:"active"`
}

// =============================================================================
// REPORT
// =============================================================================

// WorkerLoadDTO is one bartender's row of the load report; ratios are
// decimal strings.
type WorkerLoadDTO struct {
	Name  string `json:"name"`
	Slots int    `json:"slots"`
	Share string `json:"share"`
}

// ReportDTO summarizes the viewed week.
type ReportDTO struct {
	WeekStart  string          `json:"week_start"`
	TotalSlots int             `json:"total_slots"`
	Assigned   int             `json:"assigned"`
	Unassigned int             `json:"unassigned"`
	Coverage   string          `json:"coverage"`
	Workers    []WorkerLoadDTO `json:"workers"`
}

func reportToDTO(rep roster.LoadReport) ReportDTO {
	dto := ReportDTO{
		WeekStart:  rep.WeekStart.Format(roster.ArchiveKeyLayout),
		TotalSlots: rep.TotalSlots,
		Assigned:   rep.Assigned,
		Unassigned: rep.Unassigned,
		Coverage:   rep.Coverage.String(),
	}
	for _, wl := range rep.Workers {
		dto.Workers = append(dto.Workers, WorkerLoadDTO{
			Name:  wl.Name,
			Slots: wl.Slots,
			Share: wl.Share.String(),
		})
	}
	return dto
}

// =============================================================================
// ERRORS
// =============================================================================

// ErrorDTO is the error envelope for every non-2xx response.
type ErrorDTO struct {
	Error     string   `json:"error"`
	Violators []string `json:"violators,omitempty"`
}
