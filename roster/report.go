/*
report.go - Week load reporting

PURPOSE:
  Summarizes a week for display: coverage ratio and each bartender's
  share of the assigned slots. Ratios use decimal arithmetic so the
  shares always sum exactly to one on a fully-covered week.
*/
package roster

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// reportPlaces is the rounding applied to report ratios.
const reportPlaces = 4

// WorkerLoad is one bartender's row in a load report.
type WorkerLoad struct {
	Name  string
	Slots int
	Share decimal.Decimal
}

// LoadReport summarizes slot coverage for a week.
type LoadReport struct {
	WeekStart  time.Time
	TotalSlots int
	Assigned   int
	Unassigned int
	Coverage   decimal.Decimal
	Workers    []WorkerLoad
}

// BuildLoadReport computes the report for a week. Shares are relative
// to assigned slots; coverage is relative to all slots.
func BuildLoadReport(w *Week) LoadReport {
	total := w.TotalSlots()
	assigned := w.AssignedSlots()
	rep := LoadReport{
		WeekStart:  w.Start,
		TotalSlots: total,
		Assigned:   assigned,
		Unassigned: total - assigned,
	}
	if total > 0 {
		rep.Coverage = decimal.NewFromInt(int64(assigned)).
			Div(decimal.NewFromInt(int64(total))).Round(reportPlaces)
	}
	for name, slots := range w.Loads {
		wl := WorkerLoad{Name: name, Slots: slots}
		if assigned > 0 {
			wl.Share = decimal.NewFromInt(int64(slots)).
				Div(decimal.NewFromInt(int64(assigned))).Round(reportPlaces)
		}
		rep.Workers = append(rep.Workers, wl)
	}
	sort.Slice(rep.Workers, func(i, j int) bool {
		if rep.Workers[i].Slots != rep.Workers[j].Slots {
			return rep.Workers[i].Slots > rep.Workers[j].Slots
		}
		return rep.Workers[i].Name < rep.Workers[j].Name
	})
	return rep
}
