package stats

import (
	"time"

	"github.com/shopspring/decimal"
)

// Period selects the date range shifts are aggregated over.
type Period string

const (
	PeriodThisWeek    Period = "thisWeek"
	PeriodLastWeek    Period = "lastWeek"
	PeriodLastPayment Period = "lastPayment"
	PeriodMonth       Period = "month"
	PeriodYear        Period = "year"
	PeriodAll         Period = "all"
)

// AggregateStats is derived from a filtered shift list, never persisted.
type AggregateStats struct {
	TotalHours   float64         `json:"total_hours"`
	TotalShifts  int             `json:"total_shifts"`
	TotalAdvance decimal.Decimal `json:"total_advance"`
	TotalWage    decimal.Decimal `json:"total_wage"`
}

// DateRange is an inclusive calendar-date range for display purposes.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type StatsResponse struct {
	Period Period         `json:"period"`
	Stats  AggregateStats `json:"stats"`

	// Range is nil for open-ended periods ("all", "lastPayment").
	Range *DateRange `json:"range,omitempty"`
}
