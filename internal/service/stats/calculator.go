package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/timeutil"
)

// Aggregate computes totals over an already-filtered shift list.
//
// Hours and shift count come from worked shifts only. Advances come from
// every record that carries one, so a worked shift with a partial advance
// contributes to both sides; that double-counting is intentional.
// Wage = hourlyRate * totalHours - totalAdvance + adjustment.
//
// Amounts accumulate at full decimal precision; rounding to whole currency
// units happens only at formatting time. Empty input yields zero stats.
// Negative rates or adjustments are the caller's business.
func Aggregate(shifts []shift.Shift, hourlyRate decimal.Decimal, adjustment decimal.Decimal) stats.AggregateStats {
	var totalHours float64
	var totalShifts int
	totalAdvance := decimal.Zero

	for i := range shifts {
		s := &shifts[i]
		if s.IsWorked() {
			totalHours += s.Hours
			totalShifts++
		}
		if s.HasAdvance() {
			totalAdvance = totalAdvance.Add(s.Advance)
		}
	}

	totalWage := hourlyRate.Mul(decimal.NewFromFloat(totalHours)).
		Sub(totalAdvance).
		Add(adjustment)

	return stats.AggregateStats{
		TotalHours:   totalHours,
		TotalShifts:  totalShifts,
		TotalAdvance: totalAdvance,
		TotalWage:    totalWage,
	}
}

// DailyEarnings computes the net earnings for a single calendar date:
// hourly rate times the hours worked that day, minus that day's advances.
func DailyEarnings(shifts []shift.Shift, date time.Time, hourlyRate decimal.Decimal) decimal.Decimal {
	day := timeutil.Truncate(date)

	var hours float64
	advances := decimal.Zero

	for i := range shifts {
		s := &shifts[i]
		if !timeutil.TruncateIn(s.Date, day.Location()).Equal(day) {
			continue
		}
		if s.IsWorked() {
			hours += s.Hours
		}
		if s.HasAdvance() {
			advances = advances.Add(s.Advance)
		}
	}

	return hourlyRate.Mul(decimal.NewFromFloat(hours)).Sub(advances)
}

// GroupByDate buckets shifts by calendar date, preserving input order
// within each bucket. Keys are UTC midnights so records whose dates carry
// different zones land in the same bucket.
func GroupByDate(shifts []shift.Shift) map[time.Time][]shift.Shift {
	groups := make(map[time.Time][]shift.Shift)
	for _, s := range shifts {
		day := timeutil.TruncateIn(s.Date, time.UTC)
		groups[day] = append(groups[day], s)
	}
	return groups
}
