package stats

import (
	"time"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/timeutil"
)

// FilterByPeriod returns the subset of shifts whose calendar date falls
// inside the period's inclusive boundaries, computed relative to now.
// Input order is preserved and the result is always a fresh slice. An
// unknown period filters nothing; a permissive default, not an error.
func FilterByPeriod(shifts []shift.Shift, period stats.Period, paymentDay, weekStartDay time.Weekday, now time.Time) []shift.Shift {
	today := timeutil.Truncate(now)

	var start, end time.Time
	open := false // open-ended toward the future

	switch period {
	case stats.PeriodThisWeek:
		start = timeutil.StartOfWeek(today, weekStartDay)
		end = timeutil.EndOfWeek(today)
	case stats.PeriodLastWeek:
		lastWeek := today.AddDate(0, 0, -7)
		start = timeutil.StartOfWeek(lastWeek, weekStartDay)
		end = timeutil.EndOfWeek(lastWeek)
	case stats.PeriodLastPayment:
		start = timeutil.LastPaymentDate(today, paymentDay)
		open = true
	case stats.PeriodMonth:
		start = time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		end = start.AddDate(0, 1, -1)
	case stats.PeriodYear:
		start = time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		end = time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location())
	default: // stats.PeriodAll and anything unrecognized
		out := make([]shift.Shift, len(shifts))
		copy(out, shifts)
		return out
	}

	out := make([]shift.Shift, 0, len(shifts))
	for _, s := range shifts {
		// Rebase into now's zone so a record date stored in another zone
		// still compares by calendar day, not by instant.
		d := timeutil.TruncateIn(s.Date, now.Location())
		if d.Before(start) {
			continue
		}
		if !open && d.After(end) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// PeriodDateRange returns the inclusive calendar-date range a period spans,
// for display. Open-ended periods ("all", "lastPayment") have no fixed
// range and yield nil.
func PeriodDateRange(period stats.Period, weekStartDay time.Weekday, now time.Time) *stats.DateRange {
	today := timeutil.Truncate(now)

	switch period {
	case stats.PeriodThisWeek:
		return &stats.DateRange{
			Start: timeutil.StartOfWeek(today, weekStartDay),
			End:   timeutil.Truncate(timeutil.EndOfWeek(today)),
		}
	case stats.PeriodLastWeek:
		lastWeek := today.AddDate(0, 0, -7)
		return &stats.DateRange{
			Start: timeutil.StartOfWeek(lastWeek, weekStartDay),
			End:   timeutil.Truncate(timeutil.EndOfWeek(lastWeek)),
		}
	case stats.PeriodMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return &stats.DateRange{Start: start, End: start.AddDate(0, 1, -1)}
	case stats.PeriodYear:
		return &stats.DateRange{
			Start: time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location()),
			End:   time.Date(today.Year(), time.December, 31, 0, 0, 0, 0, today.Location()),
		}
	default:
		return nil
	}
}
