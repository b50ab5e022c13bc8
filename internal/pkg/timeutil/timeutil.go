package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Weekday indices follow time.Weekday: 0 = Sunday .. 6 = Saturday.

// Truncate drops the time-of-day component and returns the calendar date
// at local midnight. All period-boundary comparisons operate on truncated
// dates so that whatever time-of-day a stored date carries is ignored.
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// TruncateIn returns t's calendar date at midnight in loc. Stored dates can
// carry a different zone than the reference clock (the DATE codec decodes to
// UTC midnight); rebasing the calendar components into loc makes Before/After
// comparisons against boundaries built in loc behave as date comparisons.
func TruncateIn(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// StartOfWeek returns the date at 00:00 that begins the week containing t,
// where weeks start on weekStartDay (0=Sunday..6=Saturday).
func StartOfWeek(t time.Time, weekStartDay time.Weekday) time.Time {
	day := Truncate(t)
	diff := (7 + int(day.Weekday()) - int(weekStartDay)) % 7
	return day.AddDate(0, 0, -diff)
}

// EndOfWeek returns the last instant of the Sunday-terminated calendar week
// containing t. Callers that need a configurable week end derive it as
// StartOfWeek(t, weekStartDay) plus six days instead.
func EndOfWeek(t time.Time) time.Time {
	day := Truncate(t)
	diff := 0
	if day.Weekday() != time.Sunday {
		diff = 7 - int(day.Weekday())
	}
	end := day.AddDate(0, 0, diff)
	return time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, 999999999, end.Location())
}

// LastPaymentDate walks backward day-by-day from ref (inclusive) until it
// finds a date whose weekday equals paymentDay. If ref already falls on
// paymentDay it is returned unchanged. Terminates within 7 iterations.
func LastPaymentDate(ref time.Time, paymentDay time.Weekday) time.Time {
	day := Truncate(ref)
	for day.Weekday() != paymentDay {
		day = day.AddDate(0, 0, -1)
	}
	return day
}

// IsNewWeek reports whether current falls in a different week than previous,
// with weeks defined by weekStartDay. A nil previous is never a new week.
// Used for grouping a shift list by week, not for aggregation.
func IsNewWeek(current time.Time, previous *time.Time, weekStartDay time.Weekday) bool {
	if previous == nil {
		return false
	}
	return !StartOfWeek(current, weekStartDay).Equal(StartOfWeek(*previous, weekStartDay))
}

// ParseClock parses a "HH:MM" clock time into its hour and minute parts.
func ParseClock(s string) (hours int, minutes int, err error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid clock time %q", s)
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid clock time %q: %w", s, err)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, 0, fmt.Errorf("clock time %q out of range", s)
	}
	return hours, minutes, nil
}

// CalculateHours computes the worked duration between two "HH:MM" clock
// times in hours, rounded to one decimal place. A shift crossing midnight
// is treated as a same-day forward span, never negative or multi-day.
func CalculateHours(startTime, endTime string) (float64, error) {
	startH, startM, err := ParseClock(startTime)
	if err != nil {
		return 0, err
	}
	endH, endM, err := ParseClock(endTime)
	if err != nil {
		return 0, err
	}

	hours := endH - startH
	minutes := endM - startM

	if minutes < 0 {
		hours--
		minutes += 60
	}
	if hours < 0 {
		hours += 24
	}

	return math.Round((float64(hours)+float64(minutes)/60)*10) / 10, nil
}
