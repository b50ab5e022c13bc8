package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

// Shift is one logged work shift or one standalone cash advance.
// A record has exactly one semantic role: worked shift (hours derived from
// the clock times, advance optional) or pure advance (hours forced to zero,
// IsAdvance set). A worked shift may still carry a partial advance.
type Shift struct {
	ID        string
	UserID    string
	Date      time.Time
	StartTime string
	EndTime   string
	Hours     float64
	Notes     *string
	Advance   decimal.Decimal
	IsAdvance bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasAdvance reports whether the record carries a non-zero advance amount,
// either as a pure advance or as a partial advance against a worked shift.
func (s *Shift) HasAdvance() bool {
	return s.IsAdvance || s.Advance.IsPositive()
}

// IsWorked reports whether the record counts toward worked hours.
func (s *Shift) IsWorked() bool {
	return !s.IsAdvance
}
