package settings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settings holds a user's configuration. Each user has at most one row;
// absent settings fall back to Defaults.
type Settings struct {
	UserID       string
	HourlyRate   decimal.Decimal
	PaymentDay   time.Weekday // recurring weekday wages are paid on
	WeekStartDay time.Weekday // first day of the week for grouping
	SoundEnabled bool
	UpdatedAt    time.Time
}

// Defaults returns the settings a user starts with: 150 currency units per
// hour, payday Friday, weeks starting Monday, UI sounds on.
func Defaults(userID string) Settings {
	return Settings{
		UserID:       userID,
		HourlyRate:   decimal.NewFromInt(150),
		PaymentDay:   time.Friday,
		WeekStartDay: time.Monday,
		SoundEnabled: true,
	}
}
