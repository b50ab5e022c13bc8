package reminder

import "time"

// Reminder is a recurring shift reminder: fire every week on Weekday at
// ClockTime, delivering Message through the push channel.
type Reminder struct {
	ID        string
	UserID    string
	Weekday   time.Weekday
	ClockTime string // "HH:MM"
	Message   string
	Enabled   bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
