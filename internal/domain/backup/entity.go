package backup

import (
	"time"

	"github.com/shopspring/decimal"
)

// Backup is one server-side snapshot of a user's data.
type Backup struct {
	ID        string
	UserID    string
	Name      string
	Data      BackupData
	CreatedAt time.Time
}

// BackupData is the snapshot payload, stored as JSONB.
type BackupData struct {
	Shifts       []BackupShift   `json:"shifts"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	PaymentDay   int             `json:"payment_day"`
	WeekStartDay int             `json:"week_start_day"`
	SoundEnabled bool            `json:"sound_enabled"`
	Version      string          `json:"version"`
	Timestamp    int64           `json:"timestamp"`
}

// BackupShift is a shift as frozen inside a backup payload. Kept separate
// from the live entity so old payloads stay readable if the live shape moves.
type BackupShift struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     float64         `json:"hours"`
	Notes     *string         `json:"notes,omitempty"`
	Advance   decimal.Decimal `json:"advance"`
	IsAdvance bool            `json:"is_advance"`
}
