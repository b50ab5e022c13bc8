package shift

import (
	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	Date      string           `json:"date"`
	StartTime string           `json:"start_time"`
	EndTime   string           `json:"end_time"`
	Notes     *string          `json:"notes,omitempty"`
	Advance   *decimal.Decimal `json:"advance,omitempty"`
	IsAdvance bool             `json:"is_advance"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	// Clock times only matter for worked shifts; a pure advance keeps
	// whatever was submitted and derives zero hours.
	if !r.IsAdvance {
		if !validator.IsValidClockTime(r.StartTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "start_time",
				Message: "start_time must be in HH:MM format",
			})
		}
		if !validator.IsValidClockTime(r.EndTime) {
			errs = append(errs, validator.ValidationError{
				Field:   "end_time",
				Message: "end_time must be in HH:MM format",
			})
		}
	}

	if r.Advance != nil && r.Advance.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "advance",
			Message: "advance must not be negative",
		})
	}

	if r.IsAdvance && (r.Advance == nil || !r.Advance.IsPositive()) {
		errs = append(errs, validator.ValidationError{
			Field:   "advance",
			Message: "a pure advance requires a positive advance amount",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateShiftRequest replaces every field of an existing shift; the id is
// preserved. Same validation rules as creation.
type UpdateShiftRequest struct {
	CreateShiftRequest
}

type ShiftResponse struct {
	ID        string          `json:"id"`
	Date      string          `json:"date"`
	StartTime string          `json:"start_time"`
	EndTime   string          `json:"end_time"`
	Hours     float64         `json:"hours"`
	Notes     *string         `json:"notes,omitempty"`
	Advance   decimal.Decimal `json:"advance"`
	IsAdvance bool            `json:"is_advance"`

	// IsNewWeek marks the first shift of a new week in a newest-first
	// listing, for visual grouping on the client.
	IsNewWeek bool `json:"is_new_week"`
}

type ListShiftsResponse struct {
	Shifts []ShiftResponse `json:"shifts"`
}
