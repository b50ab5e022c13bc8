package reminder

import (
	"time"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/validator"
)

type CreateReminderRequest struct {
	Weekday   int    `json:"weekday"`
	ClockTime string `json:"time"`
	Message   string `json:"message"`
	Enabled   bool   `json:"enabled"`
}

func (r *CreateReminderRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidWeekday(r.Weekday) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be a weekday index between 0 and 6",
		})
	}

	if !validator.IsValidClockTime(r.ClockTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateReminderRequest struct {
	Weekday   *int    `json:"weekday,omitempty"`
	ClockTime *string `json:"time,omitempty"`
	Message   *string `json:"message,omitempty"`
	Enabled   *bool   `json:"enabled,omitempty"`
}

func (r *UpdateReminderRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Weekday != nil && !validator.IsValidWeekday(*r.Weekday) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekday",
			Message: "weekday must be a weekday index between 0 and 6",
		})
	}

	if r.ClockTime != nil && !validator.IsValidClockTime(*r.ClockTime) {
		errs = append(errs, validator.ValidationError{
			Field:   "time",
			Message: "time must be in HH:MM format",
		})
	}

	if r.Message != nil && validator.IsEmpty(*r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message must not be empty",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReminderResponse struct {
	ID        string    `json:"id"`
	Weekday   int       `json:"weekday"`
	ClockTime string    `json:"time"`
	Message   string    `json:"message"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
}

type ListRemindersResponse struct {
	Reminders []ReminderResponse `json:"reminders"`
}
