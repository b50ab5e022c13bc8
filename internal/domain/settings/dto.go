package settings

import (
	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/validator"
)

type UpdateSettingsRequest struct {
	HourlyRate   *decimal.Decimal `json:"hourly_rate,omitempty"`
	PaymentDay   *int             `json:"payment_day,omitempty"`
	WeekStartDay *int             `json:"week_start_day,omitempty"`
	SoundEnabled *bool            `json:"sound_enabled,omitempty"`
}

func (r *UpdateSettingsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.HourlyRate != nil && r.HourlyRate.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "hourly_rate",
			Message: "hourly_rate must not be negative",
		})
	}

	if r.PaymentDay != nil && !validator.IsValidWeekday(*r.PaymentDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "payment_day",
			Message: "payment_day must be a weekday index between 0 and 6",
		})
	}

	if r.WeekStartDay != nil && !validator.IsValidWeekday(*r.WeekStartDay) {
		errs = append(errs, validator.ValidationError{
			Field:   "week_start_day",
			Message: "week_start_day must be a weekday index between 0 and 6",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type SettingsResponse struct {
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	PaymentDay   int             `json:"payment_day"`
	WeekStartDay int             `json:"week_start_day"`
	SoundEnabled bool            `json:"sound_enabled"`
}
