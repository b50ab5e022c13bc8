package response

import (
	"errors"
	"net/http"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/auth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/user"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Auth domain errors
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrInvalidOAuthState):
		Unauthorized(w, "Invalid OAuth state")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")

	// Settings domain errors
	case errors.Is(err, settings.ErrSettingsNotFound):
		NotFound(w, "Settings not found")

	// Backup domain errors
	case errors.Is(err, backup.ErrBackupNotFound):
		NotFound(w, "Backup not found")

	// Reminder domain errors
	case errors.Is(err, reminder.ErrReminderNotFound):
		NotFound(w, "Reminder not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
