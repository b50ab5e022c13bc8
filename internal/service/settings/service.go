package settings

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
)

type SettingsServiceImpl struct {
	settingsRepo settings.SettingsRepository
}

func NewSettingsService(settingsRepo settings.SettingsRepository) settings.SettingsService {
	return &SettingsServiceImpl{settingsRepo: settingsRepo}
}

// Helper to get user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Get implements settings.SettingsService.
func (s *SettingsServiceImpl) Get(ctx context.Context) (settings.SettingsResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	stored, err := s.GetForUser(ctx, userID)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return toResponse(stored), nil
}

// GetForUser implements settings.SettingsService. Missing settings are not
// an error for callers; they get the defaults instead.
func (s *SettingsServiceImpl) GetForUser(ctx context.Context, userID string) (settings.Settings, error) {
	stored, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			return settings.Defaults(userID), nil
		}
		return settings.Settings{}, err
	}

	return stored, nil
}

// Update implements settings.SettingsService. Only the fields present in the
// request change; everything else keeps its current (or default) value.
func (s *SettingsServiceImpl) Update(ctx context.Context, req settings.UpdateSettingsRequest) (settings.SettingsResponse, error) {
	if err := req.Validate(); err != nil {
		return settings.SettingsResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	current, err := s.GetForUser(ctx, userID)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	if req.HourlyRate != nil {
		current.HourlyRate = *req.HourlyRate
	}
	if req.PaymentDay != nil {
		current.PaymentDay = time.Weekday(*req.PaymentDay)
	}
	if req.WeekStartDay != nil {
		current.WeekStartDay = time.Weekday(*req.WeekStartDay)
	}
	if req.SoundEnabled != nil {
		current.SoundEnabled = *req.SoundEnabled
	}

	updated, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		return settings.SettingsResponse{}, err
	}

	return toResponse(updated), nil
}

func toResponse(s settings.Settings) settings.SettingsResponse {
	return settings.SettingsResponse{
		HourlyRate:   s.HourlyRate,
		PaymentDay:   int(s.PaymentDay),
		WeekStartDay: int(s.WeekStartDay),
		SoundEnabled: s.SoundEnabled,
	}
}
