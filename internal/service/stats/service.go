package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/stats"
)

type StatsServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	settingsRepo settings.SettingsRepository

	// now is swappable for tests; defaults to time.Now.
	now func() time.Time
}

func NewStatsService(shiftRepo shift.ShiftRepository, settingsRepo settings.SettingsRepository) stats.StatsService {
	return &StatsServiceImpl{
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
	}
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

// GetStats implements stats.StatsService.
func (s *StatsServiceImpl) GetStats(ctx context.Context, period stats.Period, adjustment decimal.Decimal) (stats.StatsResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return stats.StatsResponse{}, err
	}

	userSettings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if err == settings.ErrSettingsNotFound {
			userSettings = settings.Defaults(userID)
		} else {
			return stats.StatsResponse{}, err
		}
	}

	shifts, err := s.shiftRepo.ListByUser(ctx, userID)
	if err != nil {
		return stats.StatsResponse{}, err
	}

	now := s.now()
	filtered := FilterByPeriod(shifts, period, userSettings.PaymentDay, userSettings.WeekStartDay, now)

	return stats.StatsResponse{
		Period: period,
		Stats:  Aggregate(filtered, userSettings.HourlyRate, adjustment),
		Range:  PeriodDateRange(period, userSettings.WeekStartDay, now),
	}, nil
}
