package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

type settingsRepositoryImpl struct {
	db *database.DB
}

func NewSettingsRepository(db *database.DB) settings.SettingsRepository {
	return &settingsRepositoryImpl{db: db}
}

// Get implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Get(ctx context.Context, userID string) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT user_id, hourly_rate, payment_day, week_start_day, sound_enabled, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var s settings.Settings
	var paymentDay, weekStartDay int
	err := q.QueryRow(ctx, query, userID).Scan(
		&s.UserID, &s.HourlyRate, &paymentDay, &weekStartDay, &s.SoundEnabled, &s.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return settings.Settings{}, settings.ErrSettingsNotFound
		}
		return settings.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}

	s.PaymentDay = time.Weekday(paymentDay)
	s.WeekStartDay = time.Weekday(weekStartDay)

	return s, nil
}

// Upsert implements settings.SettingsRepository.
func (r *settingsRepositoryImpl) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_settings (user_id, hourly_rate, payment_day, week_start_day, sound_enabled)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO UPDATE
		SET hourly_rate = EXCLUDED.hourly_rate,
			payment_day = EXCLUDED.payment_day,
			week_start_day = EXCLUDED.week_start_day,
			sound_enabled = EXCLUDED.sound_enabled,
			updated_at = NOW()
		RETURNING updated_at
	`

	err := q.QueryRow(ctx, query,
		s.UserID, s.HourlyRate, int(s.PaymentDay), int(s.WeekStartDay), s.SoundEnabled,
	).Scan(&s.UpdatedAt)
	if err != nil {
		return settings.Settings{}, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return s, nil
}
