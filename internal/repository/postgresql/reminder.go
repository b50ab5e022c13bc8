package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

type reminderRepositoryImpl struct {
	db *database.DB
}

func NewReminderRepository(db *database.DB) reminder.ReminderRepository {
	return &reminderRepositoryImpl{db: db}
}

// Create implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) Create(ctx context.Context, rem reminder.Reminder) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO reminders (id, user_id, weekday, clock_time, message, enabled)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		rem.ID, rem.UserID, int(rem.Weekday), rem.ClockTime, rem.Message, rem.Enabled,
	).Scan(&rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		return reminder.Reminder{}, fmt.Errorf("failed to create reminder: %w", err)
	}

	return rem, nil
}

// GetByID implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, weekday, clock_time, message, enabled, created_at, updated_at
		FROM reminders
		WHERE id = $1 AND user_id = $2
	`

	var rem reminder.Reminder
	var weekday int
	err := q.QueryRow(ctx, query, id, userID).Scan(
		&rem.ID, &rem.UserID, &weekday, &rem.ClockTime, &rem.Message,
		&rem.Enabled, &rem.CreatedAt, &rem.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return reminder.Reminder{}, reminder.ErrReminderNotFound
		}
		return reminder.Reminder{}, fmt.Errorf("failed to get reminder: %w", err)
	}
	rem.Weekday = time.Weekday(weekday)

	return rem, nil
}

// ListByUser implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, weekday, clock_time, message, enabled, created_at, updated_at
		FROM reminders
		WHERE user_id = $1
		ORDER BY weekday ASC, clock_time ASC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

// Update implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) Update(ctx context.Context, rem reminder.Reminder) (reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reminders
		SET weekday = $1, clock_time = $2, message = $3, enabled = $4, updated_at = NOW()
		WHERE id = $5 AND user_id = $6
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		int(rem.Weekday), rem.ClockTime, rem.Message, rem.Enabled, rem.ID, rem.UserID,
	).Scan(&rem.CreatedAt, &rem.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return reminder.Reminder{}, reminder.ErrReminderNotFound
		}
		return reminder.Reminder{}, fmt.Errorf("failed to update reminder: %w", err)
	}

	return rem, nil
}

// Delete implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM reminders WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return reminder.ErrReminderNotFound
	}

	return nil
}

// ListDue implements reminder.ReminderRepository.
func (r *reminderRepositoryImpl) ListDue(ctx context.Context, weekday time.Weekday, clockTime string) ([]reminder.Reminder, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, weekday, clock_time, message, enabled, created_at, updated_at
		FROM reminders
		WHERE enabled = TRUE AND weekday = $1 AND clock_time = $2
	`

	rows, err := q.Query(ctx, query, int(weekday), clockTime)
	if err != nil {
		return nil, fmt.Errorf("failed to list due reminders: %w", err)
	}
	defer rows.Close()

	return scanReminders(rows)
}

func scanReminders(rows pgx.Rows) ([]reminder.Reminder, error) {
	var reminders []reminder.Reminder
	for rows.Next() {
		var rem reminder.Reminder
		var weekday int
		if err := rows.Scan(
			&rem.ID, &rem.UserID, &weekday, &rem.ClockTime, &rem.Message,
			&rem.Enabled, &rem.CreatedAt, &rem.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan reminder: %w", err)
		}
		rem.Weekday = time.Weekday(weekday)
		reminders = append(reminders, rem)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate reminders: %w", err)
	}

	return reminders, nil
}
