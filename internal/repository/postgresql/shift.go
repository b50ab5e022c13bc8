package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

// Create implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time, hours, notes, advance, is_advance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.ID,
		s.UserID,
		s.Date,
		s.StartTime,
		s.EndTime,
		s.Hours,
		s.Notes,
		s.Advance,
		s.IsAdvance,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return s, nil
}

// GetByID implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, hours, notes, advance, is_advance,
			   created_at, updated_at
		FROM shifts
		WHERE id = $1 AND user_id = $2
	`

	var s shift.Shift
	err := q.QueryRow(ctx, query, id, userID).Scan(
		&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours,
		&s.Notes, &s.Advance, &s.IsAdvance, &s.CreatedAt, &s.UpdatedAt,
	)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	return s, nil
}

// ListByUser implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, date, start_time, end_time, hours, notes, advance, is_advance,
			   created_at, updated_at
		FROM shifts
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		var s shift.Shift
		if err := rows.Scan(
			&s.ID, &s.UserID, &s.Date, &s.StartTime, &s.EndTime, &s.Hours,
			&s.Notes, &s.Advance, &s.IsAdvance, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}

	return shifts, nil
}

// Update implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET date = $1, start_time = $2, end_time = $3, hours = $4, notes = $5,
			advance = $6, is_advance = $7, updated_at = NOW()
		WHERE id = $8 AND user_id = $9
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		s.Date, s.StartTime, s.EndTime, s.Hours, s.Notes,
		s.Advance, s.IsAdvance, s.ID, s.UserID,
	).Scan(&s.CreatedAt, &s.UpdatedAt)

	if err != nil {
		if err == pgx.ErrNoRows {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to update shift: %w", err)
	}

	return s, nil
}

// Delete implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM shifts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shift.ErrShiftNotFound
	}

	return nil
}

// DeleteAllByUser implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) DeleteAllByUser(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shifts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear shifts: %w", err)
	}

	return nil
}

// ReplaceAllForUser implements shift.ShiftRepository.
func (r *shiftRepositoryImpl) ReplaceAllForUser(ctx context.Context, userID string, shifts []shift.Shift) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM shifts WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("failed to clear shifts before restore: %w", err)
	}

	query := `
		INSERT INTO shifts (id, user_id, date, start_time, end_time, hours, notes, advance, is_advance)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	for _, s := range shifts {
		if _, err := q.Exec(ctx, query,
			s.ID, userID, s.Date, s.StartTime, s.EndTime, s.Hours,
			s.Notes, s.Advance, s.IsAdvance,
		); err != nil {
			return fmt.Errorf("failed to restore shift %s: %w", s.ID, err)
		}
	}

	return nil
}
