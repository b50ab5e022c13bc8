package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
)

type backupRepositoryImpl struct {
	db *database.DB
}

func NewBackupRepository(db *database.DB) backup.BackupRepository {
	return &backupRepositoryImpl{db: db}
}

// Create implements backup.BackupRepository.
func (r *backupRepositoryImpl) Create(ctx context.Context, b backup.Backup) (backup.Backup, error) {
	q := GetQuerier(ctx, r.db)

	payload, err := json.Marshal(b.Data)
	if err != nil {
		return backup.Backup{}, fmt.Errorf("failed to marshal backup payload: %w", err)
	}

	query := `
		INSERT INTO backups (id, user_id, name, payload)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err = q.QueryRow(ctx, query, b.ID, b.UserID, b.Name, payload).Scan(&b.CreatedAt)
	if err != nil {
		return backup.Backup{}, fmt.Errorf("failed to create backup: %w", err)
	}

	return b, nil
}

// GetByID implements backup.BackupRepository.
func (r *backupRepositoryImpl) GetByID(ctx context.Context, id string, userID string) (backup.Backup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, payload, created_at
		FROM backups
		WHERE id = $1 AND user_id = $2
	`

	return r.scanOne(q.QueryRow(ctx, query, id, userID))
}

// GetLatest implements backup.BackupRepository.
func (r *backupRepositoryImpl) GetLatest(ctx context.Context, userID string) (backup.Backup, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, payload, created_at
		FROM backups
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	return r.scanOne(q.QueryRow(ctx, query, userID))
}

func (r *backupRepositoryImpl) scanOne(row pgx.Row) (backup.Backup, error) {
	var b backup.Backup
	var payload []byte

	err := row.Scan(&b.ID, &b.UserID, &b.Name, &payload, &b.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return backup.Backup{}, backup.ErrBackupNotFound
		}
		return backup.Backup{}, fmt.Errorf("failed to get backup: %w", err)
	}

	if err := json.Unmarshal(payload, &b.Data); err != nil {
		return backup.Backup{}, fmt.Errorf("failed to unmarshal backup payload: %w", err)
	}

	return b, nil
}

// ListByUser implements backup.BackupRepository.
func (r *backupRepositoryImpl) ListByUser(ctx context.Context, userID string) ([]backup.Backup, error) {
	q := GetQuerier(ctx, r.db)

	// Payloads are skipped in listings; they can be large.
	query := `
		SELECT id, user_id, name, created_at
		FROM backups
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}
	defer rows.Close()

	var backups []backup.Backup
	for rows.Next() {
		var b backup.Backup
		if err := rows.Scan(&b.ID, &b.UserID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan backup: %w", err)
		}
		backups = append(backups, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate backups: %w", err)
	}

	return backups, nil
}

// Delete implements backup.BackupRepository.
func (r *backupRepositoryImpl) Delete(ctx context.Context, id string, userID string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM backups WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return backup.ErrBackupNotFound
	}

	return nil
}
