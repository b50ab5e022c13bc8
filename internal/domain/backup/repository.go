package backup

import "context"

// BackupRepository stores snapshot records. All methods take userID for
// per-user isolation.
type BackupRepository interface {
	// Create persists a new backup record
	Create(ctx context.Context, b Backup) (Backup, error)

	// GetByID retrieves a backup by ID with user isolation
	GetByID(ctx context.Context, id string, userID string) (Backup, error)

	// GetLatest retrieves the most recent backup, ErrBackupNotFound when
	// the user has none.
	GetLatest(ctx context.Context, userID string) (Backup, error)

	// ListByUser retrieves a user's backups, newest first, payloads omitted
	ListByUser(ctx context.Context, userID string) ([]Backup, error)

	// Delete removes a backup by ID
	Delete(ctx context.Context, id string, userID string) error
}
