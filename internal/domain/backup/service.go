package backup

import "context"

type BackupService interface {
	// Create snapshots the user's current shifts and settings under the
	// given name ("Manual backup" when empty).
	Create(ctx context.Context, req CreateBackupRequest) (BackupResponse, error)

	// AutoBackup creates a snapshot unless one already exists today.
	// Returns the existing backup in that case.
	AutoBackup(ctx context.Context, userID string) (BackupResponse, error)

	List(ctx context.Context) (ListBackupsResponse, error)
	Get(ctx context.Context, id string) (BackupDetailResponse, error)

	// Restore transactionally replaces the user's shifts and settings with
	// the snapshot contents.
	Restore(ctx context.Context, id string) error

	Delete(ctx context.Context, id string) error
}
