package settings

import "context"

// SettingsRepository persists per-user configuration.
type SettingsRepository interface {
	// Get retrieves a user's settings; ErrSettingsNotFound when the user
	// has never changed anything.
	Get(ctx context.Context, userID string) (Settings, error)

	// Upsert creates or replaces a user's settings row.
	Upsert(ctx context.Context, s Settings) (Settings, error)
}
