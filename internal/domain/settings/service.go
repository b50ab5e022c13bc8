package settings

import "context"

type SettingsService interface {
	// Get returns the user's settings, falling back to Defaults when none
	// are stored yet.
	Get(ctx context.Context) (SettingsResponse, error)

	// GetForUser is Get with an explicit user id, for callers running
	// outside a request context (scheduler jobs, backup restore).
	GetForUser(ctx context.Context, userID string) (Settings, error)

	Update(ctx context.Context, req UpdateSettingsRequest) (SettingsResponse, error)
}
