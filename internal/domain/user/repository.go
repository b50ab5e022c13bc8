package user

import (
	"context"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id string) (User, error)
	Create(ctx context.Context, newUser User) (User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	LinkGoogleAccount(ctx context.Context, googleID string, email string) (User, error)

	// ListIDs returns every user id, for jobs that run across all accounts.
	ListIDs(ctx context.Context) ([]string, error)
}
