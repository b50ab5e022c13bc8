package shift

import (
	"context"
)

// ShiftRepository defines data access methods for shift records.
// All methods take a userID parameter to keep one user's records isolated
// from another's.
type ShiftRepository interface {
	// Create persists a new shift record
	Create(ctx context.Context, s Shift) (Shift, error)

	// GetByID retrieves a shift by ID with user isolation
	GetByID(ctx context.Context, id string, userID string) (Shift, error)

	// ListByUser retrieves all shifts for a user, newest date first
	ListByUser(ctx context.Context, userID string) ([]Shift, error)

	// Update replaces all mutable fields of an existing shift
	Update(ctx context.Context, s Shift) (Shift, error)

	// Delete removes a shift by ID
	Delete(ctx context.Context, id string, userID string) error

	// DeleteAllByUser removes every shift a user has logged (bulk clear)
	DeleteAllByUser(ctx context.Context, userID string) error

	// ReplaceAllForUser swaps a user's entire shift list, used when
	// restoring from a backup. Must run inside a transaction.
	ReplaceAllForUser(ctx context.Context, userID string, shifts []Shift) error
}
