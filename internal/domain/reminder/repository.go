package reminder

import (
	"context"
	"time"
)

// ReminderRepository persists reminders. Per-user methods take userID for
// isolation; ListDue crosses users because the scheduler fires for everyone.
type ReminderRepository interface {
	Create(ctx context.Context, r Reminder) (Reminder, error)
	GetByID(ctx context.Context, id string, userID string) (Reminder, error)
	ListByUser(ctx context.Context, userID string) ([]Reminder, error)
	Update(ctx context.Context, r Reminder) (Reminder, error)
	Delete(ctx context.Context, id string, userID string) error

	// ListDue returns every enabled reminder across all users scheduled
	// for the given weekday and clock time.
	ListDue(ctx context.Context, weekday time.Weekday, clockTime string) ([]Reminder, error)
}
