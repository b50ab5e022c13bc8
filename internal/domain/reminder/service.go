package reminder

import "context"

type ReminderService interface {
	Create(ctx context.Context, req CreateReminderRequest) (ReminderResponse, error)
	List(ctx context.Context) (ListRemindersResponse, error)
	Update(ctx context.Context, id string, req UpdateReminderRequest) (ReminderResponse, error)
	Delete(ctx context.Context, id string) error

	// FireDue delivers every reminder scheduled for the given instant.
	// Called by the scheduler once a minute.
	FireDue(ctx context.Context) error
}
