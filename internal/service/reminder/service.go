package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/notify"
)

type ReminderServiceImpl struct {
	reminderRepo reminder.ReminderRepository
	notifier     notify.Client
	logger       *slog.Logger

	// now is swappable in tests
	now func() time.Time
}

func NewReminderService(reminderRepo reminder.ReminderRepository, notifier notify.Client, logger *slog.Logger) reminder.ReminderService {
	return &ReminderServiceImpl{
		reminderRepo: reminderRepo,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// Helper to get user_id from JWT context
func getUserIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return userID, nil
}

// Create implements reminder.ReminderService.
func (s *ReminderServiceImpl) Create(ctx context.Context, req reminder.CreateReminderRequest) (reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.ReminderResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	created, err := s.reminderRepo.Create(ctx, reminder.Reminder{
		ID:        uuid.NewString(),
		UserID:    userID,
		Weekday:   time.Weekday(req.Weekday),
		ClockTime: req.ClockTime,
		Message:   req.Message,
		Enabled:   req.Enabled,
	})
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	return toResponse(created), nil
}

// List implements reminder.ReminderService.
func (s *ReminderServiceImpl) List(ctx context.Context) (reminder.ListRemindersResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return reminder.ListRemindersResponse{}, err
	}

	reminders, err := s.reminderRepo.ListByUser(ctx, userID)
	if err != nil {
		return reminder.ListRemindersResponse{}, err
	}

	responses := make([]reminder.ReminderResponse, 0, len(reminders))
	for _, r := range reminders {
		responses = append(responses, toResponse(r))
	}

	return reminder.ListRemindersResponse{Reminders: responses}, nil
}

// Update implements reminder.ReminderService. Partial update; absent fields
// keep their stored values.
func (s *ReminderServiceImpl) Update(ctx context.Context, id string, req reminder.UpdateReminderRequest) (reminder.ReminderResponse, error) {
	if err := req.Validate(); err != nil {
		return reminder.ReminderResponse{}, err
	}

	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	current, err := s.reminderRepo.GetByID(ctx, id, userID)
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	if req.Weekday != nil {
		current.Weekday = time.Weekday(*req.Weekday)
	}
	if req.ClockTime != nil {
		current.ClockTime = *req.ClockTime
	}
	if req.Message != nil {
		current.Message = *req.Message
	}
	if req.Enabled != nil {
		current.Enabled = *req.Enabled
	}

	updated, err := s.reminderRepo.Update(ctx, current)
	if err != nil {
		return reminder.ReminderResponse{}, err
	}

	return toResponse(updated), nil
}

// Delete implements reminder.ReminderService.
func (s *ReminderServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.reminderRepo.Delete(ctx, id, userID)
}

// FireDue implements reminder.ReminderService. A failed delivery is logged
// and skipped so one unreachable device never blocks the rest.
func (s *ReminderServiceImpl) FireDue(ctx context.Context) error {
	now := s.now()
	clock := now.Format("15:04")

	due, err := s.reminderRepo.ListDue(ctx, now.Weekday(), clock)
	if err != nil {
		return fmt.Errorf("failed to list due reminders: %w", err)
	}

	for _, r := range due {
		err := s.notifier.Push(ctx, notify.PushRequest{
			Topic:   userTopic(r.UserID),
			Title:   "Shift reminder",
			Message: r.Message,
		})
		if err != nil {
			s.logger.Error("failed to deliver reminder",
				slog.String("reminder_id", r.ID),
				slog.String("user_id", r.UserID),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// userTopic maps a user to their private push topic.
func userTopic(userID string) string {
	return "shiftlog-" + userID
}

func toResponse(r reminder.Reminder) reminder.ReminderResponse {
	return reminder.ReminderResponse{
		ID:        r.ID,
		Weekday:   int(r.Weekday),
		ClockTime: r.ClockTime,
		Message:   r.Message,
		Enabled:   r.Enabled,
		CreatedAt: r.CreatedAt,
	}
}
