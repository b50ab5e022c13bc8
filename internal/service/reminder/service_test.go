package reminder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/notify"
)

type fakeReminderRepo struct {
	reminders map[string]reminder.Reminder
}

func newFakeReminderRepo() *fakeReminderRepo {
	return &fakeReminderRepo{reminders: make(map[string]reminder.Reminder)}
}

func (f *fakeReminderRepo) Create(ctx context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	f.reminders[r.ID] = r
	return r, nil
}

func (f *fakeReminderRepo) GetByID(ctx context.Context, id string, userID string) (reminder.Reminder, error) {
	r, ok := f.reminders[id]
	if !ok || r.UserID != userID {
		return reminder.Reminder{}, reminder.ErrReminderNotFound
	}
	return r, nil
}

func (f *fakeReminderRepo) ListByUser(ctx context.Context, userID string) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range f.reminders {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReminderRepo) Update(ctx context.Context, r reminder.Reminder) (reminder.Reminder, error) {
	if _, ok := f.reminders[r.ID]; !ok {
		return reminder.Reminder{}, reminder.ErrReminderNotFound
	}
	f.reminders[r.ID] = r
	return r, nil
}

func (f *fakeReminderRepo) Delete(ctx context.Context, id string, userID string) error {
	r, ok := f.reminders[id]
	if !ok || r.UserID != userID {
		return reminder.ErrReminderNotFound
	}
	delete(f.reminders, id)
	return nil
}

func (f *fakeReminderRepo) ListDue(ctx context.Context, weekday time.Weekday, clockTime string) ([]reminder.Reminder, error) {
	var out []reminder.Reminder
	for _, r := range f.reminders {
		if r.Enabled && r.Weekday == weekday && r.ClockTime == clockTime {
			out = append(out, r)
		}
	}
	return out, nil
}

// recordingNotifier captures pushed notifications.
type recordingNotifier struct {
	pushed []notify.PushRequest
}

func (n *recordingNotifier) Push(ctx context.Context, req notify.PushRequest) error {
	n.pushed = append(n.pushed, req)
	return nil
}

func authedContext(t *testing.T, userID string) context.Context {
	t.Helper()

	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	_, tokenString, err := tokenAuth.Encode(map[string]interface{}{"user_id": userID})
	require.NoError(t, err)

	token, err := tokenAuth.Decode(tokenString)
	require.NoError(t, err)

	return jwtauth.NewContext(context.Background(), token, nil)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestCreateAndList(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), &recordingNotifier{}, discardLogger())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday:   1,
		ClockTime: "08:45",
		Message:   "Morning shift starts soon",
		Enabled:   true,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 1, created.Weekday)
	assert.Equal(t, "08:45", created.ClockTime)

	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Reminders, 1)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), &recordingNotifier{}, discardLogger())
	ctx := authedContext(t, "user-1")

	_, err := svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday:   9,
		ClockTime: "25:99",
		Message:   "",
	})
	assert.Error(t, err)
}

func TestUpdatePartial(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), &recordingNotifier{}, discardLogger())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday:   1,
		ClockTime: "08:45",
		Message:   "Morning shift starts soon",
		Enabled:   true,
	})
	require.NoError(t, err)

	disabled := false
	newTime := "09:15"
	updated, err := svc.Update(ctx, created.ID, reminder.UpdateReminderRequest{
		ClockTime: &newTime,
		Enabled:   &disabled,
	})
	require.NoError(t, err)

	assert.Equal(t, "09:15", updated.ClockTime)
	assert.False(t, updated.Enabled)
	// Untouched fields survive.
	assert.Equal(t, 1, updated.Weekday)
	assert.Equal(t, "Morning shift starts soon", updated.Message)
}

func TestFireDueDeliversOnlyMatching(t *testing.T) {
	repo := newFakeReminderRepo()
	notifier := &recordingNotifier{}

	svc := NewReminderService(repo, notifier, discardLogger()).(*ReminderServiceImpl)
	// Monday 2025-03-03 08:45.
	svc.now = func() time.Time {
		return time.Date(2025, time.March, 3, 8, 45, 0, 0, time.Local)
	}

	ctx := authedContext(t, "user-1")
	_, err := svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday: 1, ClockTime: "08:45", Message: "due now", Enabled: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday: 1, ClockTime: "17:00", Message: "not yet", Enabled: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, reminder.CreateReminderRequest{
		Weekday: 1, ClockTime: "08:45", Message: "disabled", Enabled: false,
	})
	require.NoError(t, err)

	require.NoError(t, svc.FireDue(context.Background()))

	require.Len(t, notifier.pushed, 1)
	assert.Equal(t, "due now", notifier.pushed[0].Message)
	assert.Equal(t, "shiftlog-user-1", notifier.pushed[0].Topic)
	assert.Equal(t, "Shift reminder", notifier.pushed[0].Title)
}

func TestDeleteEnforcesOwnership(t *testing.T) {
	svc := NewReminderService(newFakeReminderRepo(), &recordingNotifier{}, discardLogger())

	created, err := svc.Create(authedContext(t, "user-1"), reminder.CreateReminderRequest{
		Weekday: 5, ClockTime: "16:00", Message: "payday", Enabled: true,
	})
	require.NoError(t, err)

	err = svc.Delete(authedContext(t, "user-2"), created.ID)
	assert.ErrorIs(t, err, reminder.ErrReminderNotFound)

	require.NoError(t, svc.Delete(authedContext(t, "user-1"), created.ID))
}
