package shift

import (
	"context"
	"sort"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
)

// fakeShiftRepo keeps shifts in memory, listing newest date first like the
// real repository does.
type fakeShiftRepo struct {
	shifts map[string]shift.Shift
}

func newFakeShiftRepo() *fakeShiftRepo {
	return &fakeShiftRepo{shifts: make(map[string]shift.Shift)}
}

func (f *fakeShiftRepo) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) GetByID(ctx context.Context, id string, userID string) (shift.Shift, error) {
	s, ok := f.shifts[id]
	if !ok || s.UserID != userID {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	return s, nil
}

func (f *fakeShiftRepo) ListByUser(ctx context.Context, userID string) ([]shift.Shift, error) {
	var out []shift.Shift
	for _, s := range f.shifts {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

func (f *fakeShiftRepo) Update(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	if _, ok := f.shifts[s.ID]; !ok {
		return shift.Shift{}, shift.ErrShiftNotFound
	}
	f.shifts[s.ID] = s
	return s, nil
}

func (f *fakeShiftRepo) Delete(ctx context.Context, id string, userID string) error {
	s, ok := f.shifts[id]
	if !ok || s.UserID != userID {
		return shift.ErrShiftNotFound
	}
	delete(f.shifts, id)
	return nil
}

func (f *fakeShiftRepo) DeleteAllByUser(ctx context.Context, userID string) error {
	for id, s := range f.shifts {
		if s.UserID == userID {
			delete(f.shifts, id)
		}
	}
	return nil
}

func (f *fakeShiftRepo) ReplaceAllForUser(ctx context.Context, userID string, shifts []shift.Shift) error {
	if err := f.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	for _, s := range shifts {
		f.shifts[s.ID] = s
	}
	return nil
}

// fakeSettingsRepo returns ErrSettingsNotFound until something is stored.
type fakeSettingsRepo struct {
	stored map[string]settings.Settings
}

func newFakeSettingsRepo() *fakeSettingsRepo {
	return &fakeSettingsRepo{stored: make(map[string]settings.Settings)}
}

func (f *fakeSettingsRepo) Get(ctx context.Context, userID string) (settings.Settings, error) {
	s, ok := f.stored[userID]
	if !ok {
		return settings.Settings{}, settings.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeSettingsRepo) Upsert(ctx context.Context, s settings.Settings) (settings.Settings, error) {
	f.stored[s.UserID] = s
	return s, nil
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

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateDerivesHours(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "2025-03-03",
		StartTime: "07:00",
		EndTime:   "14:30",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2025-03-03", created.Date)
	assert.Equal(t, 7.5, created.Hours)
	assert.False(t, created.IsAdvance)
	assert.True(t, created.Advance.IsZero())
}

func TestCreateOvernightShift(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "2025-03-03",
		StartTime: "22:00",
		EndTime:   "06:00",
	})
	require.NoError(t, err)
	assert.Equal(t, 8.0, created.Hours)
}

func TestCreatePureAdvanceHasZeroHours(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "2025-03-04",
		Advance:   dec("500"),
		IsAdvance: true,
	})
	require.NoError(t, err)

	assert.True(t, created.IsAdvance)
	assert.Equal(t, 0.0, created.Hours)
	assert.True(t, created.Advance.Equal(decimal.NewFromInt(500)))
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	_, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "03/03/2025",
		StartTime: "07:00",
		EndTime:   "14:30",
	})
	assert.Error(t, err)

	_, err = svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "2025-03-04",
		IsAdvance: true,
	})
	assert.Error(t, err, "pure advance without an amount must be rejected")
}

func TestGetEnforcesOwnership(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, newFakeSettingsRepo())

	created, err := svc.Create(authedContext(t, "user-1"), shift.CreateShiftRequest{
		Date:      "2025-03-03",
		StartTime: "08:00",
		EndTime:   "16:00",
	})
	require.NoError(t, err)

	_, err = svc.Get(authedContext(t, "user-2"), created.ID)
	assert.ErrorIs(t, err, shift.ErrShiftNotFound)

	found, err := svc.Get(authedContext(t, "user-1"), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
}

func TestListMarksWeekBoundaries(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	// Two shifts in the week of Mon 2025-03-03 and one the week before.
	for _, date := range []string{"2025-02-28", "2025-03-03", "2025-03-05"} {
		_, err := svc.Create(ctx, shift.CreateShiftRequest{
			Date:      date,
			StartTime: "09:00",
			EndTime:   "17:00",
		})
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list.Shifts, 3)

	// Newest first: 03-05 opens its week, 03-03 is the same week,
	// 02-28 opens the previous week.
	assert.Equal(t, "2025-03-05", list.Shifts[0].Date)
	assert.True(t, list.Shifts[0].IsNewWeek)
	assert.Equal(t, "2025-03-03", list.Shifts[1].Date)
	assert.False(t, list.Shifts[1].IsNewWeek)
	assert.Equal(t, "2025-02-28", list.Shifts[2].Date)
	assert.True(t, list.Shifts[2].IsNewWeek)
}

func TestUpdateReplacesFields(t *testing.T) {
	svc := NewShiftService(newFakeShiftRepo(), newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	created, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date:      "2025-03-03",
		StartTime: "09:00",
		EndTime:   "17:00",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, shift.UpdateShiftRequest{
		CreateShiftRequest: shift.CreateShiftRequest{
			Date:      "2025-03-04",
			StartTime: "07:00",
			EndTime:   "14:30",
			Advance:   dec("200"),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "2025-03-04", updated.Date)
	assert.Equal(t, 7.5, updated.Hours)
	assert.True(t, updated.Advance.Equal(decimal.NewFromInt(200)))
}

func TestDeleteAndClear(t *testing.T) {
	repo := newFakeShiftRepo()
	svc := NewShiftService(repo, newFakeSettingsRepo())
	ctx := authedContext(t, "user-1")

	first, err := svc.Create(ctx, shift.CreateShiftRequest{
		Date: "2025-03-03", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, shift.CreateShiftRequest{
		Date: "2025-03-04", StartTime: "09:00", EndTime: "17:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, first.ID))
	list, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Shifts, 1)

	require.NoError(t, svc.Clear(ctx))
	list, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list.Shifts)
}
