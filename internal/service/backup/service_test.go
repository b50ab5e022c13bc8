package backup

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
)

// fakeBackupRepo keeps snapshots in memory, stamping CreatedAt the way the
// real repository lets the database do it.
type fakeBackupRepo struct {
	backups map[string]backup.Backup
	clock   func() time.Time
}

func newFakeBackupRepo() *fakeBackupRepo {
	return &fakeBackupRepo{backups: make(map[string]backup.Backup), clock: time.Now}
}

func (f *fakeBackupRepo) Create(ctx context.Context, b backup.Backup) (backup.Backup, error) {
	b.CreatedAt = f.clock()
	f.backups[b.ID] = b
	return b, nil
}

func (f *fakeBackupRepo) GetByID(ctx context.Context, id string, userID string) (backup.Backup, error) {
	b, ok := f.backups[id]
	if !ok || b.UserID != userID {
		return backup.Backup{}, backup.ErrBackupNotFound
	}
	return b, nil
}

func (f *fakeBackupRepo) GetLatest(ctx context.Context, userID string) (backup.Backup, error) {
	list, _ := f.ListByUser(ctx, userID)
	if len(list) == 0 {
		return backup.Backup{}, backup.ErrBackupNotFound
	}
	return list[0], nil
}

func (f *fakeBackupRepo) ListByUser(ctx context.Context, userID string) ([]backup.Backup, error) {
	var out []backup.Backup
	for _, b := range f.backups {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeBackupRepo) Delete(ctx context.Context, id string, userID string) error {
	b, ok := f.backups[id]
	if !ok || b.UserID != userID {
		return backup.ErrBackupNotFound
	}
	delete(f.backups, id)
	return nil
}

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

type backupFixture struct {
	svc          *BackupServiceImpl
	backupRepo   *fakeBackupRepo
	shiftRepo    *fakeShiftRepo
	settingsRepo *fakeSettingsRepo
}

func newBackupFixture() backupFixture {
	backupRepo := newFakeBackupRepo()
	shiftRepo := newFakeShiftRepo()
	settingsRepo := newFakeSettingsRepo()

	svc := NewBackupService(nil, backupRepo, shiftRepo, settingsRepo).(*BackupServiceImpl)
	svc.runTx = func(ctx context.Context, fn func(tx pgx.Tx) error) error {
		return fn(nil)
	}

	return backupFixture{svc: svc, backupRepo: backupRepo, shiftRepo: shiftRepo, settingsRepo: settingsRepo}
}

func seedShift(t *testing.T, repo *fakeShiftRepo, id, userID, date string, hours float64) {
	t.Helper()
	d, err := time.ParseInLocation("2006-01-02", date, time.Local)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), shift.Shift{
		ID: id, UserID: userID, Date: d,
		StartTime: "09:00", EndTime: "17:00",
		Hours: hours, Advance: decimal.Zero,
	})
	require.NoError(t, err)
}

func TestCreateSnapshotsCurrentData(t *testing.T) {
	f := newBackupFixture()
	ctx := authedContext(t, "user-1")

	seedShift(t, f.shiftRepo, "s1", "user-1", "2025-03-03", 8)
	seedShift(t, f.shiftRepo, "s2", "user-1", "2025-03-04", 7.5)
	seedShift(t, f.shiftRepo, "other", "user-2", "2025-03-04", 4)

	userSettings := settings.Defaults("user-1")
	userSettings.HourlyRate = decimal.NewFromInt(200)
	_, err := f.settingsRepo.Upsert(context.Background(), userSettings)
	require.NoError(t, err)

	created, err := f.svc.Create(ctx, backup.CreateBackupRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Manual backup", created.Name, "empty name falls back to the default")

	detail, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, detail.Data.Shifts, 2, "only the user's own shifts are frozen")
	assert.True(t, detail.Data.HourlyRate.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, int(time.Friday), detail.Data.PaymentDay)
	assert.Equal(t, "1.0", detail.Data.Version)
	assert.NotZero(t, detail.Data.Timestamp)
}

func TestCreateWithoutStoredSettingsUsesDefaults(t *testing.T) {
	f := newBackupFixture()
	ctx := authedContext(t, "user-1")

	created, err := f.svc.Create(ctx, backup.CreateBackupRequest{Name: "before reset"})
	require.NoError(t, err)
	assert.Equal(t, "before reset", created.Name)

	detail, err := f.svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, detail.Data.HourlyRate.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, int(time.Monday), detail.Data.WeekStartDay)
	assert.True(t, detail.Data.SoundEnabled)
}

func TestAutoBackupAtMostOncePerDay(t *testing.T) {
	f := newBackupFixture()

	first, err := f.svc.AutoBackup(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Contains(t, first.Name, "Auto backup ")

	second, err := f.svc.AutoBackup(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "same-day call returns the existing snapshot")
	assert.Len(t, f.backupRepo.backups, 1)
}

func TestAutoBackupCreatesAfterYesterdays(t *testing.T) {
	f := newBackupFixture()

	// Seed yesterday's snapshot directly.
	f.backupRepo.backups["old"] = backup.Backup{
		ID: "old", UserID: "user-1", Name: "Auto backup",
		CreatedAt: time.Now().AddDate(0, 0, -1),
	}

	created, err := f.svc.AutoBackup(context.Background(), "user-1")
	require.NoError(t, err)
	assert.NotEqual(t, "old", created.ID)
	assert.Len(t, f.backupRepo.backups, 2)
}

func TestRestoreReplacesShiftsAndSettings(t *testing.T) {
	f := newBackupFixture()
	ctx := authedContext(t, "user-1")

	seedShift(t, f.shiftRepo, "s1", "user-1", "2025-03-03", 8)
	userSettings := settings.Defaults("user-1")
	userSettings.PaymentDay = time.Thursday
	_, err := f.settingsRepo.Upsert(context.Background(), userSettings)
	require.NoError(t, err)

	created, err := f.svc.Create(ctx, backup.CreateBackupRequest{})
	require.NoError(t, err)

	// Live data drifts after the snapshot.
	seedShift(t, f.shiftRepo, "s2", "user-1", "2025-03-10", 6)
	userSettings.PaymentDay = time.Saturday
	_, err = f.settingsRepo.Upsert(context.Background(), userSettings)
	require.NoError(t, err)

	require.NoError(t, f.svc.Restore(ctx, created.ID))

	shifts, err := f.shiftRepo.ListByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "s1", shifts[0].ID)
	assert.Equal(t, "2025-03-03", shifts[0].Date.Format("2006-01-02"))

	restored, err := f.settingsRepo.Get(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, time.Thursday, restored.PaymentDay)
}

func TestRestoreEnforcesOwnership(t *testing.T) {
	f := newBackupFixture()

	created, err := f.svc.Create(authedContext(t, "user-1"), backup.CreateBackupRequest{})
	require.NoError(t, err)

	err = f.svc.Restore(authedContext(t, "user-2"), created.ID)
	assert.ErrorIs(t, err, backup.ErrBackupNotFound)

	err = f.svc.Restore(authedContext(t, "user-1"), "missing")
	assert.ErrorIs(t, err, backup.ErrBackupNotFound)
}

func TestListAndDelete(t *testing.T) {
	f := newBackupFixture()
	ctx := authedContext(t, "user-1")

	first, err := f.svc.Create(ctx, backup.CreateBackupRequest{Name: "one"})
	require.NoError(t, err)
	_, err = f.svc.Create(ctx, backup.CreateBackupRequest{Name: "two"})
	require.NoError(t, err)

	list, err := f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Backups, 2)

	require.NoError(t, f.svc.Delete(ctx, first.ID))
	list, err = f.svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list.Backups, 1)

	err = f.svc.Delete(authedContext(t, "user-2"), list.Backups[0].ID)
	assert.ErrorIs(t, err, backup.ErrBackupNotFound)
}
