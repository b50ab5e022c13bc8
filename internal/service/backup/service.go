package backup

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/settings"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/shift"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/repository/postgresql"
)

// snapshotVersion tags payloads so restore can reject shapes it no longer
// understands.
const snapshotVersion = "1.0"

const defaultBackupName = "Manual backup"

type BackupServiceImpl struct {
	db           *database.DB
	backupRepo   backup.BackupRepository
	shiftRepo    shift.ShiftRepository
	settingsRepo settings.SettingsRepository

	// now and runTx are swappable in tests
	now   func() time.Time
	runTx func(ctx context.Context, fn func(tx pgx.Tx) error) error
}

func NewBackupService(
	db *database.DB,
	backupRepo backup.BackupRepository,
	shiftRepo shift.ShiftRepository,
	settingsRepo settings.SettingsRepository,
) backup.BackupService {
	return &BackupServiceImpl{
		db:           db,
		backupRepo:   backupRepo,
		shiftRepo:    shiftRepo,
		settingsRepo: settingsRepo,
		now:          time.Now,
		runTx: func(ctx context.Context, fn func(tx pgx.Tx) error) error {
			return postgresql.WithTransaction(ctx, db, fn)
		},
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

// Create implements backup.BackupService.
func (s *BackupServiceImpl) Create(ctx context.Context, req backup.CreateBackupRequest) (backup.BackupResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return backup.BackupResponse{}, err
	}

	name := req.Name
	if name == "" {
		name = defaultBackupName
	}

	return s.createForUser(ctx, userID, name)
}

// AutoBackup implements backup.BackupService. At most one automatic snapshot
// per calendar day; a second call the same day returns the existing one.
func (s *BackupServiceImpl) AutoBackup(ctx context.Context, userID string) (backup.BackupResponse, error) {
	latest, err := s.backupRepo.GetLatest(ctx, userID)
	if err != nil && err != backup.ErrBackupNotFound {
		return backup.BackupResponse{}, err
	}
	if err == nil {
		y1, m1, d1 := latest.CreatedAt.Date()
		y2, m2, d2 := s.now().Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			return toResponse(latest), nil
		}
	}

	return s.createForUser(ctx, userID, "Auto backup "+s.now().Format("2006-01-02"))
}

func (s *BackupServiceImpl) createForUser(ctx context.Context, userID, name string) (backup.BackupResponse, error) {
	data, err := s.buildSnapshot(ctx, userID)
	if err != nil {
		return backup.BackupResponse{}, err
	}

	created, err := s.backupRepo.Create(ctx, backup.Backup{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Data:   data,
	})
	if err != nil {
		return backup.BackupResponse{}, err
	}

	return toResponse(created), nil
}

func (s *BackupServiceImpl) buildSnapshot(ctx context.Context, userID string) (backup.BackupData, error) {
	shifts, err := s.shiftRepo.ListByUser(ctx, userID)
	if err != nil {
		return backup.BackupData{}, fmt.Errorf("failed to snapshot shifts: %w", err)
	}

	userSettings, err := s.settingsRepo.Get(ctx, userID)
	if err != nil {
		if err != settings.ErrSettingsNotFound {
			return backup.BackupData{}, fmt.Errorf("failed to snapshot settings: %w", err)
		}
		userSettings = settings.Defaults(userID)
	}

	frozen := make([]backup.BackupShift, 0, len(shifts))
	for _, sh := range shifts {
		frozen = append(frozen, backup.BackupShift{
			ID:        sh.ID,
			Date:      sh.Date.Format("2006-01-02"),
			StartTime: sh.StartTime,
			EndTime:   sh.EndTime,
			Hours:     sh.Hours,
			Notes:     sh.Notes,
			Advance:   sh.Advance,
			IsAdvance: sh.IsAdvance,
		})
	}

	return backup.BackupData{
		Shifts:       frozen,
		HourlyRate:   userSettings.HourlyRate,
		PaymentDay:   int(userSettings.PaymentDay),
		WeekStartDay: int(userSettings.WeekStartDay),
		SoundEnabled: userSettings.SoundEnabled,
		Version:      snapshotVersion,
		Timestamp:    s.now().UnixMilli(),
	}, nil
}

// List implements backup.BackupService.
func (s *BackupServiceImpl) List(ctx context.Context) (backup.ListBackupsResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return backup.ListBackupsResponse{}, err
	}

	backups, err := s.backupRepo.ListByUser(ctx, userID)
	if err != nil {
		return backup.ListBackupsResponse{}, err
	}

	responses := make([]backup.BackupResponse, 0, len(backups))
	for _, b := range backups {
		responses = append(responses, toResponse(b))
	}

	return backup.ListBackupsResponse{Backups: responses}, nil
}

// Get implements backup.BackupService.
func (s *BackupServiceImpl) Get(ctx context.Context, id string) (backup.BackupDetailResponse, error) {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return backup.BackupDetailResponse{}, err
	}

	found, err := s.backupRepo.GetByID(ctx, id, userID)
	if err != nil {
		return backup.BackupDetailResponse{}, err
	}

	return backup.BackupDetailResponse{
		BackupResponse: toResponse(found),
		Data:           found.Data,
	}, nil
}

// Restore implements backup.BackupService. Shifts and settings are replaced
// in one transaction so a failed restore leaves the live data untouched.
func (s *BackupServiceImpl) Restore(ctx context.Context, id string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	snapshot, err := s.backupRepo.GetByID(ctx, id, userID)
	if err != nil {
		return err
	}

	shifts := make([]shift.Shift, 0, len(snapshot.Data.Shifts))
	for _, fs := range snapshot.Data.Shifts {
		date, err := time.ParseInLocation("2006-01-02", fs.Date, time.Local)
		if err != nil {
			return fmt.Errorf("backup payload has invalid date %q: %w", fs.Date, err)
		}

		shiftID := fs.ID
		if shiftID == "" {
			shiftID = uuid.NewString()
		}

		shifts = append(shifts, shift.Shift{
			ID:        shiftID,
			UserID:    userID,
			Date:      date,
			StartTime: fs.StartTime,
			EndTime:   fs.EndTime,
			Hours:     fs.Hours,
			Notes:     fs.Notes,
			Advance:   fs.Advance,
			IsAdvance: fs.IsAdvance,
		})
	}

	restored := settings.Settings{
		UserID:       userID,
		HourlyRate:   snapshot.Data.HourlyRate,
		PaymentDay:   time.Weekday(snapshot.Data.PaymentDay),
		WeekStartDay: time.Weekday(snapshot.Data.WeekStartDay),
		SoundEnabled: snapshot.Data.SoundEnabled,
	}

	return s.runTx(ctx, func(tx pgx.Tx) error {
		txCtx := context.WithValue(ctx, "tx", tx)

		if err := s.shiftRepo.ReplaceAllForUser(txCtx, userID, shifts); err != nil {
			return fmt.Errorf("failed to restore shifts: %w", err)
		}

		if _, err := s.settingsRepo.Upsert(txCtx, restored); err != nil {
			return fmt.Errorf("failed to restore settings: %w", err)
		}

		return nil
	})
}

// Delete implements backup.BackupService.
func (s *BackupServiceImpl) Delete(ctx context.Context, id string) error {
	userID, err := getUserIDFromContext(ctx)
	if err != nil {
		return err
	}

	return s.backupRepo.Delete(ctx, id, userID)
}

func toResponse(b backup.Backup) backup.BackupResponse {
	return backup.BackupResponse{
		ID:        b.ID,
		Name:      b.Name,
		CreatedAt: b.CreatedAt,
	}
}
