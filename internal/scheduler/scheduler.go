package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/backup"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/reminder"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/domain/user"
)

// Scheduler drives the background jobs: reminder delivery every minute and a
// nightly snapshot of every account.
type Scheduler struct {
	cron            *cron.Cron
	reminderService reminder.ReminderService
	backupService   backup.BackupService
	userRepo        user.UserRepository
	logger          *slog.Logger
}

func NewScheduler(
	reminderService reminder.ReminderService,
	backupService backup.BackupService,
	userRepo user.UserRepository,
	logger *slog.Logger,
) *Scheduler {
	return &Scheduler{
		cron:            cron.New(),
		reminderService: reminderService,
		backupService:   backupService,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// Start registers the jobs and begins running them in the background.
func (s *Scheduler) Start() error {
	// Reminders fire on minute boundaries; ListDue matches "HH:MM".
	if _, err := s.cron.AddFunc("* * * * *", s.fireReminders); err != nil {
		return err
	}

	// Nightly backups at 03:00 server time, when writes are unlikely.
	if _, err := s.cron.AddFunc("0 3 * * *", s.backupAllUsers); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started")
	return nil
}

// Stop halts the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) fireReminders() {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Second)
	defer cancel()

	if err := s.reminderService.FireDue(ctx); err != nil {
		s.logger.Error("reminder job failed", slog.Any("error", err))
	}
}

func (s *Scheduler) backupAllUsers() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	ids, err := s.userRepo.ListIDs(ctx)
	if err != nil {
		s.logger.Error("backup job failed to list users", slog.Any("error", err))
		return
	}

	for _, id := range ids {
		if _, err := s.backupService.AutoBackup(ctx, id); err != nil {
			s.logger.Error("automatic backup failed",
				slog.String("user_id", id),
				slog.Any("error", err),
			)
		}
	}

	s.logger.Info("automatic backups finished", slog.Int("users", len(ids)))
}
