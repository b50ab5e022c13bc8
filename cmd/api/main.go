package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/config"
	appHTTP "github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/database"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/jwt"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/notify"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/oauth"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/repository/postgresql"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/scheduler"
	serviceAuth "github.com/shiftlog-app/shiftlog-backend-go/internal/service/auth"
	serviceBackup "github.com/shiftlog-app/shiftlog-backend-go/internal/service/backup"
	serviceExport "github.com/shiftlog-app/shiftlog-backend-go/internal/service/export"
	serviceReminder "github.com/shiftlog-app/shiftlog-backend-go/internal/service/reminder"
	serviceSettings "github.com/shiftlog-app/shiftlog-backend-go/internal/service/settings"
	serviceShift "github.com/shiftlog-app/shiftlog-backend-go/internal/service/shift"
	serviceStats "github.com/shiftlog-app/shiftlog-backend-go/internal/service/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	backupRepo := postgresql.NewBackupRepository(db)
	reminderRepo := postgresql.NewReminderRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	var pushClient notify.Client = notify.NopClient{}
	if cfg.Notify.GatewayURL != "" {
		pushClient = notify.NewHTTPClient(cfg.Notify.GatewayURL)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "shiftlog"),
	)

	authService := serviceAuth.NewAuthService(db, userRepo, refreshTokenRepo, jwtService)
	shiftService := serviceShift.NewShiftService(shiftRepo, settingsRepo)
	settingsService := serviceSettings.NewSettingsService(settingsRepo)
	statsService := serviceStats.NewStatsService(shiftRepo, settingsRepo)
	exportService := serviceExport.NewExportService(shiftRepo, settingsRepo)
	backupService := serviceBackup.NewBackupService(db, backupRepo, shiftRepo, settingsRepo)
	reminderService := serviceReminder.NewReminderService(reminderRepo, pushClient, logger)

	authHandler := appHTTP.NewAuthHandler(jwtService, authService, googleService, cfg.App.FrontendURL)
	shiftHandler := appHTTP.NewShiftHandler(shiftService, exportService)
	statsHandler := appHTTP.NewStatsHandler(statsService)
	settingsHandler := appHTTP.NewSettingsHandler(settingsService)
	backupHandler := appHTTP.NewBackupHandler(backupService)
	reminderHandler := appHTTP.NewReminderHandler(reminderService)

	jobs := scheduler.NewScheduler(reminderService, backupService, userRepo, logger)
	if err := jobs.Start(); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer jobs.Stop()

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Environment:    cfg.App.Env,
		},
		jwtService,
		authHandler,
		shiftHandler,
		statsHandler,
		settingsHandler,
		backupHandler,
		reminderHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
