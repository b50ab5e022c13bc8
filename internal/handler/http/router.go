package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/shiftlog-app/shiftlog-backend-go/internal/handler/http/middleware"
	"github.com/shiftlog-app/shiftlog-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	AllowedOrigins []string
	Environment    string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	authHandler AuthHandler,
	shiftHandler ShiftHandler,
	statsHandler StatsHandler,
	settingsHandler SettingsHandler,
	backupHandler BackupHandler,
	reminderHandler ReminderHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shiftlog"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Environment),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Delete("/", shiftHandler.Clear)
				r.Get("/export", shiftHandler.Export)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", shiftHandler.Get)
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
				})
			})

			r.Get("/stats", statsHandler.GetStats)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", settingsHandler.Get)
				r.Put("/", settingsHandler.Update)
			})

			r.Route("/backups", func(r chi.Router) {
				r.Get("/", backupHandler.List)
				r.Post("/", backupHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", backupHandler.Get)
					r.Post("/restore", backupHandler.Restore)
					r.Delete("/", backupHandler.Delete)
				})
			})

			r.Route("/reminders", func(r chi.Router) {
				r.Get("/", reminderHandler.List)
				r.Post("/", reminderHandler.Create)

				r.Route("/{id}", func(r chi.Router) {
					r.Put("/", reminderHandler.Update)
					r.Delete("/", reminderHandler.Delete)
				})
			})
		})
	})
	return r
}
