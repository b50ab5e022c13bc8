package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	JWT          JWTConfig
	OAuth2Google OAuth2GoogleConfig
	Notify       NotifyConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret            string
	RefreshExpiration string
	AccessExpiration  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       string
	FrontendURL    string
	AllowedOrigins []string
}

type OAuth2GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scopes       []string
}

// NotifyConfig holds push notification gateway configuration. An empty
// GatewayURL disables delivery.
type NotifyConfig struct {
	GatewayURL string
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using environment")
	}

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "shiftlog"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:           appPort,
		Env:            getEnv("APP_ENV", "development"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: getEnvSlice("ALLOWED_ORIGINS", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		RefreshExpiration: getEnv("JWT_REFRESH_EXPIRATION_TIME", "168h"),
		AccessExpiration:  getEnv("JWT_ACCESS_EXPIRATION_TIME", "1h"),
	}

	// OAuth2 Google configuration
	config.OAuth2Google = OAuth2GoogleConfig{
		ClientID:     getEnv("CLIENT_ID", ""),
		ClientSecret: getEnv("CLIENT_SECRET", ""),
		RedirectURL:  getEnv("REDIRECT_URL", ""),
		Scopes:       getEnvSlice("SCOPES", "https://www.googleapis.com/auth/userinfo.email"),
	}

	// Push notification configuration
	config.Notify = NotifyConfig{
		GatewayURL: getEnv("PUSH_GATEWAY_URL", ""),
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration. Google sign-in is optional; its
// fields are only required together.
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	googleConfigured := c.OAuth2Google.ClientID != "" || c.OAuth2Google.ClientSecret != "" || c.OAuth2Google.RedirectURL != ""
	if googleConfigured {
		if c.OAuth2Google.ClientID == "" {
			return fmt.Errorf("CLIENT_ID is required when Google sign-in is configured")
		}
		if c.OAuth2Google.ClientSecret == "" {
			return fmt.Errorf("CLIENT_SECRET is required when Google sign-in is configured")
		}
		if c.OAuth2Google.RedirectURL == "" {
			return fmt.Errorf("REDIRECT_URL is required when Google sign-in is configured")
		}
	}

	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvSlice(env string, fallback string) []string {
	value := getEnv(env, fallback)
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
