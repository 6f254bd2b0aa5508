package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	_ "github.com/joho/godotenv/autoload"
)

// Config carries everything read from the environment at process start.
// Secrets are validated here so a missing webhook or session secret fails
// the boot, not the first request that needs it.
type Config struct {
	Port          int
	DatabaseURL   string
	WebhookSecret string
	SessionSecret string
	LogLevel      string
	LogConsole    bool
}

func Load() (*Config, error) {
	port := 8080
	if portStr := os.Getenv("PORT"); portStr != "" {
		p, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
		}
		port = p
	}

	cfg := &Config{
		Port:          port,
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		WebhookSecret: os.Getenv("WEBHOOK_SECRET"),
		SessionSecret: os.Getenv("SESSION_JWT_SECRET"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogConsole:    os.Getenv("LOG_FORMAT") == "console",
	}

	if cfg.DatabaseURL == "" {
		// Fall back to discrete DB_* variables so local setups without a
		// single URL keep working.
		cfg.DatabaseURL = fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
			envOr("DB_HOST", "localhost"),
			envOr("DB_USERNAME", "postgres"),
			os.Getenv("DB_PASSWORD"),
			envOr("DB_DATABASE", "todomaster"),
			envOr("DB_PORT", "5432"),
		)
	}

	if cfg.WebhookSecret == "" {
		return nil, errors.New("WEBHOOK_SECRET is not set")
	}
	if cfg.SessionSecret == "" {
		return nil, errors.New("SESSION_JWT_SECRET is not set")
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
