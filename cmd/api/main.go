package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"

	"todomaster/internal/config"
	"todomaster/internal/database"
	"todomaster/internal/domain"
	"todomaster/internal/identity"
	"todomaster/internal/repository"
	"todomaster/internal/server"
	"todomaster/internal/service"
	"todomaster/internal/webhook"
)

func newLogger(cfg *config.Config) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}

	var out = zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	if !cfg.LogConsole {
		return zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func gracefulShutdown(apiServer *http.Server, dbService database.Service, log zerolog.Logger, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info().Msg("Shutting down gracefully, press Ctrl+C again to force")
	stop()

	// Give in-flight requests 5 seconds to finish.
	ctxTimeout, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	if dbService != nil {
		if err := dbService.Close(); err != nil {
			log.Error().Err(err).Msg("Error closing database connection pool")
		} else {
			log.Info().Msg("Database connection pool closed")
		}
	}

	done <- true
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}
	log := newLogger(cfg)

	dbService, err := database.New(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("connecting to database")
	}
	gormDB := dbService.GetDB()

	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Todo{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrating database schema")
	}

	userRepo := repository.NewGormUserRepository(gormDB)
	todoRepo := repository.NewGormTodoRepository(gormDB)

	todoService := service.NewTodoService(todoRepo)
	adminService := service.NewAdminService(userRepo, todoRepo)
	webhookService := service.NewWebhookService(userRepo, log)

	provider := identity.NewJWTProvider(cfg.SessionSecret)
	verifier, err := webhook.NewSvixVerifier(cfg.WebhookSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("initializing webhook verifier")
	}

	apiServer := server.NewServer(cfg, dbService, provider, verifier, todoService, adminService, webhookService, log)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, log, done)

	log.Info().Str("addr", apiServer.Addr).Msg("starting server")
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("HTTP server ListenAndServe error")
	}

	<-done
	log.Info().Msg("Graceful shutdown complete")
}
