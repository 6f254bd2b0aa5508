package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"todomaster/internal/config"
	"todomaster/internal/database"
	"todomaster/internal/identity"
	"todomaster/internal/service"
	"todomaster/internal/webhook"
)

type Server struct {
	port int

	db       database.Service
	identity identity.Provider
	verifier webhook.Verifier

	todoService    service.TodoService
	adminService   service.AdminService
	webhookService service.WebhookService

	log zerolog.Logger
}

func NewServer(
	cfg *config.Config,
	dbService database.Service,
	provider identity.Provider,
	verifier webhook.Verifier,
	todoService service.TodoService,
	adminService service.AdminService,
	webhookService service.WebhookService,
	log zerolog.Logger,
) *http.Server {
	appServer := &Server{
		port:           cfg.Port,
		db:             dbService,
		identity:       provider,
		verifier:       verifier,
		todoService:    todoService,
		adminService:   adminService,
		webhookService: webhookService,
		log:            log,
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", appServer.port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
