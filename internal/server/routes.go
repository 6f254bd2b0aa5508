package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	zlog "github.com/rs/zerolog/log"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(s.accessGate)

	// Page routes exist only as landing targets for the access gate; the
	// actual UI is served elsewhere.
	r.Get("/", s.pageHandler("Todo Master"))
	r.Get("/sign-in", s.pageHandler("Sign in"))
	r.Get("/sign-up", s.pageHandler("Sign up"))
	r.Get("/dashboard", s.pageHandler("Dashboard"))
	r.Get("/forum", s.pageHandler("Forum"))
	r.Get("/admin/dashboard", s.pageHandler("Admin dashboard"))
	r.Get("/error", s.pageHandler("Something went wrong"))

	r.Get("/health", s.healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Post("/webhook/register", s.webhookHandler)

		r.Route("/todos", func(r chi.Router) {
			r.Use(s.withSession)
			r.Use(requireAuth)
			r.Post("/", s.createTodoHandler)
			r.Get("/", s.listTodosHandler)
			r.Put("/{id}", s.updateTodoHandler)
			r.Delete("/{id}", s.deleteTodoHandler)
		})

		r.Route("/admin/todos", func(r chi.Router) {
			r.Use(s.withSession)
			r.Use(requireAdmin)
			r.Get("/", s.adminGetUserTodosHandler)
			r.Put("/", s.adminUpdateHandler)
			r.Delete("/", s.adminDeleteTodoHandler)
		})
	})

	return r
}

func (s *Server) pageHandler(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"page": title})
	}
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	healthStats := s.db.Health()
	if status, ok := healthStats["status"]; ok && status == "down" {
		respondWithJSON(w, http.StatusServiceUnavailable, healthStats)
		return
	}
	respondWithJSON(w, http.StatusOK, healthStats)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		zlog.Error().Err(err).Msg("marshaling JSON response")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"Internal server error preparing response"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}
