package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"todomaster/internal/service"
)

// adminUpdateRequest is the discriminated payload of the admin PUT endpoint:
// either a todo completion update ({todoId, todoCompleted}) or a
// subscription update ({email, isSubscribed}). Pointers tell an omitted
// field apart from a zero value.
type adminUpdateRequest struct {
	Email         *string `json:"email"`
	TodoID        *string `json:"todoId"`
	TodoCompleted *bool   `json:"todoCompleted"`
	IsSubscribed  *bool   `json:"isSubscribed"`
}

type adminDeleteRequest struct {
	TodoID string `json:"todoId"`
}

func (s *Server) adminGetUserTodosHandler(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}

	result, err := s.adminService.GetUserTodos(r.Context(), email, page)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			respondWithError(w, http.StatusBadRequest, "Email is required")
			return
		}
		s.log.Error().Err(err).Str("email", email).Msg("fetching user todos")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

func (s *Server) adminUpdateHandler(w http.ResponseWriter, r *http.Request) {
	var req adminUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	switch {
	case req.TodoID != nil && req.TodoCompleted != nil:
		todo, err := s.adminService.SetTodoCompletion(r.Context(), *req.TodoID, *req.TodoCompleted)
		if err != nil {
			s.log.Error().Err(err).Str("todo_id", *req.TodoID).Msg("updating todo completion")
			respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		respondWithJSON(w, http.StatusOK, todo)

	case req.IsSubscribed != nil:
		email := ""
		if req.Email != nil {
			email = *req.Email
		}
		user, err := s.adminService.SetSubscription(r.Context(), email, *req.IsSubscribed)
		if err != nil {
			if errors.Is(err, service.ErrInvalidRequest) {
				respondWithError(w, http.StatusBadRequest, "Email is required")
				return
			}
			s.log.Error().Err(err).Str("email", email).Msg("updating subscription")
			respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
			return
		}
		respondWithJSON(w, http.StatusOK, user)

	default:
		respondWithError(w, http.StatusBadRequest, "Invalid request")
	}
}

func (s *Server) adminDeleteTodoHandler(w http.ResponseWriter, r *http.Request) {
	var req adminDeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TodoID == "" {
		respondWithError(w, http.StatusBadRequest, "Invalid request")
		return
	}

	if err := s.adminService.DeleteTodo(r.Context(), req.TodoID); err != nil {
		s.log.Error().Err(err).Str("todo_id", req.TodoID).Msg("deleting todo")
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"message": "Todo deleted successfully"})
}
