package server

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"todomaster/internal/identity"
	"todomaster/internal/service"
)

// fakeProvider resolves sessions from a fixed token table. Unknown tokens
// behave like expired ones; err forces a resolution failure.
type fakeProvider struct {
	sessions map[string]*identity.Session
	err      error
}

func (f *fakeProvider) VerifySession(ctx context.Context, token string) (*identity.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	if sess, ok := f.sessions[token]; ok {
		return sess, nil
	}
	return nil, identity.ErrInvalidSession
}

type fakeVerifier struct {
	err error
}

func (f *fakeVerifier) Verify(payload []byte, headers http.Header) error {
	return f.err
}

type mockAdminService struct {
	GetUserTodosFn      func(ctx context.Context, email string, page int) (*service.UserTodosPage, error)
	SetTodoCompletionFn func(ctx context.Context, todoID string, completed bool) (*service.TodoResponse, error)
	SetSubscriptionFn   func(ctx context.Context, email string, subscribed bool) (*service.UserResponse, error)
	DeleteTodoFn        func(ctx context.Context, todoID string) error
}

func (m *mockAdminService) GetUserTodos(ctx context.Context, email string, page int) (*service.UserTodosPage, error) {
	return m.GetUserTodosFn(ctx, email, page)
}

func (m *mockAdminService) SetTodoCompletion(ctx context.Context, todoID string, completed bool) (*service.TodoResponse, error) {
	return m.SetTodoCompletionFn(ctx, todoID, completed)
}

func (m *mockAdminService) SetSubscription(ctx context.Context, email string, subscribed bool) (*service.UserResponse, error) {
	return m.SetSubscriptionFn(ctx, email, subscribed)
}

func (m *mockAdminService) DeleteTodo(ctx context.Context, todoID string) error {
	return m.DeleteTodoFn(ctx, todoID)
}

type mockTodoService struct {
	CreateTodoFn func(ctx context.Context, userID string, req service.CreateTodoRequest) (*service.TodoResponse, error)
	ListTodosFn  func(ctx context.Context, userID string, page int) (*service.TodoPage, error)
	UpdateTodoFn func(ctx context.Context, userID, id string, req service.UpdateTodoRequest) (*service.TodoResponse, error)
	DeleteTodoFn func(ctx context.Context, userID, id string) error
}

func (m *mockTodoService) CreateTodo(ctx context.Context, userID string, req service.CreateTodoRequest) (*service.TodoResponse, error) {
	return m.CreateTodoFn(ctx, userID, req)
}

func (m *mockTodoService) ListTodos(ctx context.Context, userID string, page int) (*service.TodoPage, error) {
	return m.ListTodosFn(ctx, userID, page)
}

func (m *mockTodoService) UpdateTodo(ctx context.Context, userID, id string, req service.UpdateTodoRequest) (*service.TodoResponse, error) {
	return m.UpdateTodoFn(ctx, userID, id, req)
}

func (m *mockTodoService) DeleteTodo(ctx context.Context, userID, id string) error {
	return m.DeleteTodoFn(ctx, userID, id)
}

type mockWebhookService struct {
	ProcessEventFn func(ctx context.Context, evt service.WebhookEvent) error
}

func (m *mockWebhookService) ProcessEvent(ctx context.Context, evt service.WebhookEvent) error {
	return m.ProcessEventFn(ctx, evt)
}

// defaultSessions gives every handler test the same two callers.
func defaultSessions() map[string]*identity.Session {
	return map[string]*identity.Session{
		"admin-token": {UserID: "admin_1", Email: "admin@example.com", Role: identity.RoleAdmin},
		"user-token":  {UserID: "user_1", Email: "jane@example.com", Role: identity.RoleMember},
	}
}

func newTestServer(s *Server) http.Handler {
	if s.identity == nil {
		s.identity = &fakeProvider{sessions: defaultSessions()}
	}
	if s.verifier == nil {
		s.verifier = &fakeVerifier{}
	}
	s.log = zerolog.Nop()
	return s.RegisterRoutes()
}
