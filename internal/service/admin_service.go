package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"todomaster/internal/repository"
)

// subscriptionWindow is how long a subscription runs once enabled.
const subscriptionWindow = 30 * 24 * time.Hour

// UserTodosPage is the admin listing result. User is nil when no account
// matches the email; that is a successful empty result, not an error.
type UserTodosPage struct {
	User        *UserResponse `json:"user"`
	TotalPages  int           `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// AdminService exposes the role-gated operations over users and their todos.
// Role enforcement itself happens in the HTTP layer; these methods assume the
// caller has already been admitted.
type AdminService interface {
	// GetUserTodos looks a user up by exact email and returns one page of
	// their todos plus the page count.
	GetUserTodos(ctx context.Context, email string, page int) (*UserTodosPage, error)

	// SetTodoCompletion updates a todo's completed flag.
	SetTodoCompletion(ctx context.Context, todoID string, completed bool) (*TodoResponse, error)

	// SetSubscription enables or disables a user's subscription by email.
	SetSubscription(ctx context.Context, email string, subscribed bool) (*UserResponse, error)

	// DeleteTodo removes a todo outright.
	DeleteTodo(ctx context.Context, todoID string) error
}

type adminService struct {
	users repository.UserRepository
	todos repository.TodoRepository
	now   func() time.Time
}

func NewAdminService(users repository.UserRepository, todos repository.TodoRepository) AdminService {
	return &adminService{users: users, todos: todos, now: time.Now}
}

func (s *adminService) GetUserTodos(ctx context.Context, email string, page int) (*UserTodosPage, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}
	if page < 1 {
		page = 1
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &UserTodosPage{User: nil, TotalPages: 0, CurrentPage: 1}, nil
		}
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	todos, err := s.todos.ListByUser(ctx, user.ID, ItemsPerPage, (page-1)*ItemsPerPage)
	if err != nil {
		return nil, fmt.Errorf("listing todos for user %s: %w", user.ID, err)
	}

	// The count runs as a second statement, so a concurrent insert or delete
	// can skew TotalPages against the page just fetched. Accepted: the skew
	// is transient and never corrupts data.
	total, err := s.todos.CountByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("counting todos for user %s: %w", user.ID, err)
	}

	resp := newUserResponse(user)
	resp.Todos = make([]TodoResponse, 0, len(todos))
	for i := range todos {
		resp.Todos = append(resp.Todos, newTodoResponse(&todos[i]))
	}

	return &UserTodosPage{
		User:        &resp,
		TotalPages:  totalPages(total),
		CurrentPage: page,
	}, nil
}

func (s *adminService) SetTodoCompletion(ctx context.Context, todoID string, completed bool) (*TodoResponse, error) {
	todo, err := s.todos.FindByID(ctx, todoID)
	if err != nil {
		return nil, fmt.Errorf("fetching todo %s: %w", todoID, err)
	}

	todo.Completed = completed
	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", todoID, err)
	}

	resp := newTodoResponse(todo)
	return &resp, nil
}

func (s *adminService) SetSubscription(ctx context.Context, email string, subscribed bool) (*UserResponse, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrInvalidRequest)
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("looking up user by email: %w", err)
	}

	// Repeating the same mutation leaves the state untouched, so a retried
	// enable does not slide the subscription window forward.
	if user.IsSubscribed != subscribed {
		user.IsSubscribed = subscribed
		if subscribed {
			ends := s.now().Add(subscriptionWindow)
			user.SubscriptionEnds = &ends
		} else {
			user.SubscriptionEnds = nil
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("updating subscription for %s: %w", user.ID, err)
		}
	}

	resp := newUserResponse(user)
	return &resp, nil
}

func (s *adminService) DeleteTodo(ctx context.Context, todoID string) error {
	if err := s.todos.Delete(ctx, todoID); err != nil {
		return fmt.Errorf("deleting todo %s: %w", todoID, err)
	}
	return nil
}
