package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"todomaster/internal/domain"
	"todomaster/internal/repository"
)

// CreateTodoRequest holds the data needed to create a new todo. The owner
// comes from the session, never from the payload.
type CreateTodoRequest struct {
	Title string `json:"title" validate:"required"`
}

// UpdateTodoRequest holds the data for updating an existing todo. Pointers
// distinguish an omitted field from one set to its zero value.
type UpdateTodoRequest struct {
	Title     *string `json:"title"`
	Completed *bool   `json:"completed"`
}

// TodoPage is one page of a user's own todos.
type TodoPage struct {
	Todos       []TodoResponse `json:"todos"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
}

// TodoService manages a user's own todo items. Every operation is scoped to
// the owning user; a todo belonging to someone else behaves as if it did not
// exist.
type TodoService interface {
	CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error)
	ListTodos(ctx context.Context, userID string, page int) (*TodoPage, error)
	UpdateTodo(ctx context.Context, userID, id string, req UpdateTodoRequest) (*TodoResponse, error)
	DeleteTodo(ctx context.Context, userID, id string) error
}

type todoService struct {
	repo repository.TodoRepository
}

func NewTodoService(repo repository.TodoRepository) TodoService {
	return &todoService{repo: repo}
}

func (s *todoService) CreateTodo(ctx context.Context, userID string, req CreateTodoRequest) (*TodoResponse, error) {
	if err := validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidRequest)
	}

	newTodo := &domain.Todo{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		Completed: false,
	}
	if err := s.repo.Create(ctx, newTodo); err != nil {
		return nil, fmt.Errorf("creating todo: %w", err)
	}

	resp := newTodoResponse(newTodo)
	return &resp, nil
}

func (s *todoService) ListTodos(ctx context.Context, userID string, page int) (*TodoPage, error) {
	if page < 1 {
		page = 1
	}

	todos, err := s.repo.ListByUser(ctx, userID, ItemsPerPage, (page-1)*ItemsPerPage)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	total, err := s.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting todos: %w", err)
	}

	resp := &TodoPage{
		Todos:       make([]TodoResponse, 0, len(todos)),
		TotalPages:  totalPages(total),
		CurrentPage: page,
	}
	for i := range todos {
		resp.Todos = append(resp.Todos, newTodoResponse(&todos[i]))
	}
	return resp, nil
}

func (s *todoService) UpdateTodo(ctx context.Context, userID, id string, req UpdateTodoRequest) (*TodoResponse, error) {
	todo, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		todo.Title = *req.Title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("updating todo %s: %w", id, err)
	}

	resp := newTodoResponse(todo)
	return &resp, nil
}

func (s *todoService) DeleteTodo(ctx context.Context, userID, id string) error {
	if _, err := s.findOwned(ctx, userID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("deleting todo %s: %w", id, err)
	}
	return nil
}

func (s *todoService) findOwned(ctx context.Context, userID, id string) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("fetching todo %s: %w", id, err)
	}
	if todo.UserID != userID {
		return nil, ErrNotFound
	}
	return todo, nil
}
