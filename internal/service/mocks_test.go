package service

import (
	"context"

	"todomaster/internal/domain"
)

// Function-field mocks so each test wires up only the calls it expects.

type mockUserRepo struct {
	CreateFn      func(ctx context.Context, user *domain.User) error
	FindByIDFn    func(ctx context.Context, id string) (*domain.User, error)
	FindByEmailFn func(ctx context.Context, email string) (*domain.User, error)
	UpdateFn      func(ctx context.Context, user *domain.User) error
}

func (m *mockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.CreateFn(ctx, user)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.FindByEmailFn(ctx, email)
}

func (m *mockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.UpdateFn(ctx, user)
}

type mockTodoRepo struct {
	CreateFn      func(ctx context.Context, todo *domain.Todo) error
	FindByIDFn    func(ctx context.Context, id string) (*domain.Todo, error)
	ListByUserFn  func(ctx context.Context, userID string, limit, offset int) ([]domain.Todo, error)
	CountByUserFn func(ctx context.Context, userID string) (int64, error)
	UpdateFn      func(ctx context.Context, todo *domain.Todo) error
	DeleteFn      func(ctx context.Context, id string) error
}

func (m *mockTodoRepo) Create(ctx context.Context, todo *domain.Todo) error {
	return m.CreateFn(ctx, todo)
}

func (m *mockTodoRepo) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	return m.FindByIDFn(ctx, id)
}

func (m *mockTodoRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.Todo, error) {
	return m.ListByUserFn(ctx, userID, limit, offset)
}

func (m *mockTodoRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	return m.CountByUserFn(ctx, userID)
}

func (m *mockTodoRepo) Update(ctx context.Context, todo *domain.Todo) error {
	return m.UpdateFn(ctx, todo)
}

func (m *mockTodoRepo) Delete(ctx context.Context, id string) error {
	return m.DeleteFn(ctx, id)
}
