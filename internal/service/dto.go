package service

import (
	"time"

	"github.com/go-playground/validator/v10"

	"todomaster/internal/domain"
)

// ItemsPerPage is the fixed page size for every todo listing.
const ItemsPerPage = 10

var validate = validator.New()

// TodoResponse is the standard representation of a Todo returned by the
// services, decoupled from the GORM model.
type TodoResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// UserResponse is the representation of a User. Todos is only populated by
// the admin listing.
type UserResponse struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	IsSubscribed     bool           `json:"isSubscribed"`
	SubscriptionEnds *string        `json:"subscriptionEnds"`
	Todos            []TodoResponse `json:"todos,omitempty"`
}

func newTodoResponse(t *domain.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		UserID:    t.UserID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
		UpdatedAt: t.UpdatedAt.Format(time.RFC3339),
	}
}

func newUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		IsSubscribed: u.IsSubscribed,
	}
	if u.SubscriptionEnds != nil {
		ends := u.SubscriptionEnds.Format(time.RFC3339)
		resp.SubscriptionEnds = &ends
	}
	return resp
}

func totalPages(total int64) int {
	return int((total + ItemsPerPage - 1) / ItemsPerPage)
}
