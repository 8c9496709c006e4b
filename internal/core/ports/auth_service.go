package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// CreateUserInput carries a new operator account.
type CreateUserInput struct {
	Username string
	FullName string
	Password string
	Role     string
}

// UpdateUserInput mutates an existing operator. A blank Password leaves the
// stored credential untouched.
type UpdateUserInput struct {
	ID       string
	Username string
	FullName string
	Password string
	Role     string
}

// AuthService covers operator login and operator account administration.
type AuthService interface {
	// Login verifies credentials and issues a session token. An unknown
	// username and a wrong password are indistinguishable to the caller.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)

	CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, input UpdateUserInput) (*domain.User, error)
	DeleteUser(ctx context.Context, id string) error
}
