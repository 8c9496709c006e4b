package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// UserRepository persists back-office operator accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// List returns operators newest first.
	List(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, user *domain.User) (*domain.User, error)
	// UpdatePassword replaces only the stored credential, used by the lazy
	// rehash after a successful legacy plaintext login.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
