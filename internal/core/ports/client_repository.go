package ports

import (
	"context"
	"time"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// ClientRepository persists customer accounts and their verification state.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	FindByUsername(ctx context.Context, username string) (*domain.Client, error)
	FindByEmail(ctx context.Context, email string) (*domain.Client, error)
	FindByVerificationToken(ctx context.Context, token string) (*domain.Client, error)
	// MarkVerified flips the verified flag and clears token and expiry.
	MarkVerified(ctx context.Context, id string) error
	// SetVerificationToken overwrites token and expiry, implicitly
	// invalidating any previously issued token.
	SetVerificationToken(ctx context.Context, id, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}
