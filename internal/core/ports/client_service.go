package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// RegisterClientInput carries a new customer registration.
type RegisterClientInput struct {
	FullName string
	Email    string
	Contact  string
	Username string
	Password string
}

// ClientService covers customer registration, login, and the email
// verification lifecycle.
type ClientService interface {
	// Register persists the client unverified, then dispatches the
	// verification email. A send failure is logged, never surfaced.
	Register(ctx context.Context, input RegisterClientInput) (*domain.Client, error)
	// Login returns domain.ErrEmailNotVerified distinctly so the caller can
	// route to the resend flow instead of a generic credentials error.
	Login(ctx context.Context, username, password string) (string, *domain.Client, error)
	VerifyEmail(ctx context.Context, token string) error
	ResendVerification(ctx context.Context, email string) error
}
