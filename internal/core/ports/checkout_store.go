package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// CheckoutStore holds in-progress checkout sessions (Redis). Sessions expire
// on their own; Save refreshes the TTL.
type CheckoutStore interface {
	Save(ctx context.Context, session *domain.CheckoutSession) error
	Find(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Delete(ctx context.Context, id string) error
}
