package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// OrderRepository persists remittance orders.
type OrderRepository interface {
	// Create performs a single atomic insert; the tracking token travels
	// with the order so no partial state can exist on failure.
	Create(ctx context.Context, order *domain.RemittanceOrder) (*domain.RemittanceOrder, error)
	FindByTrackingToken(ctx context.Context, token string) (*domain.RemittanceOrder, error)
	// List returns orders newest first.
	List(ctx context.Context) ([]domain.RemittanceOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePayment(ctx context.Context, id, paymentMethod, paymentReference string) error
}
