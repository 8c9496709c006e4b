package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// OrderService covers the public tracking lookup and the back-office order
// mutations.
type OrderService interface {
	Track(ctx context.Context, token string) (*domain.RemittanceOrder, error)
	List(ctx context.Context) ([]domain.RemittanceOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error
	UpdatePayment(ctx context.Context, id, paymentMethod, paymentReference string) error
}

// LeadService covers contact-form intake and back-office lead handling.
type LeadService interface {
	Create(ctx context.Context, name, email, phone, message string) (*domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
