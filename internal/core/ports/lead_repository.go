package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// LeadRepository persists contact-form enquiries.
type LeadRepository interface {
	Create(ctx context.Context, lead *domain.Lead) (*domain.Lead, error)
	// List returns leads newest first.
	List(ctx context.Context) ([]domain.Lead, error)
	UpdateStatus(ctx context.Context, id, status string) error
}
