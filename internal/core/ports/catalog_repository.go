package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// CatalogRepository reads the static reference tables the checkout and the
// public site depend on.
type CatalogRepository interface {
	// Provinces returns all provinces sorted by name.
	Provinces(ctx context.Context) ([]domain.Province, error)
	// MunicipalitiesByProvince returns a province's municipalities sorted by name.
	MunicipalitiesByProvince(ctx context.Context, province string) ([]domain.Municipality, error)
	// Availability returns the explicit availability record for a
	// municipality, or (nil, nil) when none exists.
	Availability(ctx context.Context, municipality string) (*domain.ServiceAvailability, error)
	// PaymentMethods returns active payment methods sorted by name.
	PaymentMethods(ctx context.Context) ([]domain.PaymentMethod, error)
}
