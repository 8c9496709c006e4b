package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// OrderService implements the tracking lookup and back-office order mutations.
type OrderService struct {
	repo   ports.OrderRepository
	logger zerolog.Logger
}

func NewOrderService(repo ports.OrderRepository, logger zerolog.Logger) *OrderService {
	return &OrderService{repo: repo, logger: logger}
}

// Track resolves an order by its tracking token. The token itself never
// expires; it is the sole lookup key.
func (s *OrderService) Track(ctx context.Context, token string) (*domain.RemittanceOrder, error) {
	if token == "" {
		return nil, domain.ErrOrderNotFound
	}
	return s.repo.FindByTrackingToken(ctx, token)
}

func (s *OrderService) List(ctx context.Context) ([]domain.RemittanceOrder, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) error {
	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Str("status", status).Msg("order status updated")
	return nil
}

func (s *OrderService) UpdatePayment(ctx context.Context, id, paymentMethod, paymentReference string) error {
	if err := s.repo.UpdatePayment(ctx, id, paymentMethod, paymentReference); err != nil {
		return err
	}
	s.logger.Info().Str("order_id", id).Str("payment_method", paymentMethod).Msg("order payment updated")
	return nil
}
