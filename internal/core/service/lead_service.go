package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/api/metrics"
	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// LeadService implements contact-form intake and back-office lead handling.
type LeadService struct {
	repo   ports.LeadRepository
	now    func() time.Time
	logger zerolog.Logger
}

func NewLeadService(repo ports.LeadRepository, logger zerolog.Logger) *LeadService {
	return &LeadService{repo: repo, now: time.Now, logger: logger}
}

func (s *LeadService) Create(ctx context.Context, name, email, phone, message string) (*domain.Lead, error) {
	lead := &domain.Lead{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}

	created, err := s.repo.Create(ctx, lead)
	if err != nil {
		return nil, err
	}

	metrics.LeadsCreatedTotal.Inc()
	s.logger.Info().Str("email", created.Email).Msg("lead captured")
	return created, nil
}

func (s *LeadService) List(ctx context.Context) ([]domain.Lead, error) {
	return s.repo.List(ctx)
}

func (s *LeadService) UpdateStatus(ctx context.Context, id, status string) error {
	return s.repo.UpdateStatus(ctx, id, status)
}
