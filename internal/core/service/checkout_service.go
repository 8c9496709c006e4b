package service

import (
	"context"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/api/metrics"
	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

// CheckoutService drives the three-step order intake. Session state lives in
// the checkout store; each mutation loads, applies, and saves back.
type CheckoutService struct {
	store   ports.CheckoutStore
	catalog ports.CatalogRepository
	orders  ports.OrderRepository
	now     func() time.Time
	logger  zerolog.Logger
}

func NewCheckoutService(store ports.CheckoutStore, catalog ports.CatalogRepository, orders ports.OrderRepository, logger zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		store:   store,
		catalog: catalog,
		orders:  orders,
		now:     time.Now,
		logger:  logger,
	}
}

// Start opens a session for a published tier or a custom amount. The offer
// selection is resolved eagerly so an unknown tier or non-positive amount
// fails here rather than at submission.
func (s *CheckoutService) Start(ctx context.Context, input ports.StartCheckoutInput) (*domain.CheckoutSession, error) {
	if input.Tier != 0 && input.Tier != domain.CustomOffer && input.CustomUSD > 0 {
		return nil, domain.ErrAmbiguousOffer
	}
	selection := domain.OfferSelection{Tier: input.Tier}
	if input.CustomUSD > 0 || input.Tier == domain.CustomOffer {
		selection = domain.OfferSelection{Tier: domain.CustomOffer, CustomUSD: input.CustomUSD}
	}
	if _, err := selection.Resolve(); err != nil {
		return nil, err
	}

	session := domain.NewCheckoutSession(domain.NewOpaqueToken(), selection, s.now().UTC())
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}

	metrics.CheckoutSessionsStartedTotal.WithLabelValues(strconv.Itoa(selection.Tier)).Inc()
	s.logger.Info().Str("session_id", session.ID).Int("offer", selection.Tier).Msg("checkout started")
	return session, nil
}

func (s *CheckoutService) Get(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return s.store.Find(ctx, id)
}

func (s *CheckoutService) SetSender(ctx context.Context, id string, details domain.SenderDetails) (*domain.CheckoutSession, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step >= domain.StepSubmitted {
		return nil, domain.ErrSessionSubmitted
	}

	session.Sender = details
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// SetReceiver records step 2 data. When the municipality changes, its
// availability record is looked up; municipalities without one offer both
// collection methods.
func (s *CheckoutService) SetReceiver(ctx context.Context, id string, details domain.ReceiverDetails) (*domain.CheckoutSession, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step >= domain.StepSubmitted {
		return nil, domain.ErrSessionSubmitted
	}

	_, municipalityChanged := session.SetReceiver(details)
	if municipalityChanged && session.Receiver.Municipality != "" {
		availability, err := s.catalog.Availability(ctx, session.Receiver.Municipality)
		if err != nil {
			return nil, err
		}
		if availability != nil {
			session.Availability = availability.Flags()
		}
	}

	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) SetCollection(ctx context.Context, id string, details domain.CollectionDetails) (*domain.CheckoutSession, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step >= domain.StepSubmitted {
		return nil, domain.ErrSessionSubmitted
	}

	if err := session.SetCollection(details); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) Advance(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return s.changeStep(ctx, id, (*domain.CheckoutSession).Advance)
}

func (s *CheckoutService) Back(ctx context.Context, id string) (*domain.CheckoutSession, error) {
	return s.changeStep(ctx, id, (*domain.CheckoutSession).Back)
}

func (s *CheckoutService) changeStep(ctx context.Context, id string, move func(*domain.CheckoutSession) error) (*domain.CheckoutSession, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := move(session); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CheckoutService) CurrencyOptions(ctx context.Context, id string) ([]domain.CurrencyOption, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return session.CurrencyOptions()
}

// Submit validates all three steps, prices the order, and persists it with a
// fresh tracking token in a single insert. A store failure leaves the
// session at the collection step; nothing partial is written.
func (s *CheckoutService) Submit(ctx context.Context, id string) (*ports.SubmitResult, error) {
	session, err := s.store.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step >= domain.StepSubmitted {
		return nil, domain.ErrSessionSubmitted
	}
	if !session.Submittable() {
		return nil, domain.ErrStepIncomplete
	}

	offer, err := session.Offer.Resolve()
	if err != nil {
		return nil, err
	}
	payout, err := offer.Payout(session.Collection.Method, session.Collection.Currency)
	if err != nil {
		return nil, err
	}

	bankCard := ""
	if session.Collection.Method == domain.MethodTransfer {
		bankCard = session.Collection.BankCard
	}

	order := &domain.RemittanceOrder{
		Offer: offer.Number,
		Sender: domain.OrderSender{
			Name:    session.Sender.Name,
			Email:   session.Sender.Email,
			Phone:   session.Sender.Phone,
			Country: session.Sender.Country,
		},
		Receiver: domain.OrderReceiver{
			Name:         session.Receiver.Name,
			NationalID:   session.Receiver.NationalID,
			Contact:      session.Receiver.Contact,
			Province:     session.Receiver.Province,
			Municipality: session.Receiver.Municipality,
			Address:      session.Receiver.Address,
			Notes:        session.Receiver.Notes,
		},
		Method:        session.Collection.Method,
		Currency:      session.Collection.Currency,
		AmountUSD:     offer.SendUSD,
		Payout:        payout,
		BankCard:      bankCard,
		Status:        domain.OrderPending,
		TrackingToken: domain.NewOpaqueToken(),
		CreatedAt:     s.now().UTC(),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		s.logger.Error().Err(err).Str("session_id", session.ID).Msg("order insert failed")
		return nil, err
	}

	session.Step = domain.StepSubmitted
	if err := s.store.Save(ctx, session); err != nil {
		// A session left at the collection step would accept a second
		// submit and create a duplicate order; drop it instead so a retry
		// gets ErrSessionNotFound.
		s.logger.Warn().Err(err).Str("session_id", session.ID).Msg("session finalize failed")
		if delErr := s.store.Delete(ctx, session.ID); delErr != nil {
			s.logger.Error().Err(delErr).Str("session_id", session.ID).Msg("session drop after finalize failure failed")
		}
	}

	metrics.OrdersCreatedTotal.WithLabelValues(strconv.Itoa(created.Offer), created.Method).Inc()
	s.logger.Info().
		Str("tracking_token", created.TrackingToken).
		Int("offer", created.Offer).
		Str("method", created.Method).
		Msg("order created")

	return &ports.SubmitResult{Order: created, TrackingToken: created.TrackingToken}, nil
}
