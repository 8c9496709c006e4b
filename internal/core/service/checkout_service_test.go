package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/melxagency/rmoneyok/internal/core/domain"
	"github.com/melxagency/rmoneyok/internal/core/ports"
)

type memCheckoutStore struct {
	sessions map[string]*domain.CheckoutSession
	saveErr  error
}

func newMemCheckoutStore() *memCheckoutStore {
	return &memCheckoutStore{sessions: make(map[string]*domain.CheckoutSession)}
}

func (s *memCheckoutStore) Save(_ context.Context, session *domain.CheckoutSession) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	clone := *session
	s.sessions[session.ID] = &clone
	return nil
}

func (s *memCheckoutStore) Find(_ context.Context, id string) (*domain.CheckoutSession, error) {
	session, ok := s.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := *session
	return &clone, nil
}

func (s *memCheckoutStore) Delete(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

type stubCatalogRepo struct {
	availability map[string]*domain.ServiceAvailability
}

func (r *stubCatalogRepo) Provinces(_ context.Context) ([]domain.Province, error) {
	return nil, nil
}

func (r *stubCatalogRepo) MunicipalitiesByProvince(_ context.Context, _ string) ([]domain.Municipality, error) {
	return nil, nil
}

func (r *stubCatalogRepo) Availability(_ context.Context, municipality string) (*domain.ServiceAvailability, error) {
	return r.availability[municipality], nil
}

func (r *stubCatalogRepo) PaymentMethods(_ context.Context) ([]domain.PaymentMethod, error) {
	return nil, nil
}

type stubOrderRepo struct {
	created []*domain.RemittanceOrder
	err     error
}

func (r *stubOrderRepo) Create(_ context.Context, order *domain.RemittanceOrder) (*domain.RemittanceOrder, error) {
	if r.err != nil {
		return nil, r.err
	}
	clone := *order
	clone.ID = "order_1"
	r.created = append(r.created, &clone)
	return &clone, nil
}

func (r *stubOrderRepo) FindByTrackingToken(_ context.Context, token string) (*domain.RemittanceOrder, error) {
	for _, o := range r.created {
		if o.TrackingToken == token {
			return o, nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *stubOrderRepo) List(_ context.Context) ([]domain.RemittanceOrder, error) {
	return nil, nil
}

func (r *stubOrderRepo) UpdateStatus(_ context.Context, _, _ string) error { return nil }

func (r *stubOrderRepo) UpdatePayment(_ context.Context, _, _, _ string) error { return nil }

func newCheckout(catalog *stubCatalogRepo, orders *stubOrderRepo) (*CheckoutService, *memCheckoutStore) {
	store := newMemCheckoutStore()
	if catalog == nil {
		catalog = &stubCatalogRepo{}
	}
	if orders == nil {
		orders = &stubOrderRepo{}
	}
	return NewCheckoutService(store, catalog, orders, zerolog.Nop()), store
}

func fillToCollection(t *testing.T, svc *CheckoutService, id string) {
	t.Helper()
	ctx := context.Background()

	if _, err := svc.SetSender(ctx, id, domain.SenderDetails{
		Name: "Ana Perez", Email: "ana@example.com", Phone: "+1 305 555 0101", Country: "US",
	}); err != nil {
		t.Fatalf("set sender failed: %v", err)
	}
	if _, err := svc.Advance(ctx, id); err != nil {
		t.Fatalf("advance to receiver failed: %v", err)
	}
	if _, err := svc.SetReceiver(ctx, id, domain.ReceiverDetails{
		Name: "Luis Perez", NationalID: "85010112345", Contact: "+53 5 555 0101",
		Province: "La Habana", Municipality: "Playa", Address: "Calle 70 #123",
	}); err != nil {
		t.Fatalf("set receiver failed: %v", err)
	}
	if _, err := svc.Advance(ctx, id); err != nil {
		t.Fatalf("advance to collection failed: %v", err)
	}
}

func TestCheckoutService_Start(t *testing.T) {
	svc, store := newCheckout(nil, nil)

	session, err := svc.Start(context.Background(), ports.StartCheckoutInput{Tier: 2})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if session.ID == "" {
		t.Fatalf("session has no id")
	}
	if session.Step != domain.StepSender {
		t.Fatalf("step = %d, want %d", session.Step, domain.StepSender)
	}
	if _, ok := store.sessions[session.ID]; !ok {
		t.Fatalf("session not persisted")
	}
}

func TestCheckoutService_Start_RejectsBadSelection(t *testing.T) {
	svc, _ := newCheckout(nil, nil)

	if _, err := svc.Start(context.Background(), ports.StartCheckoutInput{Tier: 7}); !errors.Is(err, domain.ErrUnknownOffer) {
		t.Fatalf("unknown tier: expected ErrUnknownOffer, got %v", err)
	}
	if _, err := svc.Start(context.Background(), ports.StartCheckoutInput{Tier: domain.CustomOffer}); !errors.Is(err, domain.ErrInvalidAmount) {
		t.Fatalf("custom without amount: expected ErrInvalidAmount, got %v", err)
	}
	if _, err := svc.Start(context.Background(), ports.StartCheckoutInput{CustomUSD: -5}); !errors.Is(err, domain.ErrUnknownOffer) {
		t.Fatalf("negative amount, no tier: expected ErrUnknownOffer, got %v", err)
	}
	if _, err := svc.Start(context.Background(), ports.StartCheckoutInput{Tier: 2, CustomUSD: 300}); !errors.Is(err, domain.ErrAmbiguousOffer) {
		t.Fatalf("tier with custom amount: expected ErrAmbiguousOffer, got %v", err)
	}
}

func TestCheckoutService_SetReceiver_OnePayloadReachesCollection(t *testing.T) {
	svc, _ := newCheckout(nil, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 1})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	if _, err := svc.SetSender(ctx, session.ID, domain.SenderDetails{
		Name: "Ana Perez", Email: "ana@example.com", Phone: "+1 305 555 0101", Country: "US",
	}); err != nil {
		t.Fatalf("set sender failed: %v", err)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("advance to receiver failed: %v", err)
	}

	updated, err := svc.SetReceiver(ctx, session.ID, domain.ReceiverDetails{
		Name: "Luis Perez", NationalID: "85010112345", Contact: "+53 5 555 0101",
		Province: "La Habana", Municipality: "Playa", Address: "Calle 70 #123",
	})
	if err != nil {
		t.Fatalf("set receiver failed: %v", err)
	}
	if updated.Receiver.Municipality != "Playa" {
		t.Fatalf("municipality = %q, want Playa after a single complete payload", updated.Receiver.Municipality)
	}
	if _, err := svc.Advance(ctx, session.ID); err != nil {
		t.Fatalf("advance after one receiver payload failed: %v", err)
	}
}

func TestCheckoutService_SetReceiver_LoadsAvailability(t *testing.T) {
	catalog := &stubCatalogRepo{availability: map[string]*domain.ServiceAvailability{
		"Playa": {Municipality: "Playa", Cash: true, Transfer: false},
	}}
	svc, _ := newCheckout(catalog, nil)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 1})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	updated, err := svc.SetReceiver(ctx, session.ID, domain.ReceiverDetails{
		Name: "Luis", NationalID: "1", Contact: "2",
		Province: "La Habana", Municipality: "Playa", Address: "3",
	})
	if err != nil {
		t.Fatalf("set receiver failed: %v", err)
	}
	if updated.Availability.Transfer {
		t.Fatalf("transfer offered in a cash-only municipality")
	}
	if !updated.Availability.Cash {
		t.Fatalf("cash not offered where the record allows it")
	}

	// A municipality without a record keeps the open default.
	fresh, err := svc.SetReceiver(ctx, session.ID, domain.ReceiverDetails{
		Name: "Luis", NationalID: "1", Contact: "2",
		Province: "La Habana", Municipality: "Marianao", Address: "3",
	})
	if err != nil {
		t.Fatalf("set receiver failed: %v", err)
	}
	if !fresh.Availability.Cash || !fresh.Availability.Transfer {
		t.Fatalf("availability = %+v, want both true without a record", fresh.Availability)
	}
}

func TestCheckoutService_Submit_CreatesPendingOrder(t *testing.T) {
	orders := &stubOrderRepo{}
	svc, store := newCheckout(nil, orders)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 2})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	fillToCollection(t, svc, session.ID)

	if _, err := svc.SetCollection(ctx, session.ID, domain.CollectionDetails{
		Method: domain.MethodCash, Currency: domain.CurrencyCUP,
	}); err != nil {
		t.Fatalf("set collection failed: %v", err)
	}

	result, err := svc.Submit(ctx, session.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders created = %d, want 1", len(orders.created))
	}

	order := orders.created[0]
	if order.Status != domain.OrderPending {
		t.Errorf("status = %q, want %q", order.Status, domain.OrderPending)
	}
	if order.TrackingToken == "" || result.TrackingToken != order.TrackingToken {
		t.Errorf("tracking token missing or mismatched: %q vs %q", result.TrackingToken, order.TrackingToken)
	}
	if order.Payout != 81000 {
		t.Errorf("payout = %d, want 81000 (tier 2 cash CUP)", order.Payout)
	}
	if order.AmountUSD != 220 {
		t.Errorf("amount USD = %v, want 220", order.AmountUSD)
	}
	if order.Receiver.Municipality != "Playa" {
		t.Errorf("municipality = %q, want Playa", order.Receiver.Municipality)
	}

	if store.sessions[session.ID].Step != domain.StepSubmitted {
		t.Errorf("session not frozen after submit")
	}
	if _, err := svc.Submit(ctx, session.ID); !errors.Is(err, domain.ErrSessionSubmitted) {
		t.Errorf("second submit: expected ErrSessionSubmitted, got %v", err)
	}
}

func TestCheckoutService_Submit_RequiresCompleteSteps(t *testing.T) {
	orders := &stubOrderRepo{}
	svc, _ := newCheckout(nil, orders)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 1})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}

	if _, err := svc.Submit(ctx, session.ID); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("submit at step 1: expected ErrStepIncomplete, got %v", err)
	}

	fillToCollection(t, svc, session.ID)
	// At collection but with no method chosen.
	if _, err := svc.Submit(ctx, session.ID); !errors.Is(err, domain.ErrStepIncomplete) {
		t.Fatalf("submit without collection: expected ErrStepIncomplete, got %v", err)
	}
	if len(orders.created) != 0 {
		t.Fatalf("order created for an incomplete checkout")
	}
}

func TestCheckoutService_Submit_OrderInsertFailureKeepsSessionOpen(t *testing.T) {
	orders := &stubOrderRepo{err: errors.New("mongo down")}
	svc, store := newCheckout(nil, orders)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 3})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	fillToCollection(t, svc, session.ID)
	if _, err := svc.SetCollection(ctx, session.ID, domain.CollectionDetails{
		Method: domain.MethodTransfer, Currency: domain.CurrencyMLC, BankCard: "9235 1234 5678 9012",
	}); err != nil {
		t.Fatalf("set collection failed: %v", err)
	}

	if _, err := svc.Submit(ctx, session.ID); err == nil {
		t.Fatalf("expected insert error to surface")
	}
	if store.sessions[session.ID].Step != domain.StepCollection {
		t.Fatalf("session advanced despite failed insert")
	}

	// The sender can retry once storage recovers.
	orders.err = nil
	if _, err := svc.Submit(ctx, session.ID); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
}

func TestCheckoutService_Submit_FinalizeFailureDropsSession(t *testing.T) {
	orders := &stubOrderRepo{}
	svc, store := newCheckout(nil, orders)
	ctx := context.Background()

	session, err := svc.Start(ctx, ports.StartCheckoutInput{Tier: 2})
	if err != nil {
		t.Fatalf("start failed: %v", err)
	}
	fillToCollection(t, svc, session.ID)
	if _, err := svc.SetCollection(ctx, session.ID, domain.CollectionDetails{
		Method: domain.MethodCash, Currency: domain.CurrencyCUP,
	}); err != nil {
		t.Fatalf("set collection failed: %v", err)
	}

	store.saveErr = errors.New("redis down")
	result, err := svc.Submit(ctx, session.ID)
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.TrackingToken == "" {
		t.Fatalf("order created without a tracking token")
	}

	// The session is gone, so a retry cannot mint a second order.
	store.saveErr = nil
	if _, err := svc.Submit(ctx, session.ID); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("retry after dropped session: expected ErrSessionNotFound, got %v", err)
	}
	if len(orders.created) != 1 {
		t.Fatalf("orders created = %d, want 1", len(orders.created))
	}
}

func TestCheckoutService_Get_Unknown(t *testing.T) {
	svc, _ := newCheckout(nil, nil)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}
