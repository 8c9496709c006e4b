package ports

import (
	"context"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// StartCheckoutInput opens a session for a published tier (1-3) or, when
// CustomUSD is set, for the custom offer. Supplying a fixed tier and a
// custom amount together is rejected as ambiguous.
type StartCheckoutInput struct {
	Tier      int
	CustomUSD float64
}

// SubmitResult is returned once the order is persisted.
type SubmitResult struct {
	Order         *domain.RemittanceOrder
	TrackingToken string
}

// CheckoutService drives the three-step order intake state machine.
type CheckoutService interface {
	Start(ctx context.Context, input StartCheckoutInput) (*domain.CheckoutSession, error)
	Get(ctx context.Context, id string) (*domain.CheckoutSession, error)
	SetSender(ctx context.Context, id string, details domain.SenderDetails) (*domain.CheckoutSession, error)
	// SetReceiver reloads the municipality's availability flags whenever the
	// municipality changes.
	SetReceiver(ctx context.Context, id string, details domain.ReceiverDetails) (*domain.CheckoutSession, error)
	SetCollection(ctx context.Context, id string, details domain.CollectionDetails) (*domain.CheckoutSession, error)
	Advance(ctx context.Context, id string) (*domain.CheckoutSession, error)
	Back(ctx context.Context, id string) (*domain.CheckoutSession, error)
	CurrencyOptions(ctx context.Context, id string) ([]domain.CurrencyOption, error)
	// Submit persists the order and retires the session. On a store failure
	// the session stays at the collection step so the caller can retry.
	Submit(ctx context.Context, id string) (*SubmitResult, error)
}
