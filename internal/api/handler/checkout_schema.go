package handler

import (
	"time"

	"github.com/melxagency/rmoneyok/internal/core/domain"
)

// --- Request / Response types ---

type startCheckoutRequest struct {
	// Tier selects a published offer (1-3). Leave zero and set
	// custom_amount_usd to start a custom-amount checkout.
	Tier            int     `json:"tier,omitempty"`
	CustomAmountUSD float64 `json:"custom_amount_usd,omitempty"`
}

type senderStepRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

type receiverStepRequest struct {
	Name         string `json:"name"`
	NationalID   string `json:"national_id"`
	Contact      string `json:"contact"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

type collectionStepRequest struct {
	Method   string `json:"method"`
	Currency string `json:"currency"`
	BankCard string `json:"bank_card,omitempty"`
}

// checkoutSessionResponse is the session view returned by every checkout
// operation. Offer payout tables are re-resolved on each render so the
// client sees the same figures submission will persist.
type checkoutSessionResponse struct {
	ID           string                   `json:"id"`
	Step         int                      `json:"step"`
	Offer        domain.Offer             `json:"offer"`
	Sender       domain.SenderDetails     `json:"sender"`
	Receiver     domain.ReceiverDetails   `json:"receiver"`
	Collection   domain.CollectionDetails `json:"collection"`
	Availability domain.ServiceFlags      `json:"availability"`
	CreatedAt    time.Time                `json:"created_at"`
}

func toSessionResponse(s *domain.CheckoutSession) (checkoutSessionResponse, error) {
	offer, err := s.Offer.Resolve()
	if err != nil {
		return checkoutSessionResponse{}, err
	}
	return checkoutSessionResponse{
		ID:           s.ID,
		Step:         int(s.Step),
		Offer:        offer,
		Sender:       s.Sender,
		Receiver:     s.Receiver,
		Collection:   s.Collection,
		Availability: s.Availability,
		CreatedAt:    s.CreatedAt,
	}, nil
}

type currencyOptionsResponse struct {
	Options []domain.CurrencyOption `json:"options"`
}

type submitResponse struct {
	TrackingToken string    `json:"tracking_token"`
	Status        string    `json:"status"`
	AmountUSD     float64   `json:"amount_usd"`
	Payout        int       `json:"payout"`
	Currency      string    `json:"currency"`
	CreatedAt     time.Time `json:"created_at"`
}
