package domain

import "time"

// CheckoutStep identifies a stage of the order-intake flow.
type CheckoutStep int

const (
	StepSender     CheckoutStep = 1
	StepReceiver   CheckoutStep = 2
	StepCollection CheckoutStep = 3
	StepSubmitted  CheckoutStep = 4
)

// OfferSelection is a tagged choice between a published tier and a custom
// USD amount. Exactly one branch is meaningful: Tier 1-3 fixes the amount,
// Tier == CustomOffer uses CustomUSD.
type OfferSelection struct {
	Tier      int     `json:"tier"`
	CustomUSD float64 `json:"custom_usd,omitempty"`
}

// Resolve materialises the selection into a priced offer.
func (s OfferSelection) Resolve() (Offer, error) {
	if s.Tier == CustomOffer {
		return CustomQuote(s.CustomUSD)
	}
	return FixedOffer(s.Tier)
}

// SenderDetails is step 1 of the checkout.
type SenderDetails struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Country string `json:"country"`
}

func (d SenderDetails) Complete() bool {
	return d.Name != "" && d.Email != "" && d.Phone != "" && d.Country != ""
}

// ReceiverDetails is step 2 of the checkout.
type ReceiverDetails struct {
	Name         string `json:"name"`
	NationalID   string `json:"national_id"`
	Contact      string `json:"contact"`
	Province     string `json:"province"`
	Municipality string `json:"municipality"`
	Address      string `json:"address"`
	Notes        string `json:"notes,omitempty"`
}

func (d ReceiverDetails) Complete() bool {
	return d.Name != "" && d.NationalID != "" && d.Contact != "" &&
		d.Province != "" && d.Municipality != "" && d.Address != ""
}

// CollectionDetails is step 3 of the checkout. BankCard is required only
// for the transfer method.
type CollectionDetails struct {
	Method   string `json:"method"`
	Currency string `json:"currency"`
	BankCard string `json:"bank_card,omitempty"`
}

func (d CollectionDetails) Complete() bool {
	if d.Method == "" || d.Currency == "" {
		return false
	}
	if d.Method == MethodTransfer {
		return d.BankCard != ""
	}
	return true
}

// ServiceFlags marks which collection methods a municipality supports.
// Municipalities without an explicit availability record offer both.
type ServiceFlags struct {
	Cash     bool `json:"cash"`
	Transfer bool `json:"transfer"`
}

// AllServices is the default when no availability record exists.
func AllServices() ServiceFlags {
	return ServiceFlags{Cash: true, Transfer: true}
}

// CurrencyOption pairs an available collection method with one of its
// currencies and the payout the current offer yields for it.
type CurrencyOption struct {
	Method   string `json:"method"`
	Currency string `json:"currency"`
	Amount   int    `json:"amount"`
	Display  string `json:"display"`
}

// CheckoutSession is the server-held state of one order intake. It lives in
// the session store until submitted or expired.
type CheckoutSession struct {
	ID           string            `json:"id"`
	Offer        OfferSelection    `json:"offer"`
	Step         CheckoutStep      `json:"step"`
	Sender       SenderDetails     `json:"sender"`
	Receiver     ReceiverDetails   `json:"receiver"`
	Collection   CollectionDetails `json:"collection"`
	Availability ServiceFlags      `json:"availability"`
	CreatedAt    time.Time         `json:"created_at"`
}

// NewCheckoutSession starts a session at step 1 with both services assumed
// available until a municipality is chosen.
func NewCheckoutSession(id string, offer OfferSelection, now time.Time) *CheckoutSession {
	return &CheckoutSession{
		ID:           id,
		Offer:        offer,
		Step:         StepSender,
		Availability: AllServices(),
		CreatedAt:    now,
	}
}

// StepComplete reports whether a step's required fields are all present.
func (s *CheckoutSession) StepComplete(step CheckoutStep) bool {
	switch step {
	case StepSender:
		return s.Sender.Complete()
	case StepReceiver:
		return s.Receiver.Complete()
	case StepCollection:
		return s.Collection.Complete()
	}
	return false
}

// Advance moves forward one step. Forward movement is gated on the current
// step validating; the flow terminates at StepCollection (submission is a
// separate operation).
func (s *CheckoutSession) Advance() error {
	if s.Step >= StepSubmitted {
		return ErrSessionSubmitted
	}
	if s.Step >= StepCollection {
		return ErrInvalidStepChange
	}
	if !s.StepComplete(s.Step) {
		return ErrStepIncomplete
	}
	s.Step++
	return nil
}

// Back moves one step backwards. Always permitted from steps 2 and 3.
func (s *CheckoutSession) Back() error {
	if s.Step >= StepSubmitted {
		return ErrSessionSubmitted
	}
	if s.Step <= StepSender {
		return ErrInvalidStepChange
	}
	s.Step--
	return nil
}

// SetReceiver records step 2 data. Changing province discards the previously
// selected municipality and any collection choice; changing municipality
// discards the collection choice (its options depend on local availability).
// A municipality arriving together with a new province is kept, since it
// belongs to that province.
func (s *CheckoutSession) SetReceiver(d ReceiverDetails) (provinceChanged, municipalityChanged bool) {
	provinceChanged = d.Province != s.Receiver.Province
	if provinceChanged && d.Municipality == s.Receiver.Municipality {
		// The old municipality carried over unchanged; it belongs to the
		// previous province.
		d.Municipality = ""
	}
	municipalityChanged = d.Municipality != s.Receiver.Municipality
	s.Receiver = d
	if provinceChanged || municipalityChanged {
		s.Collection = CollectionDetails{}
		s.Availability = AllServices()
	}
	return provinceChanged, municipalityChanged
}

// SetCollection records step 3 data against the municipality's availability
// and the session's offer. Switching method discards any bank card entered
// for the previous method.
func (s *CheckoutSession) SetCollection(d CollectionDetails) error {
	switch d.Method {
	case MethodCash:
		if !s.Availability.Cash {
			return ErrMethodNotOffered
		}
	case MethodTransfer:
		if !s.Availability.Transfer {
			return ErrMethodNotOffered
		}
	default:
		return ErrMethodNotOffered
	}

	if d.Method != s.Collection.Method {
		if d.Method != MethodTransfer {
			d.BankCard = ""
		}
	}

	if d.Currency != "" {
		offer, err := s.Offer.Resolve()
		if err != nil {
			return err
		}
		if _, err := offer.Payout(d.Method, d.Currency); err != nil {
			return err
		}
	}

	s.Collection = d
	return nil
}

// CurrencyOptions computes the selectable method/currency pairs: each method
// the municipality supports crossed with that method's three currencies,
// priced by the session's offer.
func (s *CheckoutSession) CurrencyOptions() ([]CurrencyOption, error) {
	offer, err := s.Offer.Resolve()
	if err != nil {
		return nil, err
	}

	var methods []string
	if s.Availability.Cash {
		methods = append(methods, MethodCash)
	}
	if s.Availability.Transfer {
		methods = append(methods, MethodTransfer)
	}

	var options []CurrencyOption
	for _, method := range methods {
		for _, currency := range Currencies(method) {
			amount, err := offer.Payout(method, currency)
			if err != nil {
				return nil, err
			}
			options = append(options, CurrencyOption{
				Method:   method,
				Currency: currency,
				Amount:   amount,
				Display:  FormatAmount(amount),
			})
		}
	}
	return options, nil
}

// Submittable reports whether all three steps currently validate.
func (s *CheckoutSession) Submittable() bool {
	return s.Step == StepCollection &&
		s.StepComplete(StepSender) &&
		s.StepComplete(StepReceiver) &&
		s.StepComplete(StepCollection)
}
