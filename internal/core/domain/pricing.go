package domain

import (
	"math"
	"strconv"
)

// Collection methods: how the receiver gets the money.
const (
	MethodCash     = "cash"
	MethodTransfer = "transfer"
)

// Currencies paid out per collection method.
const (
	CurrencyEUR = "eur"
	CurrencyUSD = "usd"
	CurrencyCUP = "cup"
	CurrencyMLC = "mlc"
	CurrencyTC  = "tc"
)

// CustomOffer is the offer number used when the sender picks an arbitrary
// USD amount instead of one of the three fixed tiers.
const CustomOffer = 4

// CashPayout holds the amounts handed over in cash, per currency.
type CashPayout struct {
	EUR int `json:"eur"`
	USD int `json:"usd"`
	CUP int `json:"cup"`
}

// TransferPayout holds the amounts credited by bank transfer, per currency.
type TransferPayout struct {
	CUP int `json:"cup"`
	MLC int `json:"mlc"`
	TC  int `json:"tc"`
}

// Offer is one pricing tier: a fixed USD send amount and the payout each
// collection method yields.
type Offer struct {
	Number   int            `json:"number"`
	SendUSD  float64        `json:"send_usd"`
	Cash     CashPayout     `json:"cash"`
	Transfer TransferPayout `json:"transfer"`
}

// fixedOffers are the three published tiers. Tier 2 doubles as the rate
// reference for custom amounts.
var fixedOffers = map[int]Offer{
	1: {
		Number:   1,
		SendUSD:  110,
		Cash:     CashPayout{EUR: 80, USD: 100, CUP: 40500},
		Transfer: TransferPayout{CUP: 40800, MLC: 213, TC: 100},
	},
	2: {
		Number:   2,
		SendUSD:  220,
		Cash:     CashPayout{EUR: 160, USD: 200, CUP: 81000},
		Transfer: TransferPayout{CUP: 81600, MLC: 426, TC: 200},
	},
	3: {
		Number:   3,
		SendUSD:  324,
		Cash:     CashPayout{EUR: 240, USD: 300, CUP: 121500},
		Transfer: TransferPayout{CUP: 122400, MLC: 639, TC: 300},
	},
}

// FixedOffer returns a published tier by number (1-3).
func FixedOffer(number int) (Offer, error) {
	offer, ok := fixedOffers[number]
	if !ok {
		return Offer{}, ErrUnknownOffer
	}
	return offer, nil
}

// FixedOffers returns the three published tiers in order.
func FixedOffers() []Offer {
	return []Offer{fixedOffers[1], fixedOffers[2], fixedOffers[3]}
}

// CustomQuote prices an arbitrary USD amount. Rates are derived from tier 2:
// each tier-2 payout divided by its $220 send amount is treated as the
// canonical exchange rate and applied linearly. Amounts round to the nearest
// whole unit. The same function backs the public quote endpoint and the
// value persisted at submission, so preview and order can never disagree.
func CustomQuote(usd float64) (Offer, error) {
	if usd <= 0 || math.IsNaN(usd) || math.IsInf(usd, 0) {
		return Offer{}, ErrInvalidAmount
	}

	base := fixedOffers[2]
	at := func(payout int) int {
		return int(math.Round(usd * float64(payout) / base.SendUSD))
	}

	return Offer{
		Number:  CustomOffer,
		SendUSD: usd,
		Cash: CashPayout{
			EUR: at(base.Cash.EUR),
			USD: at(base.Cash.USD),
			CUP: at(base.Cash.CUP),
		},
		Transfer: TransferPayout{
			CUP: at(base.Transfer.CUP),
			MLC: at(base.Transfer.MLC),
			TC:  at(base.Transfer.TC),
		},
	}, nil
}

// Payout returns the amount the receiver gets for a method/currency pair.
func (o Offer) Payout(method, currency string) (int, error) {
	switch method {
	case MethodCash:
		switch currency {
		case CurrencyEUR:
			return o.Cash.EUR, nil
		case CurrencyUSD:
			return o.Cash.USD, nil
		case CurrencyCUP:
			return o.Cash.CUP, nil
		}
	case MethodTransfer:
		switch currency {
		case CurrencyCUP:
			return o.Transfer.CUP, nil
		case CurrencyMLC:
			return o.Transfer.MLC, nil
		case CurrencyTC:
			return o.Transfer.TC, nil
		}
	}
	return 0, ErrUnknownCurrency
}

// Currencies lists the currency codes offered for a collection method.
func Currencies(method string) []string {
	switch method {
	case MethodCash:
		return []string{CurrencyEUR, CurrencyUSD, CurrencyCUP}
	case MethodTransfer:
		return []string{CurrencyCUP, CurrencyMLC, CurrencyTC}
	}
	return nil
}

// FormatAmount renders a payout for display, grouping thousands with commas
// (CUP figures such as 81000 show as "81,000").
func FormatAmount(n int) string {
	s := strconv.Itoa(n)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	if len(s) <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	var out []byte
	lead := len(s) % 3
	if lead > 0 {
		out = append(out, s[:lead]...)
	}
	for i := lead; i < len(s); i += 3 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, s[i:i+3]...)
	}
	if neg {
		return "-" + string(out)
	}
	return string(out)
}
