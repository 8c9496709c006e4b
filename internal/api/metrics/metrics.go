// Package metrics defines and registers all custom Prometheus metrics for
// the RMoney order-intake API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Registration happens at import time via promauto; the router exposes the
// default registry on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rmoney"

// ── Checkout metrics ──────────────────────────────────────────────────────────

// CheckoutSessionsStartedTotal counts opened checkout sessions.
// Label:
//   - offer: the tier number ("1".."3") or "4" for custom amounts
var CheckoutSessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_started_total",
		Help:      "Total number of checkout sessions started, by offer.",
	},
	[]string{"offer"},
)

// OrdersCreatedTotal counts persisted remittance orders.
// Labels:
//   - offer:  the tier number ("1".."4")
//   - method: "cash" or "transfer"
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of remittance orders created, by offer and collection method.",
	},
	[]string{"offer", "method"},
)

// ── Account metrics ───────────────────────────────────────────────────────────

// VerificationEmailsTotal counts verification email dispatch attempts.
// Label:
//   - result: "ok" or "error"
var VerificationEmailsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "verification_emails_total",
		Help:      "Total number of verification email dispatch attempts, by result.",
	},
	[]string{"result"},
)

// LeadsCreatedTotal counts contact-form submissions persisted as leads.
var LeadsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "leads_created_total",
		Help:      "Total number of leads captured from the contact form.",
	},
)
