// Package metrics defines and registers all custom Prometheus metrics for
// the marketplace API. It is the single source of truth for metric names,
// labels, and help strings. Registration happens at import time via
// promauto against the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// CheckoutSessionsCreatedTotal counts checkout sessions opened at the
// payment gateway.
var CheckoutSessionsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "checkout_sessions_created_total",
		Help:      "Total number of payment-gateway checkout sessions created.",
	},
)

// OrdersMaterializedTotal counts confirmation outcomes.
// Label:
//   - result: "created" (new order + decrement), "replayed" (order already
//     existed for the transaction), or "rejected" (unprocessable session)
var OrdersMaterializedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_materialized_total",
		Help:      "Total number of payment confirmations, labelled by outcome.",
	},
	[]string{"result"},
)

// ConfirmationCacheTotal counts replay-cache decisions.
// Label:
//   - result: "hit" (cached confirmation returned) or "miss"
var ConfirmationCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "confirmation_cache_total",
		Help:      "Total number of confirmation replay-cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)
