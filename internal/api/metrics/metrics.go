// Package metrics defines and registers all custom Prometheus metrics for the
// siteflow quoting API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at init time and are
// exposed through the /metrics endpoint wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "siteflow"

// LoginsTotal counts login attempts by outcome.
// Label:
//   - result: "success", "must_set_password", or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by outcome.",
	},
	[]string{"result"},
)

// RequestsSubmittedTotal counts service requests created by users.
var RequestsSubmittedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_submitted_total",
		Help:      "Total number of service requests submitted.",
	},
)

// QuotesIssuedTotal counts successful quotes.
var QuotesIssuedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quotes_issued_total",
		Help:      "Total number of quotes issued by administrators.",
	},
)

// StatusTransitionsTotal counts request status changes.
// Label:
//   - to: the new status ("quoted", "paid", "completed")
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of request status transitions, by target status.",
	},
	[]string{"to"},
)

// RequestsThrottledTotal counts requests rejected by the rate limiter.
// Label:
//   - scope: limiter scope ("auth" or "general")
var RequestsThrottledTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "requests_throttled_total",
		Help:      "Total number of requests rejected by the rate limiter, by scope.",
	},
	[]string{"scope"},
)
