// Package metrics defines and registers all custom Prometheus metrics for
// the Travelink booking API. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "booking"

// AuthRequestsTotal counts credential-lifecycle requests by flow and outcome.
// Labels:
//   - flow: register, login, change_password, forgot_password, reset_password
//   - outcome: success, failure
var AuthRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_requests_total",
		Help:      "Total number of credential lifecycle requests by flow and outcome.",
	},
	[]string{"flow", "outcome"},
)

// ReservationsTotal counts reservation actions.
// Label:
//   - action: created, cancelled, relayed
var ReservationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reservations_total",
		Help:      "Total number of reservation actions.",
	},
	[]string{"action"},
)
