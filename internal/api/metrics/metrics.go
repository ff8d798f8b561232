// Package metrics defines and registers the custom Prometheus metrics for
// the selectshop API. It is the single source of truth for metric names,
// labels, and help strings; HTTP-level metrics come from the echoprometheus
// middleware instead.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "selectshop"

// LoginAttemptsTotal counts local login submissions.
// Label:
//   - result: "ok", "invalid_credentials", or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of local login attempts, by result.",
	},
	[]string{"result"},
)

// TokenVerificationsTotal counts credential checks performed by the
// authorization gate.
// Label:
//   - result: "ok" or "rejected"
var TokenVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_verifications_total",
		Help:      "Total number of request credentials verified, by result.",
	},
	[]string{"result"},
)

// KakaoLoginsTotal counts OAuth callback flows.
// Label:
//   - result: "ok", "provider_error", "state_invalid", or "error"
var KakaoLoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "kakao_logins_total",
		Help:      "Total number of Kakao login callbacks, by result.",
	},
	[]string{"result"},
)

// SignupsTotal counts accounts created through the signup endpoint.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of accounts created via local signup.",
	},
)
