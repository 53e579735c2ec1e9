// Package metrics defines and registers all custom Prometheus metrics for the
// advising backend. It is the single source of truth for metric names, labels,
// and help strings. Metrics register with the default registry at import time.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "aistudent"

// LoginsTotal counts completed OAuth logins.
// Labels:
//   - provider: "google" or "line"
//   - result: "success" or the redirect error code on failure
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of OAuth login attempts, by provider and result.",
	},
	[]string{"provider", "result"},
)

// ChatRequestsTotal counts chat turns served.
// Label:
//   - language: "zh" or "en"
var ChatRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_requests_total",
		Help:      "Total number of chat requests served, by language.",
	},
	[]string{"language"},
)

// ChatFallbacksTotal counts chat replies that fell back to a fixed message
// instead of generated text.
// Label:
//   - reason: "unconfigured" or "generation_failed"
var ChatFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_fallbacks_total",
		Help:      "Total number of chat replies served from a fallback string.",
	},
	[]string{"reason"},
)

// ProfilesCreatedTotal counts intake submissions.
// Label:
//   - role: the submitted user role (e.g. "student", "parent")
var ProfilesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profiles_created_total",
		Help:      "Total number of intake profiles created, by role.",
	},
	[]string{"role"},
)

// RateLimitedTotal counts requests rejected by the sliding-window limiter.
var RateLimitedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests rejected with 429 by the rate limiter.",
	},
)
