// Package metrics defines and registers all custom Prometheus metrics for the
// TimeTracker API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry on package init via
// promauto and are served at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "timetracker"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthGateTotal counts authentication gate outcomes.
// Label:
//   - result: "authenticated", "anonymous" (no bearer token) or "invalid"
var AuthGateTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_gate_total",
		Help:      "Requests seen by the authentication gate, by outcome.",
	},
	[]string{"result"},
)

// LoginsTotal counts login and registration attempts.
// Labels:
//   - op: "login" or "register"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Credential checks performed by login and registration.",
	},
	[]string{"op", "result"},
)

// AuthorizationDeniedTotal counts requests rejected for missing identity or rights.
// Label:
//   - reason: "unauthenticated" or "forbidden"
var AuthorizationDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authorization_denied_total",
		Help:      "Requests rejected by role or ownership checks.",
	},
	[]string{"reason"},
)

// ── Activity log metrics ──────────────────────────────────────────────────────

// ActivityDroppedTotal counts entries discarded because a worker queue was full.
var ActivityDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_dropped_total",
		Help:      "Activity entries dropped because the dispatcher queue was full.",
	},
)

// ActivityWriteErrorsTotal counts entries the workers failed to persist.
var ActivityWriteErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_write_errors_total",
		Help:      "Activity entries that could not be written to storage.",
	},
)

// ActivityQueueDepth tracks pending entries per worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures request latency.
// Labels:
//   - method: HTTP method
//   - route: the matched route pattern (e.g. "/records/:id")
//   - status: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests by route and status.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "status"},
)
