// Package metrics defines and registers all custom Prometheus metrics for the
// admin console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics register with the default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Backend client metrics ───────────────────────────────────────────────────

// BackendRequestsTotal counts requests sent to the catalog backend.
// Labels:
//   - operation: logical call, e.g. "products.list", "auth.verify"
//   - code: HTTP status code, or "transport_error"
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the catalog backend.",
	},
	[]string{"operation", "code"},
)

// BackendRequestDuration measures backend round trips.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of catalog backend requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ──────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - outcome: "success", "not_admin", "rejected", "transport_error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of console login attempts, by outcome.",
	},
	[]string{"outcome"},
)

// SessionState is 1 for the guard's current state and 0 for the others.
var SessionState = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_state",
		Help:      "Current session guard state (1 = active).",
	},
	[]string{"state"},
)

// ── Resource metrics ─────────────────────────────────────────────────────────

// ResourceMutationsTotal counts create/update/delete/image actions.
// Labels:
//   - resource: "product" or "user"
//   - action: "create", "update", "delete", "delete_image", "set_primary_image"
//   - outcome: "success" or "failure"
var ResourceMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "resource_mutations_total",
		Help:      "Total number of resource mutations, by resource, action and outcome.",
	},
	[]string{"resource", "action", "outcome"},
)

// JournalQueueDepth tracks pending journal entries per worker.
var JournalQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "journal_queue_depth",
		Help:      "Current number of journal entries pending in each writer channel.",
	},
	[]string{"worker_id"},
)
