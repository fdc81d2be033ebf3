// Package metrics defines and registers all custom Prometheus metrics for the
// VetCare access service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "vetcare"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginAttemptsTotal counts finished login attempts.
// Label:
//   - result: "success", "invalid_credentials", "directory_unavailable",
//     "session_storage" or "in_progress"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// LoginDuration measures the directory round trip of a login attempt.
var LoginDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "login_duration_seconds",
		Help:      "Duration of login attempts from submission to resolution.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// SessionRestoresTotal counts restore outcomes.
// Label:
//   - result: "restored", "absent", "malformed" or "storage_error"
var SessionRestoresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_restores_total",
		Help:      "Total number of persisted session restores, by result.",
	},
	[]string{"result"},
)

// ActiveSessions tracks session stores currently held by requests.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of session stores held by in-flight requests.",
	},
)

// ── Access metrics ────────────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard decisions.
// Labels:
//   - route: route name (e.g. "billing")
//   - decision: "allow", "redirect_login" or "redirect_home"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions.",
	},
	[]string{"route", "decision"},
)

// ── Audit metrics ─────────────────────────────────────────────────────────────

// AuditEventsTotal counts audit events by kind and outcome.
// Labels:
//   - kind: event kind (e.g. "login_failed")
//   - result: "stored", "failed" or "dropped"
var AuditEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_events_total",
		Help:      "Total number of audit events, by kind and outcome.",
	},
	[]string{"kind", "result"},
)

// AuditQueueDepth tracks pending events in each dispatcher worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of audit events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
