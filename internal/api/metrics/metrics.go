// Package metrics defines and registers all custom Prometheus metrics for the
// RBAC demo portal. It is the single source of truth for metric names, labels,
// and help strings. Registration happens at import time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "rbacportal"

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts against the session store.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SessionActive reports whether a session currently exists (1) or not (0).
var SessionActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_active",
		Help:      "Whether an identity is currently logged in (0 or 1).",
	},
)

// ── Gate metrics ──────────────────────────────────────────────────────────────

// GateDecisionsTotal counts admission decisions made by the navigation gates.
// Labels:
//   - gate: "session" or "role"
//   - decision: "admit" or "deny"
var GateDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gate_decisions_total",
		Help:      "Total number of gate admission decisions, by gate and decision.",
	},
	[]string{"gate", "decision"},
)

// ── Simulated backend metrics ─────────────────────────────────────────────────

// BackendRequestsTotal counts requests resolved by the simulated backend.
// Labels:
//   - route: the recognized route pattern (e.g. "/api/users/{id}")
//   - status: the synthesized HTTP status code
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests synthesized by the simulated backend.",
	},
	[]string{"route", "status"},
)

// BackendRequestDuration measures the time from request receipt to synthesized
// response, which is dominated by the configured latency simulation.
// Label:
//   - route: the recognized route pattern
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of simulated backend request handling, including the artificial delay.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"route"},
)
