// Package metrics exposes the Prometheus instruments for the like
// subsystem. Counters only; the /metrics endpoint is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TogglesTotal counts toggle operations by outcome: "liked",
	// "unliked" or "rejected".
	TogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "applaud_toggles_total",
		Help: "Total like/unlike toggle operations by result.",
	}, []string{"result"})

	// FallbacksTotal counts operations that fell through to the durable
	// store because the counter store errored or is unconfigured.
	FallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "applaud_store_fallbacks_total",
		Help: "Operations served by the durable store fallback path.",
	})

	// SyncFailuresTotal counts durable catch-up writes that failed and
	// were left for reconciliation.
	SyncFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "applaud_sync_failures_total",
		Help: "Background durable sync writes that failed.",
	})

	// SyncDroppedTotal counts sync jobs dropped because the buffer was full.
	SyncDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "applaud_sync_dropped_total",
		Help: "Background durable sync jobs dropped on a full buffer.",
	})

	// ReconcileRunsTotal counts operator-triggered reconciliation runs.
	ReconcileRunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "applaud_reconcile_runs_total",
		Help: "Reconciliation runs by scope: one or all.",
	}, []string{"scope"})
)
