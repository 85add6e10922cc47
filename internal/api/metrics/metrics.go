// Package metrics defines and registers all custom Prometheus metrics for the
// product catalog API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "catalog"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials) or "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Product metrics ───────────────────────────────────────────────────────────

// ProductOperationsTotal counts catalog operations.
// Labels:
//   - operation: "create", "get", "update", "delete", "list", "search"
//   - result: "ok", a business failure code (e.g. "PRODUCT_NOT_FOUND"), or "error"
var ProductOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_operations_total",
		Help:      "Total number of product catalog operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ProductCacheTotal counts product cache lookups.
// Label:
//   - result: "hit", "miss", "error" or "stale" (write skipped after an invalidation)
var ProductCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "product_cache_total",
		Help:      "Total number of product cache lookups, labelled by result (hit/miss/error/stale).",
	},
	[]string{"result"},
)
