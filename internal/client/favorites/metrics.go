package favorites

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// syncLoadsTotal counts reconciliation loads by outcome.
// Label:
//   - outcome: "committed", "stale_discarded", "retried", or "error"
var syncLoadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "adoption",
		Subsystem: "client",
		Name:      "sync_loads_total",
		Help:      "Total number of favorites reconciliation loads, by outcome.",
	},
	[]string{"outcome"},
)

// pushFailuresTotal counts optimistic toggle pushes the server rejected.
var pushFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: "adoption",
		Subsystem: "client",
		Name:      "push_failures_total",
		Help:      "Total number of optimistic favorite toggles that failed server-side.",
	},
)
