// Package metrics defines and registers the custom Prometheus metrics for
// the adoption API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "adoption"

// LoginsTotal counts login attempts.
// Labels:
//   - kind: "admin" or "customer"
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by principal kind and result.",
	},
	[]string{"kind", "result"},
)

// RegistrationsTotal counts customer registration attempts.
// Label:
//   - result: "created", "duplicate", or "invalid"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of customer registration attempts, by result.",
	},
	[]string{"result"},
)

// FavoriteOpsTotal counts favorites mutations and reads.
// Label:
//   - op: "add", "remove", or "list"
var FavoriteOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "favorite_ops_total",
		Help:      "Total number of favorites operations served, by operation.",
	},
	[]string{"op"},
)
