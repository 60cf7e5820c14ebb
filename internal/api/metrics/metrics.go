// Package metrics defines all custom Prometheus metrics for the pet store
// API. It is the single source of truth for metric names, labels, and help
// strings. Metrics register with the default registry via promauto at
// package load.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "petstore"

// OrdersCreatedTotal counts successfully placed orders.
var OrdersCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders successfully placed.",
	},
)

// OrderTransitionsTotal counts applied order status transitions.
// Labels:
//   - from: the status the order left
//   - to: the status the order entered
var OrderTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "order_transitions_total",
		Help:      "Total number of order status transitions applied.",
	},
	[]string{"from", "to"},
)

// AuthzDeniedTotal counts requests rejected by an authorization rule.
// Label:
//   - route: the registered route pattern (e.g. "/v1/orders/:id")
var AuthzDeniedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "authz_denied_total",
		Help:      "Total number of requests denied by authorization rules.",
	},
	[]string{"route"},
)

// CatalogCacheTotal counts catalog cache lookups.
// Labels:
//   - list: "products" or "pets"
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of catalog cache lookups, labelled by result.",
	},
	[]string{"list", "result"},
)

// AppointmentsBookedTotal counts successfully booked appointments.
var AppointmentsBookedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "appointments_booked_total",
		Help:      "Total number of veterinary appointments booked.",
	},
)
