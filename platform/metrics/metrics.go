// Package metrics defines the Prometheus instrumentation used across the
// application. Collectors are registered on the default registry via promauto
// and exposed by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests served",
		},
		[]string{"method", "path", "status"},
	)

	GeocodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_requests_total",
			Help: "Outbound geocoding calls by provider and result status",
		},
		[]string{"provider", "status"},
	)

	RouteOptimizationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "route_optimizations_total",
			Help: "Route optimization calls by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	WaitlistSuggestionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "waitlist_suggestion_duration_seconds",
			Help: "Duration of waitlist suggestion scoring requests",
		},
	)
)
