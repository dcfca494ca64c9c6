// Package metrics exposes the Prometheus collectors for authentication,
// authorization and HTTP traffic.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "taskboard"

var (
	// HTTP request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// HTTP request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "route"},
	)

	// Token rejections by reason (missing, expired, invalid, unknown_principal)
	TokenRejectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "token_rejections_total",
			Help:      "Bearer tokens rejected by the authorization pipeline",
		},
		[]string{"reason"},
	)

	// Role and ownership gate denials
	ForbiddenTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "forbidden_total",
			Help:      "Requests denied by a role or ownership gate",
		},
		[]string{"gate"},
	)

	// Account lifecycle events
	AccountEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "account_events_total",
			Help:      "Account events by type",
		},
		[]string{"type"},
	)
)

// RecordRequest records a completed HTTP request.
func RecordRequest(method, route, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordTokenRejection records a rejected bearer token.
func RecordTokenRejection(reason string) {
	TokenRejectionsTotal.WithLabelValues(reason).Inc()
}

// RecordForbidden records a gate denial.
func RecordForbidden(gate string) {
	ForbiddenTotal.WithLabelValues(gate).Inc()
}

// RecordAccountEvent records an account lifecycle event.
func RecordAccountEvent(eventType string) {
	AccountEventsTotal.WithLabelValues(eventType).Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
