// Package monitoring exposes Prometheus instrumentation for the admission
// pipeline and HTTP surface.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics manages the Prometheus metrics.
type Metrics struct {
	HTTPRequests     *prometheus.CounterVec
	HTTPLatency      *prometheus.HistogramVec
	RateLimitDenials *prometheus.CounterVec
	AuthFailures     *prometheus.CounterVec
	AdminDenials     prometheus.Counter
}

// NewMetrics creates and registers the Prometheus metrics on the given
// registerer. Pass prometheus.DefaultRegisterer in production.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		HTTPRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		HTTPLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "backoffice_http_request_duration_seconds",
				Help:    "Latency of HTTP requests.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		RateLimitDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_rate_limit_denials_total",
				Help: "Total number of requests denied by a rate limiter.",
			},
			[]string{"scope"},
		),
		AuthFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "backoffice_auth_failures_total",
				Help: "Total number of rejected authentication attempts.",
			},
			[]string{"reason"},
		),
		AdminDenials: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "backoffice_admin_denials_total",
				Help: "Total number of requests rejected by the admin gate.",
			},
		),
	}
}

// RecordRequest records metrics for a completed HTTP request.
func (m *Metrics) RecordRequest(method, route, status string, duration time.Duration) {
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPLatency.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordRateLimitDenial records a request denied by the named limiter scope.
func (m *Metrics) RecordRateLimitDenial(scope string) {
	m.RateLimitDenials.WithLabelValues(scope).Inc()
}

// RecordAuthFailure records a rejected authentication attempt.
func (m *Metrics) RecordAuthFailure(reason string) {
	m.AuthFailures.WithLabelValues(reason).Inc()
}

// RecordAdminDenial records a request rejected by the admin gate.
func (m *Metrics) RecordAdminDenial() {
	m.AdminDenials.Inc()
}

// RegisterCounterStoreGauge publishes the live size of a rate-limit counter
// store so sweeper behavior is observable.
func RegisterCounterStoreGauge(reg prometheus.Registerer, size func() int) {
	reg.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "backoffice_rate_limit_counters",
			Help: "Current number of tracked rate-limit counters.",
		},
		func() float64 { return float64(size()) },
	))
}
