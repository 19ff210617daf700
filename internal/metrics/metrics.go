// Package metrics collects and exposes Prometheus metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "voicerec"

// Collector records auth, upload and HTTP metrics. It satisfies the observer
// interfaces of the auth verifier and the recording service.
type Collector struct {
	authOutcomes  *prometheus.CounterVec
	uploads       *prometheus.CounterVec
	compensations *prometheus.CounterVec
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		authOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "auth_outcomes_total",
			Help:      "Resolved credentials by outcome and reason.",
		}, []string{"outcome", "reason"}),
		uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "uploads_total",
			Help:      "Recording uploads by outcome.",
		}, []string{"outcome"}),
		compensations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upload_compensations_total",
			Help:      "Orphan audio object removals after a failed metadata write.",
		}, []string{"outcome"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP responses by route, method and status code.",
		}, []string{"route", "method", "status_code"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}

	reg.MustRegister(
		c.authOutcomes,
		c.uploads,
		c.compensations,
		c.httpRequests,
		c.httpDuration,
	)

	return c
}

// ObserveAuth records one resolved credential.
func (c *Collector) ObserveAuth(outcome, reason string) {
	c.authOutcomes.WithLabelValues(outcome, reason).Inc()
}

// ObserveUpload records one upload workflow result.
func (c *Collector) ObserveUpload(outcome string) {
	c.uploads.WithLabelValues(outcome).Inc()
}

// ObserveCompensation records one orphan-object removal attempt.
func (c *Collector) ObserveCompensation(outcome string) {
	c.compensations.WithLabelValues(outcome).Inc()
}

// RecordHTTPRequest records a served request. route is the matched route
// pattern, not the raw path.
func (c *Collector) RecordHTTPRequest(route, method string, statusCode int, duration time.Duration) {
	c.httpRequests.WithLabelValues(route, method, strconv.Itoa(statusCode)).Inc()
	c.httpDuration.WithLabelValues(route, method).Observe(duration.Seconds())
}

// Handler returns the Prometheus scrape handler for gatherer.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
