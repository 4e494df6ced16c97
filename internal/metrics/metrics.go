// Package metrics exposes the Prometheus instrumentation for bindery.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Resolution outcome label values.
const (
	OutcomeFound     = "found"
	OutcomeNotFound  = "not_found"
	OutcomeTransient = "transient"
)

// Metrics bundles the collectors for cover resolution, the search client,
// and the HTTP surface. A nil *Metrics is valid and records nothing, so
// callers never need to guard instrumentation sites.
type Metrics struct {
	registry *prometheus.Registry

	resolutions     *prometheus.CounterVec
	cacheEvents     *prometheus.CounterVec
	searchRequests  *prometheus.CounterVec
	searchDuration  prometheus.Histogram
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	batchSweepSize  prometheus.Histogram
	candidateScores prometheus.Histogram
}

// New creates the collector set on a fresh registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		resolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bindery",
			Subsystem: "covers",
			Name:      "resolutions_total",
			Help:      "Cover resolutions by outcome.",
		}, []string{"outcome"}),
		cacheEvents: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bindery",
			Subsystem: "covers",
			Name:      "cache_events_total",
			Help:      "Cover cache lookups by result.",
		}, []string{"result"}),
		searchRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bindery",
			Subsystem: "naver",
			Name:      "search_requests_total",
			Help:      "Outbound Naver search requests by status.",
		}, []string{"status"}),
		searchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bindery",
			Subsystem: "naver",
			Name:      "search_duration_seconds",
			Help:      "Outbound Naver search latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bindery",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"route", "code"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bindery",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
		batchSweepSize: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bindery",
			Subsystem: "covers",
			Name:      "batch_sweep_records",
			Help:      "Records attempted per batch sweep.",
			Buckets:   []float64{1, 5, 10, 18, 30, 50},
		}),
		candidateScores: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "bindery",
			Subsystem: "covers",
			Name:      "candidate_best_score",
			Help:      "Best candidate score per attempted resolution.",
			Buckets:   []float64{0, 10, 20, 30, 40, 60, 70, 95, 110},
		}),
	}
}

// Registry returns the underlying registry for the /metrics handler.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Resolution records a completed resolution outcome.
func (m *Metrics) Resolution(outcome string) {
	if m == nil {
		return
	}
	m.resolutions.WithLabelValues(outcome).Inc()
}

// CacheEvent records a cache lookup result ("hit" or "miss").
func (m *Metrics) CacheEvent(result string) {
	if m == nil {
		return
	}
	m.cacheEvents.WithLabelValues(result).Inc()
}

// SearchRequest records one outbound search call.
func (m *Metrics) SearchRequest(status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.searchRequests.WithLabelValues(status).Inc()
	m.searchDuration.Observe(elapsed.Seconds())
}

// HTTPRequest records one served request.
func (m *Metrics) HTTPRequest(route string, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, code).Inc()
	m.httpDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}

// BatchSweep records how many records a sweep attempted.
func (m *Metrics) BatchSweep(attempted int) {
	if m == nil {
		return
	}
	m.batchSweepSize.Observe(float64(attempted))
}

// BestScore records the winning candidate score of an attempted resolution.
func (m *Metrics) BestScore(score int) {
	if m == nil {
		return
	}
	m.candidateScores.Observe(float64(score))
}
