// Package metrics provides the Prometheus metrics of the verification service.
package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics contains all Prometheus metrics of the service. A nil *Metrics is
// valid and records nothing.
type Metrics struct {
	Verifications  *prometheus.CounterVec
	ModelAttempts  *prometheus.CounterVec
	ModelDuration  *prometheus.HistogramVec
	LookupResults  *prometheus.CounterVec
	LookupDuration *prometheus.HistogramVec
	LookupCache    *prometheus.CounterVec
	HTTPRequests   *prometheus.CounterVec
	HTTPDuration   *prometheus.HistogramVec
}

// New creates the metrics and registers them on registry.
func New(registry prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Verifications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugverify_verifications_total",
				Help: "Verifications partitioned by outcome (verified, suspect, fallback).",
			},
			[]string{"outcome"},
		),
		ModelAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugverify_model_attempts_total",
				Help: "Model invocations partitioned by provider and result.",
			},
			[]string{"provider", "result"},
		),
		ModelDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugverify_model_duration_seconds",
				Help:    "Time taken by a single model invocation.",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 9), // 250ms to ~64s
			},
			[]string{"provider"},
		),
		LookupResults: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugverify_lookups_total",
				Help: "Lookups partitioned by source and result (found, not_found, unavailable).",
			},
			[]string{"source", "result"},
		),
		LookupDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugverify_lookup_duration_seconds",
				Help:    "Time taken by a lookup against one source.",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
			},
			[]string{"source"},
		),
		LookupCache: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugverify_lookup_cache_total",
				Help: "Lookup cache accesses partitioned by source and hit/miss.",
			},
			[]string{"source", "result"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "drugverify_http_requests_total",
				Help: "HTTP requests partitioned by route, method and status code.",
			},
			[]string{"route", "method", "code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "drugverify_http_request_duration_seconds",
				Help:    "HTTP request latency partitioned by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}

	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}
	return m, nil
}

// RecordVerification counts a finished verification.
func (m *Metrics) RecordVerification(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}

// RecordModelAttempt counts one model invocation and its latency.
func (m *Metrics) RecordModelAttempt(provider, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.ModelAttempts.WithLabelValues(provider, result).Inc()
	m.ModelDuration.WithLabelValues(provider).Observe(d.Seconds())
}

// RecordLookup counts one lookup and its latency.
func (m *Metrics) RecordLookup(source, result string, d time.Duration) {
	if m == nil {
		return
	}
	m.LookupResults.WithLabelValues(source, result).Inc()
	m.LookupDuration.WithLabelValues(source).Observe(d.Seconds())
}

// RecordCache counts one lookup cache access.
func (m *Metrics) RecordCache(source string, hit bool) {
	if m == nil {
		return
	}
	result := "miss"
	if hit {
		result = "hit"
	}
	m.LookupCache.WithLabelValues(source, result).Inc()
}

// RecordHTTPRequest counts one served HTTP request.
func (m *Metrics) RecordHTTPRequest(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(d.Seconds())
}

// Describe implements the prometheus.Collector interface.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.Verifications.Describe(ch)
	m.ModelAttempts.Describe(ch)
	m.ModelDuration.Describe(ch)
	m.LookupResults.Describe(ch)
	m.LookupDuration.Describe(ch)
	m.LookupCache.Describe(ch)
	m.HTTPRequests.Describe(ch)
	m.HTTPDuration.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.Verifications.Collect(ch)
	m.ModelAttempts.Collect(ch)
	m.ModelDuration.Collect(ch)
	m.LookupResults.Collect(ch)
	m.LookupDuration.Collect(ch)
	m.LookupCache.Collect(ch)
	m.HTTPRequests.Collect(ch)
	m.HTTPDuration.Collect(ch)
}
