// Package observability exposes dispatcher lifecycle metrics through
// Prometheus.
package observability

import (
	"context"
	"net/http"

	"github.com/avral/tessera/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics aggregates dispatch counters and model timing histograms.
type Metrics struct {
	registry   *prometheus.Registry
	dispatches *prometheus.CounterVec
	cacheHits  *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

// NewMetrics creates and registers the dispatch metric set on a fresh
// registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		dispatches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tessera_dispatches_total",
				Help: "Dispatches by program, controller and outcome.",
			},
			[]string{"program", "controller", "outcome"},
		),
		cacheHits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tessera_cache_hits_total",
				Help: "Response cache hits by program.",
			},
			[]string{"program"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tessera_model_duration_seconds",
				Help:    "Model execution time by program.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"program"},
		),
	}
	m.registry.MustRegister(m.dispatches, m.cacheHits, m.duration)
	return m
}

// Hooks returns lifecycle hooks feeding these metrics. Wire them with
// dispatch.WithLifecycleHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCacheHit: func(_ context.Context, e *domain.DispatchEvent) {
			m.cacheHits.WithLabelValues(e.Program).Inc()
		},
		OnModelReturn: func(_ context.Context, e *domain.DispatchEvent) {
			m.duration.WithLabelValues(e.Program).Observe(e.Duration.Seconds())
		},
		OnResponse: func(_ context.Context, e *domain.DispatchEvent) {
			outcome := "ok"
			if e.Err != nil {
				outcome = "error"
			}
			m.dispatches.WithLabelValues(e.Program, e.Controller, outcome).Inc()
		},
	}
}

// Handler returns the exposition endpoint for this metric set.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
