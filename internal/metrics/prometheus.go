package metrics

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"family-meal-planner/internal/shared"
)

// Collectors are the Prometheus series exported on /metrics.
type Collectors struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
	aiCalls      *prometheus.CounterVec
	aiDuration   *prometheus.HistogramVec
}

// NewCollectors registers all series on a fresh registry, together with
// the Go runtime and process collectors.
func NewCollectors() *Collectors {
	c := &Collectors{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		aiCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ai_calls_total",
			Help: "AI gateway calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		aiDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ai_call_duration_seconds",
			Help:    "AI gateway call latency.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		}, []string{"operation"}),
	}
	c.registry.MustRegister(
		c.httpRequests, c.httpDuration, c.aiCalls, c.aiDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// ObserveHTTP counts one finished request.
func (c *Collectors) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// ObserveAICall counts one gateway call.
func (c *Collectors) ObserveAICall(meta shared.CallMeta) {
	c.aiCalls.WithLabelValues(meta.Operation, meta.Outcome).Inc()
	if meta.Latency > 0 {
		c.aiDuration.WithLabelValues(meta.Operation).Observe(meta.Latency.Seconds())
	}
}

// Handler serves the registry in the Prometheus text format.
func (c *Collectors) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Recorder sends gateway calls to Prometheus and, when a store is set, to
// the ai_calls table.
type Recorder struct {
	store      *Store
	collectors *Collectors
}

// NewRecorder combines the sinks; either may be nil.
func NewRecorder(store *Store, collectors *Collectors) *Recorder {
	return &Recorder{store: store, collectors: collectors}
}

// RecordCall never fails; storage errors are logged.
func (r *Recorder) RecordCall(ctx context.Context, meta shared.CallMeta) {
	if r.collectors != nil {
		r.collectors.ObserveAICall(meta)
	}
	if r.store != nil {
		if err := r.store.Record(ctx, MapCall(meta)); err != nil {
			slog.Warn("failed to record ai call", "operation", meta.Operation, "error", err)
		}
	}
}
