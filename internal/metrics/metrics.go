// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so that tests can build as many
// instances as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	groceryAggregations prometheus.Counter
	groceryCache        *prometheus.CounterVec
	groceryDuration     prometheus.Histogram
	groceryItems        prometheus.Histogram
	groceryExports      *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		groceryAggregations: factory.NewCounter(prometheus.CounterOpts{
			Name: "grocery_aggregations_total",
			Help: "Grocery lists computed from meal plans",
		}),
		groceryCache: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grocery_cache_requests_total",
				Help: "Grocery list cache lookups by result",
			},
			[]string{"result"},
		),
		groceryDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "grocery_aggregation_duration_seconds",
			Help:    "Time spent aggregating a meal plan",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
		groceryItems: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "grocery_list_items",
			Help:    "Number of items in a computed grocery list",
			Buckets: prometheus.LinearBuckets(0, 10, 10),
		}),
		groceryExports: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "grocery_exports_total",
				Help: "Checklist exports to object storage by outcome",
			},
			[]string{"outcome"},
		),
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Middleware records request counts and latency keyed by route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// ObserveAggregation records one grocery computation. The recording
// methods below are no-ops on a nil *Metrics.
func (m *Metrics) ObserveAggregation(elapsed time.Duration, items int) {
	if m == nil {
		return
	}
	m.groceryAggregations.Inc()
	m.groceryDuration.Observe(elapsed.Seconds())
	m.groceryItems.Observe(float64(items))
}

// CacheResult counts a grocery cache lookup.
func (m *Metrics) CacheResult(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.groceryCache.WithLabelValues("hit").Inc()
		return
	}
	m.groceryCache.WithLabelValues("miss").Inc()
}

// ExportOutcome counts checklist exports, e.g. "uploaded" or "failed".
func (m *Metrics) ExportOutcome(outcome string) {
	if m == nil {
		return
	}
	m.groceryExports.WithLabelValues(outcome).Inc()
}
