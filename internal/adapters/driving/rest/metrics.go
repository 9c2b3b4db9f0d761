package rest

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "jukebox"

// Metrics holds the Prometheus collectors for the HTTP API and the agent graph.
type Metrics struct {
	registry    *prometheus.Registry
	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	nodeLatency *prometheus.HistogramVec
	nodeErrors  *prometheus.CounterVec
	asks        *prometheus.CounterVec
}

// NewMetrics registers all collectors on registry.
// A nil registry gets a fresh one with the Go and process collectors.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	if registry == nil {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "HTTP requests by route, method and status code",
			},
			[]string{"route", "method", "code"},
		),
		latency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "HTTP request latency by route",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"route"},
		),
		nodeLatency: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "node_duration_seconds",
				Help:      "Time spent in each agent graph node",
				Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10), // 50ms to ~25s
			},
			[]string{"node"},
		),
		nodeErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "node_errors_total",
				Help:      "Agent graph node failures",
			},
			[]string{"node"},
		),
		asks: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "agent",
				Name:      "asks_total",
				Help:      "Completed agent runs by query type and whether tracks were found",
			},
			[]string{"query_type", "found"},
		),
	}
}

// ObserveNode records one graph step. It matches graph.Observer.
func (m *Metrics) ObserveNode(node string, elapsed time.Duration, err error) {
	m.nodeLatency.WithLabelValues(node).Observe(elapsed.Seconds())
	if err != nil {
		m.nodeErrors.WithLabelValues(node).Inc()
	}
}

func (m *Metrics) observeAsk(queryType string, found bool) {
	f := "false"
	if found {
		f = "true"
	}
	m.asks.WithLabelValues(queryType, f).Inc()
}

func (m *Metrics) observeRequest(route, method, code string, elapsed time.Duration) {
	m.requests.WithLabelValues(route, method, code).Inc()
	m.latency.WithLabelValues(route).Observe(elapsed.Seconds())
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
