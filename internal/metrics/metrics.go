// Package metrics exposes Prometheus instrumentation for the storefront.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "floramia",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "floramia",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	// OrdersCreated counts persisted orders.
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "floramia",
		Subsystem: "orders",
		Name:      "created_total",
		Help:      "Total orders created.",
	})

	// WebhookEvents counts inbound payment webhook events by outcome.
	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "floramia",
			Subsystem: "payments",
			Name:      "webhook_events_total",
			Help:      "Payment webhook events by result.",
		},
		[]string{"result"}, // "paid" | "failed" | "ignored" | "unmatched" | "error"
	)
)

// DefaultRegistry is the registry scraped at /metrics.
var DefaultRegistry = prometheus.NewRegistry()

func init() {
	DefaultRegistry.MustRegister(collectors.NewGoCollector())
	DefaultRegistry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	DefaultRegistry.MustRegister(
		RequestDuration,
		RequestTotal,
		OrdersCreated,
		WebhookEvents,
	)
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records duration and count for every request. The path label
// is the matched route pattern ("/orders/{id}"), not the raw URL, so label
// cardinality stays bounded by the route table.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rr := &responseRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rr, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		status := strconv.Itoa(rr.status)
		RequestDuration.WithLabelValues(r.Method, path, status).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(r.Method, path, status).Inc()
	})
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.HandlerFunc {
	h := promhttp.HandlerFor(DefaultRegistry, promhttp.HandlerOpts{})
	return h.ServeHTTP
}
