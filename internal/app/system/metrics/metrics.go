// internal/app/system/metrics/metrics.go

// Package metrics registers the Prometheus collectors for content reads,
// admin writes and HTTP traffic, and serves them on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// fetchTotal counts fetches by entity type and by which data was served
	// (live, fallback, empty).
	fetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "researchhub_fetch_total",
			Help: "Content fetches by entity type and result source.",
		},
		[]string{"entity_type", "source"},
	)

	// fetchFailures counts fetches whose store query failed or timed out.
	fetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "researchhub_fetch_failures_total",
			Help: "Content fetches whose store query failed or timed out.",
		},
		[]string{"entity_type", "reason"},
	)

	fetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "researchhub_fetch_duration_seconds",
			Help:    "Duration of content store queries in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"entity_type"},
	)

	mutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "researchhub_mutations_total",
			Help: "Admin content mutations by entity type, operation and outcome.",
		},
		[]string{"entity_type", "op", "result"},
	)

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "researchhub_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "researchhub_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// ObserveFetch records one completed fetch.
func ObserveFetch(entityType, source string, d time.Duration) {
	fetchTotal.WithLabelValues(entityType, source).Inc()
	fetchDuration.WithLabelValues(entityType).Observe(d.Seconds())
}

// ObserveFetchFailure records a failed or timed-out store query.
func ObserveFetchFailure(entityType, reason string) {
	fetchFailures.WithLabelValues(entityType, reason).Inc()
}

// ObserveMutation records the outcome of a create, update or delete.
func ObserveMutation(entityType, op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	mutationsTotal.WithLabelValues(entityType, op, result).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and durations. The route label is the
// chi route pattern, so ids in paths do not blow up cardinality.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.status)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
