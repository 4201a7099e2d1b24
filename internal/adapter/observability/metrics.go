// Package observability provides logging, metrics, and tracing.
package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "method", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"route", "method"},
	)

	GenerationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generation_requests_total",
			Help: "Total number of generation requests by model and outcome",
		},
		[]string{"model", "status"},
	)
	GenerationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generation_request_duration_seconds",
			Help:    "Generation request duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"model"},
	)

	InsightRefreshTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "insight_refresh_total",
			Help: "Insight refresh outcomes per run, by status",
		},
		[]string{"status"},
	)
	AssessmentsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "assessments_created_total",
			Help: "Total number of saved quiz assessments",
		},
	)
)

// InitMetrics registers all collectors once per process.
func InitMetrics() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		HTTPRequestDuration,
		GenerationRequestsTotal,
		GenerationRequestDuration,
		InsightRefreshTotal,
		AssessmentsCreatedTotal,
	)
}

// HTTPMetricsMiddleware records request counts and latencies per route.
func HTTPMetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		HTTPRequestsTotal.WithLabelValues(route, r.Method, strconv.Itoa(ww.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
	})
}
