package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instrumentation for the HTTP server.
// Each Metrics value carries its own registry so tests can construct
// independent instances without duplicate-registration panics.
type Metrics struct {
	registry       *prometheus.Registry
	handler        http.Handler
	activeRequests prometheus.Gauge
	requestsTotal  *prometheus.CounterVec
	estimations    *prometheus.CounterVec
	duration       *prometheus.HistogramVec
}

// NewMetrics creates and registers the server metrics.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	m := &Metrics{
		registry: reg,
		activeRequests: factory.NewGauge(prometheus.GaugeOpts{
			Name: "phicalc_active_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phicalc_requests_total",
			Help: "Total number of HTTP requests received.",
		}, []string{"path", "method"}),
		estimations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "phicalc_estimations_total",
			Help: "Total number of estimation runs served, by representation and outcome.",
		}, []string{"width", "outcome"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "phicalc_estimation_duration_seconds",
			Help:    "Wall-clock duration of estimation runs.",
			Buckets: prometheus.DefBuckets,
		}, []string{"width"}),
	}

	// Expose Go runtime metrics (go_goroutines, go_memstats_*) alongside
	// the application's own series.
	reg.MustRegister(collectors.NewGoCollector())

	m.handler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	return m
}

// IncrementActiveRequests increases the in-flight request gauge.
func (m *Metrics) IncrementActiveRequests() {
	m.activeRequests.Inc()
}

// DecrementActiveRequests decreases the in-flight request gauge.
func (m *Metrics) DecrementActiveRequests() {
	m.activeRequests.Dec()
}

// CountRequest records one received request.
func (m *Metrics) CountRequest(path, method string) {
	m.requestsTotal.WithLabelValues(path, method).Inc()
}

// CountEstimation records one completed estimation run.
func (m *Metrics) CountEstimation(width, outcome string) {
	m.estimations.WithLabelValues(width, outcome).Inc()
}

// ObserveEstimationDuration records the duration of one estimation run.
func (m *Metrics) ObserveEstimationDuration(width string, seconds float64) {
	m.duration.WithLabelValues(width).Observe(seconds)
}

// WritePrometheus serves the metrics in Prometheus exposition format.
func (m *Metrics) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	m.handler.ServeHTTP(w, r)
}
