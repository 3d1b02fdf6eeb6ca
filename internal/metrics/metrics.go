package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Business metrics
	chartsTotal       *prometheus.CounterVec
	ephemerisCalls    *prometheus.CounterVec
	ephemerisDuration *prometheus.HistogramVec
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Business metrics
	r.chartsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "natal_charts_total",
			Help: "Total number of chart calculations",
		},
		[]string{"status"},
	)
	r.ephemerisCalls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "natal_ephemeris_calls_total",
			Help: "Total number of ephemeris provider calls",
		},
		[]string{"call", "status"},
	)
	r.ephemerisDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "natal_ephemeris_call_duration_seconds",
			Help:    "Ephemeris provider call duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"call"},
	)

	reg.MustRegister(r.chartsTotal)
	reg.MustRegister(r.ephemerisCalls)
	reg.MustRegister(r.ephemerisDuration)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// RecordChart records a chart calculation outcome.
func (r *Registry) RecordChart(status string) {
	r.chartsTotal.WithLabelValues(status).Inc()
}

// RecordEphemerisCall records a single provider call.
func (r *Registry) RecordEphemerisCall(call, status string, duration float64) {
	r.ephemerisCalls.WithLabelValues(call, status).Inc()
	r.ephemerisDuration.WithLabelValues(call).Observe(duration)
}

// Handler returns an HTTP handler exposing the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
