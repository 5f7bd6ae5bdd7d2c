package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KyleBrandon/safetemp/internal/monitor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	SOURCE_REQUEST = "request"
	SOURCE_SENSORS = "sensors"
)

type Metrics struct {
	registry          *prometheus.Registry
	evaluationsTotal  *prometheus.CounterVec
	sensorErrorsTotal prometheus.Counter
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		evaluationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "safetemp_evaluations_total",
			Help: "Total evaluations by reading source and result.",
		}, []string{"source", "result"}),
		sensorErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "safetemp_sensor_read_errors_total",
			Help: "Total failures reading the redundant sensor pair.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
	}

	registry.MustRegister(
		m.evaluationsTotal,
		m.sensorErrorsTotal,
		m.httpRequestsTotal,
		m.httpDuration,
	)

	return m
}

func (m *Metrics) ObserveEvaluation(source string, result monitor.Result) {
	if m == nil {
		return
	}

	m.evaluationsTotal.WithLabelValues(source, result.String()).Inc()
}

func (m *Metrics) ObserveSensorError() {
	if m == nil {
		return
	}

	m.sensorErrorsTotal.Inc()
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// WrapHandler records request counts and durations, labelled with the
// ServeMux pattern that matched.
func (m *Metrics) WrapHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		if m == nil {
			return
		}

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}

		m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
