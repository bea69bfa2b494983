package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the API.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	mutationTotal   *prometheus.CounterVec
	persistFailures prometheus.Counter
	catalogSize     prometheus.Gauge
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	mutationTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "selection_mutations_total",
		Help: "Total selection store mutations by operation",
	}, []string{"operation"})

	persistFailures := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "selection_persist_failures_total",
		Help: "Total failed selection snapshot writes",
	})

	catalogSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "catalog_courses",
		Help: "Number of courses in the loaded catalog",
	})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, mutationTotal, persistFailures, catalogSize, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:        registry,
		handler:         handler,
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		mutationTotal:   mutationTotal,
		persistFailures: persistFailures,
		catalogSize:     catalogSize,
	}
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := fmt.Sprintf("%d", status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
}

// RecordMutation counts a selection store mutation.
func (m *MetricsService) RecordMutation(operation string) {
	if m == nil {
		return
	}
	m.mutationTotal.WithLabelValues(operation).Inc()
}

// RecordPersistFailure counts a failed snapshot write.
func (m *MetricsService) RecordPersistFailure() {
	if m == nil {
		return
	}
	m.persistFailures.Inc()
}

// SetCatalogSize reports the loaded catalog size.
func (m *MetricsService) SetCatalogSize(n int) {
	if m == nil {
		return
	}
	m.catalogSize.Set(float64(n))
}
