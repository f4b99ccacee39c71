package service

import (
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/print-request-api/internal/models"
)

// MetricsService encapsulates Prometheus instrumentation for the print room.
type MetricsService struct {
	registry          *prometheus.Registry
	handler           http.Handler
	requestDuration   *prometheus.HistogramVec
	requestTotal      *prometheus.CounterVec
	submissions       prometheus.Counter
	statusTransitions *prometheus.CounterVec
	storeWrite        prometheus.Observer
	storeWriteErrors  prometheus.Counter
	exports           *prometheus.CounterVec
	scans             *prometheus.CounterVec
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

	submissions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "print_requests_submitted_total",
		Help: "Print requests submitted by teachers",
	})

	statusTransitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "print_request_status_transitions_total",
		Help: "Status changes applied by staff",
	}, []string{"from", "to"})

	storeWrite := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "print_request_store_write_seconds",
		Help:    "Latency of write-through persistence of the request collection",
		Buckets: prometheus.DefBuckets,
	})

	storeWriteErrors := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "print_request_store_write_errors_total",
		Help: "Failed write-through persistence attempts",
	})

	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "print_request_exports_total",
		Help: "Rendered exports by format and outcome",
	}, []string{"format", "outcome"})

	scans := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "barcode_scans_total",
		Help: "Barcode scan attempts by outcome",
	}, []string{"outcome"})

	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "goroutines_total",
		Help: "Total number of goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry.MustRegister(requestDuration, requestTotal, submissions, statusTransitions, storeWrite, storeWriteErrors, exports, scans, goroutines)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return &MetricsService{
		registry:          registry,
		handler:           handler,
		requestDuration:   requestDuration,
		requestTotal:      requestTotal,
		submissions:       submissions,
		statusTransitions: statusTransitions,
		storeWrite:        storeWrite,
		storeWriteErrors:  storeWriteErrors,
		exports:           exports,
		scans:             scans,
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

// RecordSubmission counts a newly stored request.
func (m *MetricsService) RecordSubmission() {
	if m == nil {
		return
	}
	m.submissions.Inc()
}

// RecordStatusTransition counts a status change; unchanged statuses are ignored.
func (m *MetricsService) RecordStatusTransition(from, to models.RequestStatus) {
	if m == nil || from == to {
		return
	}
	m.statusTransitions.WithLabelValues(string(from), string(to)).Inc()
}

// ObserveStoreWrite tracks write-through persistence.
func (m *MetricsService) ObserveStoreWrite(duration time.Duration, err error) {
	if m == nil {
		return
	}
	m.storeWrite.Observe(duration.Seconds())
	if err != nil {
		m.storeWriteErrors.Inc()
	}
}

// RecordExport counts an export attempt.
func (m *MetricsService) RecordExport(format string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.exports.WithLabelValues(format, outcome).Inc()
}

// RecordScan counts a scan attempt by outcome label.
func (m *MetricsService) RecordScan(outcome string) {
	if m == nil {
		return
	}
	m.scans.WithLabelValues(outcome).Inc()
}
