package service

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/models"
)

func scrape(t *testing.T, m *MetricsService) string {
	t.Helper()
	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.RecordSubmission()
	m.RecordSubmission()
	m.RecordStatusTransition(models.RequestStatusPending, models.RequestStatusInProgress)
	m.RecordStatusTransition(models.RequestStatusCompleted, models.RequestStatusCompleted)
	m.ObserveStoreWrite(time.Millisecond, nil)
	m.ObserveStoreWrite(time.Millisecond, errors.New("disk full"))
	m.RecordExport("csv", nil)
	m.RecordScan("miss")

	body := scrape(t, m)
	require.Contains(t, body, "print_requests_submitted_total 2")
	require.Contains(t, body, `print_request_status_transitions_total{from="Pending",to="In Progress"} 1`)
	require.NotContains(t, body, `from="Completed"`)
	require.Contains(t, body, "print_request_store_write_errors_total 1")
	require.Contains(t, body, `print_request_exports_total{format="csv",outcome="ok"} 1`)
	require.Contains(t, body, `barcode_scans_total{outcome="miss"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.RecordSubmission()
	m.ObserveStoreWrite(time.Second, nil)
	m.ObserveHTTPRequest("GET", "/", 200, time.Second)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
