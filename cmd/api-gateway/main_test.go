package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/handler"
	"github.com/noah-isme/print-request-api/internal/middleware"
	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/pkg/config"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
)

type rejectAll struct{}

func (rejectAll) ValidateToken(string) (*models.JWTClaims, error) {
	return nil, errors.New("invalid token")
}

func newTestRouter(staffAuth bool) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r, handlers{
		requests:  handler.NewPrintRequestHandler(nil, nil, "/api/v1"),
		drafts:    handler.NewDraftHandler(nil, "/api/v1"),
		printable: handler.NewPrintableHandler(nil),
		staff:     handler.NewStaffHandler(nil, nil, nil),
		dashboard: handler.NewDashboardHandler(nil),
		exports:   handler.NewExportHandler(nil),
		auth:      handler.NewAuthHandler(nil),
		metrics:   handler.NewMetricsHandler(nil, nil),
	}, routeOptions{
		apiPrefix:  "/api/v1",
		staffGuard: middleware.StaffOnly(staffAuth, rejectAll{}),
	})
	return r
}

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRoutesStaffGuard(t *testing.T) {
	guarded := newTestRouter(true)
	require.Equal(t, http.StatusUnauthorized, serve(guarded, http.MethodGet, "/api/v1/staff/requests/REQ-1").Code)
	require.Equal(t, http.StatusUnauthorized, serve(guarded, http.MethodGet, "/api/v1/staff/export.csv").Code)

	// Public routes stay reachable; nil services answer 500 rather than 401.
	require.Equal(t, http.StatusInternalServerError, serve(guarded, http.MethodGet, "/api/v1/requests/REQ-1/printable").Code)
	require.Equal(t, http.StatusOK, serve(guarded, http.MethodGet, "/health").Code)

	open := newTestRouter(false)
	require.Equal(t, http.StatusInternalServerError, serve(open, http.MethodGet, "/api/v1/staff/requests/REQ-1").Code)
}

func TestRoutesDocsOnlyWhenEnabled(t *testing.T) {
	r := newTestRouter(false)
	require.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/docs/index.html").Code)
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	cfg := &config.Config{Store: config.StoreConfig{Driver: kvstore.DriverFile, Dir: t.TempDir()}}
	backend, err := openBackend(ctx, cfg, nil, logger)
	require.NoError(t, err)
	require.IsType(t, &kvstore.FileBackend{}, backend)
	require.NoError(t, storeCheck(backend, "printRequests")(ctx))

	cfg.Store.Driver = kvstore.DriverMemory
	backend, err = openBackend(ctx, cfg, nil, logger)
	require.NoError(t, err)
	require.IsType(t, &kvstore.MemoryBackend{}, backend)

	cfg.Store.Driver = kvstore.DriverRedis
	_, err = openBackend(ctx, cfg, nil, logger)
	require.Error(t, err)

	cfg.Store.Driver = "mongo"
	_, err = openBackend(ctx, cfg, nil, logger)
	require.ErrorContains(t, err, "unknown STORE_DRIVER")
}
