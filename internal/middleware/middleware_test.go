package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

type validatorStub struct {
	claims *models.JWTClaims
}

func (v validatorStub) ValidateToken(token string) (*models.JWTClaims, error) {
	if token != "good" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token")
	}
	return v.claims, nil
}

type observerStub struct {
	paths    []string
	statuses []int
}

func (o *observerStub) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	o.paths = append(o.paths, path)
	o.statuses = append(o.statuses, status)
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/staff/:id", func(c *gin.Context) {
		name := ""
		if claims := StaffFromContext(c); claims != nil {
			name = claims.Name
		}
		c.String(http.StatusOK, name)
	})
	return r
}

func serve(r http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/staff/REQ-1", nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestStaffOnlyEnabledRequiresToken(t *testing.T) {
	r := newRouter(StaffOnly(true, validatorStub{claims: &models.JWTClaims{Name: "Mrs Chan", Role: models.StaffRole}}))

	require.Equal(t, http.StatusUnauthorized, serve(r, "").Code)
	require.Equal(t, http.StatusUnauthorized, serve(r, "Bearer bad").Code)
	require.Equal(t, http.StatusUnauthorized, serve(r, "Basic good").Code)

	w := serve(r, "Bearer good")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Mrs Chan", w.Body.String())
}

func TestStaffOnlyDisabledAttachesOptionalClaims(t *testing.T) {
	r := newRouter(StaffOnly(false, validatorStub{claims: &models.JWTClaims{Name: "Mrs Chan", Role: models.StaffRole}}))

	w := serve(r, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Body.String())

	require.Equal(t, "Mrs Chan", serve(r, "Bearer good").Body.String())
	require.Equal(t, http.StatusOK, serve(r, "Bearer bad").Code)
}

func TestMetricsUsesRouteTemplate(t *testing.T) {
	observer := &observerStub{}
	r := newRouter(Metrics(observer))

	serve(r, "")
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	r.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, []string{"/staff/:id", "unmatched"}, observer.paths)
	require.Equal(t, []int{http.StatusOK, http.StatusNotFound}, observer.statuses)
}

func TestResponseMetaRecordsProcessingTime(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	var meta map[string]interface{}
	r.Use(func(c *gin.Context) {
		c.Next()
		meta = ExtractMeta(c)
	})
	r.Use(WithResponseMeta())
	r.GET("/", func(c *gin.Context) {
		SetMeta(c, "status_filter", "Pending")
		c.Status(http.StatusOK)
	})
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, "Pending", meta["status_filter"])
	require.Contains(t, meta, "processing_time_ms")
}
