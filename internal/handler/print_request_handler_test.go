package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

type printRequestServiceMock struct {
	submitted dto.SubmitPrintRequest
	query     dto.PrintRequestQuery
	request   *models.PrintRequest
	items     []models.PrintRequest
	err       error
}

func (m *printRequestServiceMock) Submit(ctx context.Context, req dto.SubmitPrintRequest) (*models.PrintRequest, error) {
	m.submitted = req
	return m.request, m.err
}

func (m *printRequestServiceMock) Lookup(ctx context.Context, id string) (*models.PrintRequest, error) {
	if m.request == nil || m.request.ID != id {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "Request ID not found")
	}
	return m.request, nil
}

func (m *printRequestServiceMock) List(ctx context.Context, query dto.PrintRequestQuery) ([]models.PrintRequest, *models.Pagination, error) {
	m.query = query
	return m.items, &models.Pagination{Page: 1, PageSize: 50, TotalCount: len(m.items)}, m.err
}

func TestPrintRequestHandlerSubmit(t *testing.T) {
	mock := &printRequestServiceMock{request: &models.PrintRequest{ID: "REQ-1", TotalPrintedPages: 320, Status: models.RequestStatusPending}}
	handler := NewPrintRequestHandler(mock, mock, "/api/v1")

	payload, _ := json.Marshal(dto.SubmitPrintRequest{Subject: "GCZ Chinese", NoOfPagesOriginal: 4})
	c, w := newGinContext(http.MethodPost, "/api/v1/requests", payload)
	handler.Submit(c)

	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, "GCZ Chinese", mock.submitted.Subject)
	var body dto.SubmitResponse
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &body))
	require.Equal(t, "REQ-1", body.Request.ID)
	require.Equal(t, "/api/v1/requests/REQ-1/printable", body.PrintableURL)
}

func TestPrintRequestHandlerSubmitRejectsMalformedJSON(t *testing.T) {
	handler := NewPrintRequestHandler(&printRequestServiceMock{}, nil, "/api/v1")

	c, w := newGinContext(http.MethodPost, "/api/v1/requests", []byte(`{"noOfPagesOriginal":"four"}`))
	handler.Submit(c)
	requireErrorCode(t, w, http.StatusBadRequest, appErrors.ErrValidation.Code)
}

func TestPrintRequestHandlerGet(t *testing.T) {
	mock := &printRequestServiceMock{request: &models.PrintRequest{ID: "REQ-1"}}
	handler := NewPrintRequestHandler(nil, mock, "/api/v1")

	c, w := newGinContext(http.MethodGet, "/api/v1/requests/REQ-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "REQ-1"}}
	handler.Get(c)
	require.Equal(t, http.StatusOK, w.Code)

	c, w = newGinContext(http.MethodGet, "/api/v1/requests/REQ-2", nil)
	c.Params = gin.Params{{Key: "id", Value: "REQ-2"}}
	handler.Get(c)
	requireErrorCode(t, w, http.StatusNotFound, appErrors.ErrNotFound.Code)
	require.Equal(t, "Request ID not found", decodeEnvelope(t, w).Error.Message)
}

func TestPrintRequestHandlerListBindsQuery(t *testing.T) {
	mock := &printRequestServiceMock{items: []models.PrintRequest{{ID: "REQ-1"}}}
	handler := NewPrintRequestHandler(nil, mock, "/api/v1")

	c, w := newGinContext(http.MethodGet, "/api/v1/requests?status=In+Progress&page=2&page_size=10", nil)
	handler.List(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, dto.PrintRequestQuery{Status: "In Progress", Page: 2, PageSize: 10}, mock.query)
	env := decodeEnvelope(t, w)
	require.EqualValues(t, 1, env.Pagination["total_count"])
	require.Equal(t, "In Progress", env.Meta["status_filter"])
}

func TestPrintRequestHandlerWithoutService(t *testing.T) {
	handler := NewPrintRequestHandler(nil, nil, "")
	c, w := newGinContext(http.MethodGet, "/api/v1/requests", nil)
	handler.List(c)
	requireErrorCode(t, w, http.StatusInternalServerError, appErrors.ErrInternal.Code)
}
