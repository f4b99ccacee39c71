package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/middleware"
	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type printRequestSubmitter interface {
	Submit(ctx context.Context, req dto.SubmitPrintRequest) (*models.PrintRequest, error)
}

type printRequestReader interface {
	Lookup(ctx context.Context, id string) (*models.PrintRequest, error)
	List(ctx context.Context, query dto.PrintRequestQuery) ([]models.PrintRequest, *models.Pagination, error)
}

// PrintRequestHandler serves the teacher submission and request lookups.
type PrintRequestHandler struct {
	intake    printRequestSubmitter
	requests  printRequestReader
	apiPrefix string
}

// NewPrintRequestHandler constructs the handler.
func NewPrintRequestHandler(intake printRequestSubmitter, requests printRequestReader, apiPrefix string) *PrintRequestHandler {
	return &PrintRequestHandler{intake: intake, requests: requests, apiPrefix: apiPrefix}
}

// Submit godoc
// @Summary Submit a print request
// @Description Stores the form as a Pending request and returns where to print it
// @Tags Requests
// @Accept json
// @Produce json
// @Param payload body dto.SubmitPrintRequest true "Print request"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /requests [post]
func (h *PrintRequestHandler) Submit(c *gin.Context) {
	if h.intake == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.SubmitPrintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid print request payload"))
		return
	}
	stored, err := h.intake.Submit(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SubmitResponse{Request: stored, PrintableURL: printableURL(h.apiPrefix, stored.ID)})
}

// List godoc
// @Summary List print requests
// @Tags Requests
// @Produce json
// @Param status query string false "Pending, In Progress or Completed"
// @Param page query int false "Page"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /staff/requests [get]
func (h *PrintRequestHandler) List(c *gin.Context) {
	if h.requests == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.PrintRequestQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid query parameters"))
		return
	}
	items, pagination, err := h.requests.List(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	if query.Status != "" {
		middleware.SetMeta(c, "status_filter", query.Status)
	}
	response.JSON(c, http.StatusOK, items, pagination, middleware.ExtractMeta(c))
}

// Get godoc
// @Summary Look up a print request by id
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /staff/requests/{id} [get]
func (h *PrintRequestHandler) Get(c *gin.Context) {
	if h.requests == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req, err := h.requests.Lookup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, req, nil)
}
