package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/printform"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type printableService interface {
	View(ctx context.Context, id string) (*printform.Form, error)
	PDF(ctx context.Context, id string) ([]byte, error)
}

// PrintableHandler serves the paper form of a request.
type PrintableHandler struct {
	service printableService
}

// NewPrintableHandler constructs the handler.
func NewPrintableHandler(svc printableService) *PrintableHandler {
	return &PrintableHandler{service: svc}
}

// View godoc
// @Summary Printable form content
// @Tags Requests
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/printable [get]
func (h *PrintableHandler) View(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	form, err := h.service.View(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// PDF godoc
// @Summary Printable form as PDF
// @Tags Requests
// @Produce application/pdf
// @Param id path string true "Request ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /requests/{id}/printable.pdf [get]
func (h *PrintableHandler) PDF(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	id := c.Param("id")
	data, err := h.service.PDF(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Inline(c, id+".pdf", "application/pdf", data)
}
