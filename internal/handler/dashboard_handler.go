package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/print-request-api/internal/dto"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type dashboardService interface {
	Open(ctx context.Context) dto.DashboardState
	Search(ctx context.Context, sid, text string) (dto.DashboardState, error)
	Complete(ctx context.Context, sid string) (dto.DashboardState, error)
	State(ctx context.Context, sid string) (dto.DashboardState, error)
	Close(sid string) error
}

// DashboardHandler wires staff dashboard sessions to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Open godoc
// @Summary Open a staff dashboard session
// @Tags Dashboard
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /staff/sessions [post]
func (h *DashboardHandler) Open(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.Created(c, h.service.Open(c.Request.Context()))
}

// State godoc
// @Summary Current dashboard view
// @Tags Dashboard
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /staff/sessions/{sid} [get]
func (h *DashboardHandler) State(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	state, err := h.service.State(c.Request.Context(), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Search godoc
// @Summary Update the dashboard search box
// @Tags Dashboard
// @Accept json
// @Produce json
// @Param sid path string true "Session ID"
// @Param payload body dto.DashboardSearchRequest true "Search text"
// @Success 200 {object} response.Envelope
// @Router /staff/sessions/{sid}/search [put]
func (h *DashboardHandler) Search(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.DashboardSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid search payload"))
		return
	}
	state, err := h.service.Search(c.Request.Context(), c.Param("sid"), req.Query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Complete godoc
// @Summary Complete the selected job
// @Tags Dashboard
// @Produce json
// @Param sid path string true "Session ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /staff/sessions/{sid}/complete [post]
func (h *DashboardHandler) Complete(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	state, err := h.service.Complete(c.Request.Context(), c.Param("sid"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Close godoc
// @Summary Close a dashboard session
// @Tags Dashboard
// @Param sid path string true "Session ID"
// @Success 204
// @Router /staff/sessions/{sid} [delete]
func (h *DashboardHandler) Close(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	if err := h.service.Close(c.Param("sid")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
