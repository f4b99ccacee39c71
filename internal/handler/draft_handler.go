package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/internal/service"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type draftService interface {
	CreateDraft(ctx context.Context) (*service.IntakeForm, error)
	GetDraft(ctx context.Context, id string) (*service.IntakeForm, error)
	UpdateDraftHeader(ctx context.Context, id string, patch dto.DraftHeaderPatch) (*service.IntakeForm, error)
	AddRow(ctx context.Context, id string) (*service.IntakeForm, error)
	RemoveRow(ctx context.Context, id, rowID string) (*service.IntakeForm, error)
	UpdateRow(ctx context.Context, id, rowID string, patch dto.DraftRowPatch) (*service.IntakeForm, error)
	SubmitDraft(ctx context.Context, id string) (*models.PrintRequest, error)
}

// DraftHandler exposes the server-side intake form.
type DraftHandler struct {
	service   draftService
	apiPrefix string
}

// NewDraftHandler constructs the handler.
func NewDraftHandler(svc draftService, apiPrefix string) *DraftHandler {
	return &DraftHandler{service: svc, apiPrefix: apiPrefix}
}

// Create godoc
// @Summary Start an intake form
// @Description Creates a draft pre-filled with defaults
// @Tags Drafts
// @Produce json
// @Success 201 {object} response.Envelope
// @Router /drafts [post]
func (h *DraftHandler) Create(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	form, err := h.service.CreateDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, form)
}

// Get godoc
// @Summary Get an intake form
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /drafts/{id} [get]
func (h *DraftHandler) Get(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	form, err := h.service.GetDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// UpdateHeader godoc
// @Summary Edit intake form header fields
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param payload body dto.DraftHeaderPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id} [patch]
func (h *DraftHandler) UpdateHeader(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var patch dto.DraftHeaderPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid draft payload"))
		return
	}
	form, err := h.service.UpdateDraftHeader(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// AddRow godoc
// @Summary Add a distribution row
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/rows [post]
func (h *DraftHandler) AddRow(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	form, err := h.service.AddRow(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// UpdateRow godoc
// @Summary Edit a distribution row
// @Tags Drafts
// @Accept json
// @Produce json
// @Param id path string true "Draft ID"
// @Param rowId path string true "Row ID"
// @Param payload body dto.DraftRowPatch true "Fields to change"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/rows/{rowId} [patch]
func (h *DraftHandler) UpdateRow(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var patch dto.DraftRowPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid row payload"))
		return
	}
	form, err := h.service.UpdateRow(c.Request.Context(), c.Param("id"), c.Param("rowId"), patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// RemoveRow godoc
// @Summary Remove a distribution row
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Param rowId path string true "Row ID"
// @Success 200 {object} response.Envelope
// @Router /drafts/{id}/rows/{rowId} [delete]
func (h *DraftHandler) RemoveRow(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	form, err := h.service.RemoveRow(c.Request.Context(), c.Param("id"), c.Param("rowId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, form, nil)
}

// Submit godoc
// @Summary Submit an intake form
// @Tags Drafts
// @Produce json
// @Param id path string true "Draft ID"
// @Success 201 {object} response.Envelope
// @Router /drafts/{id}/submit [post]
func (h *DraftHandler) Submit(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	stored, err := h.service.SubmitDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.SubmitResponse{Request: stored, PrintableURL: printableURL(h.apiPrefix, stored.ID)})
}
