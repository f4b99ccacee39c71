package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/middleware/requestid"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type staffService interface {
	UpdateDetails(ctx context.Context, id string, req dto.StaffUpdateRequest) (*models.PrintRequest, error)
	RecordPhoto(ctx context.Context, id string, slot models.PhotoSlot, payload []byte) (*models.PrintRequest, error)
	Complete(ctx context.Context, id string) (*models.PrintRequest, error)
}

type scanService interface {
	Scan(ctx context.Context, frame []byte) (*dto.ScanResult, error)
}

// StaffHandler exposes the printing room workflow.
type StaffHandler struct {
	staff  staffService
	scans  scanService
	logger *zap.Logger
}

// NewStaffHandler constructs the handler.
func NewStaffHandler(staff staffService, scans scanService, logger *zap.Logger) *StaffHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffHandler{staff: staff, scans: scans, logger: logger}
}

// Update godoc
// @Summary Record staff fields
// @Description Commits adjusted copies, staff remarks and machine page counts
// @Tags Staff
// @Accept json
// @Produce json
// @Param id path string true "Request ID"
// @Param payload body dto.StaffUpdateRequest true "Staff fields"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /staff/requests/{id} [patch]
func (h *StaffHandler) Update(c *gin.Context) {
	if h.staff == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.StaffUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid staff update payload"))
		return
	}
	updated, err := h.staff.UpdateDetails(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, updated, nil)
}

// UploadPhoto godoc
// @Summary Record a meter photo
// @Description Accepts multipart field "photo", JSON {"dataUrl"} or a raw image body
// @Tags Staff
// @Accept multipart/form-data,json,image/jpeg,image/png
// @Produce json
// @Param id path string true "Request ID"
// @Param slot path string true "before or after"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /staff/requests/{id}/photos/{slot} [post]
func (h *StaffHandler) UploadPhoto(c *gin.Context) {
	if h.staff == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	slot := models.PhotoSlot(c.Param("slot"))
	if slot != models.PhotoBefore && slot != models.PhotoAfter {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "photo slot must be before or after"))
		return
	}
	payload, err := readImagePayload(c, "photo")
	if err != nil {
		response.Error(c, err)
		return
	}
	updated, err := h.staff.RecordPhoto(c.Request.Context(), c.Param("id"), slot, payload)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.logger.Info("meter photo recorded", zap.String("id", updated.ID), zap.String("slot", string(slot)), zap.String("actor", actorName(c)), requestid.Field(c))
	response.JSON(c, http.StatusOK, updated, nil)
}

// Complete godoc
// @Summary Mark a job complete
// @Tags Staff
// @Produce json
// @Param id path string true "Request ID"
// @Success 200 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /staff/requests/{id}/complete [post]
func (h *StaffHandler) Complete(c *gin.Context) {
	if h.staff == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	done, err := h.staff.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	h.logger.Info("job completed", zap.String("id", done.ID), zap.String("actor", actorName(c)), requestid.Field(c))
	response.JSON(c, http.StatusOK, done, nil)
}

// Scan godoc
// @Summary Read a request id from a camera frame
// @Description Accepts multipart field "frame", JSON {"dataUrl"} or a raw image body
// @Tags Staff
// @Accept multipart/form-data,json,image/jpeg,image/png
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 501 {object} response.Envelope
// @Router /staff/scan [post]
func (h *StaffHandler) Scan(c *gin.Context) {
	if h.scans == nil {
		response.Error(c, appErrors.ErrUnsupported)
		return
	}
	frame, err := readImagePayload(c, "frame")
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.scans.Scan(c.Request.Context(), frame)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
