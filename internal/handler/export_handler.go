package handler

import (
	"context"
	"mime"
	"net/http"
	"os"
	"path"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/service"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/response"
)

type exportService interface {
	CSV(ctx context.Context) (*service.ExportFile, error)
	PDF(ctx context.Context) (*service.ExportFile, error)
	Publish(ctx context.Context, req dto.PublishExportRequest) (*dto.ExportLink, error)
	Open(token string) (*os.File, string, error)
}

// ExportHandler serves CSV/PDF downloads of the request collection.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(svc exportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// CSV godoc
// @Summary Download all requests as CSV
// @Tags Exports
// @Produce text/csv
// @Success 200 {file} file
// @Failure 409 {object} response.Envelope
// @Router /staff/export.csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	h.download(c, dto.ExportFormatCSV)
}

// PDF godoc
// @Summary Download all requests as PDF
// @Tags Exports
// @Produce application/pdf
// @Success 200 {file} file
// @Failure 409 {object} response.Envelope
// @Router /staff/export.pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	h.download(c, dto.ExportFormatPDF)
}

// Publish godoc
// @Summary Store an export and return a signed link
// @Tags Exports
// @Accept json
// @Produce json
// @Param payload body dto.PublishExportRequest true "Format"
// @Success 201 {object} response.Envelope
// @Router /staff/exports [post]
func (h *ExportHandler) Publish(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.PublishExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	link, err := h.service.Publish(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Download godoc
// @Summary Download a published export
// @Tags Exports
// @Produce octet-stream
// @Param token path string true "Signed token"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *ExportHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	f, name, err := h.service.Open(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export"))
		return
	}
	contentType := mime.TypeByExtension(path.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, info.Size(), contentType, f, map[string]string{
		"Content-Disposition": response.Disposition("attachment", name),
	})
}

func (h *ExportHandler) download(c *gin.Context, format dto.ExportFormat) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var (
		file *service.ExportFile
		err  error
	)
	if format == dto.ExportFormatPDF {
		file, err = h.service.PDF(c.Request.Context())
	} else {
		file, err = h.service.CSV(c.Request.Context())
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Data)
}
