package handler

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/service"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

type exportServiceMock struct {
	file      *service.ExportFile
	err       error
	published dto.PublishExportRequest
	openPath  string
}

func (m *exportServiceMock) CSV(ctx context.Context) (*service.ExportFile, error) {
	return m.file, m.err
}

func (m *exportServiceMock) PDF(ctx context.Context) (*service.ExportFile, error) {
	return m.file, m.err
}

func (m *exportServiceMock) Publish(ctx context.Context, req dto.PublishExportRequest) (*dto.ExportLink, error) {
	m.published = req
	return &dto.ExportLink{Filename: "printing_requests_2024-03-05.csv", URL: "/api/v1/exports/tok"}, m.err
}

func (m *exportServiceMock) Open(token string) (*os.File, string, error) {
	if token != "tok" {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export link invalid or expired")
	}
	f, err := os.Open(m.openPath)
	return f, filepath.Base(m.openPath), err
}

func TestExportHandlerCSV(t *testing.T) {
	handler := NewExportHandler(&exportServiceMock{file: &service.ExportFile{
		Filename:    "printing_requests_2024-03-05.csv",
		ContentType: "text/csv;charset=utf-8",
		Data:        []byte(`"ID"` + "\n" + `"REQ-1"`),
	}})

	c, w := newGinContext(http.MethodGet, "/staff/export.csv", nil)
	handler.CSV(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `attachment; filename="printing_requests_2024-03-05.csv"`, w.Header().Get("Content-Disposition"))
	require.Equal(t, "text/csv;charset=utf-8", w.Header().Get("Content-Type"))
	require.Equal(t, "\"ID\"\n\"REQ-1\"", w.Body.String())
}

func TestExportHandlerEmptyCollection(t *testing.T) {
	handler := NewExportHandler(&exportServiceMock{err: appErrors.ErrEmptyExport})

	c, w := newGinContext(http.MethodGet, "/staff/export.pdf", nil)
	handler.PDF(c)
	requireErrorCode(t, w, http.StatusConflict, appErrors.ErrEmptyExport.Code)
}

func TestExportHandlerPublish(t *testing.T) {
	mock := &exportServiceMock{}
	handler := NewExportHandler(mock)

	c, w := newGinContext(http.MethodPost, "/staff/exports", []byte(`{"format":"csv"}`))
	handler.Publish(c)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, dto.ExportFormatCSV, mock.published.Format)
}

func TestExportHandlerDownload(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "printing_requests_2024-03-05.csv")
	require.NoError(t, os.WriteFile(target, []byte(`"ID"`), 0o644))
	handler := NewExportHandler(&exportServiceMock{openPath: target})

	c, w := newGinContext(http.MethodGet, "/exports/tok", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok"}}
	handler.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, `"ID"`, w.Body.String())
	require.Equal(t, `attachment; filename="printing_requests_2024-03-05.csv"`, w.Header().Get("Content-Disposition"))

	c, w = newGinContext(http.MethodGet, "/exports/bad", nil)
	c.Params = gin.Params{{Key: "token", Value: "bad"}}
	handler.Download(c)
	requireErrorCode(t, w, http.StatusNotFound, appErrors.ErrNotFound.Code)
}
