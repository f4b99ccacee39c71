package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/export"
	"github.com/noah-isme/print-request-api/pkg/storage"
)

const exportFilenamePrefix = "printing_requests_"

// ExportHeaders is the fixed column order of the request export.
var ExportHeaders = []string{
	"ID", "Status", "SubmissionDate", "CollectionDate", "Teacher", "Subject", "Class",
	"OriginalPages", "RequestedCopies", "TotalPrintedPages", "AdjustedCopies", "StaffRemarks",
	"RicohPages", "ToshibaPages", "Stapling", "PaperType", "Sided", "TeacherRemarks",
}

type exportSource interface {
	All(ctx context.Context) ([]models.PrintRequest, error)
}

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type exportRecorder interface {
	RecordExport(format string, err error)
}

// ExportConfig tunes export behaviour.
type ExportConfig struct {
	APIPrefix string
	ResultTTL time.Duration
}

// ExportFile is a rendered export ready to download.
type ExportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService renders the whole request collection and publishes downloads.
type ExportService struct {
	requests exportSource
	storage  fileStorage
	csv      csvRenderer
	pdf      pdfRenderer
	signer   *storage.SignedURLSigner
	metrics  exportRecorder
	logger   *zap.Logger
	cfg      ExportConfig
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(requests exportSource, files fileStorage, signer *storage.SignedURLSigner, metrics exportRecorder, cfg ExportConfig, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		requests: requests,
		storage:  files,
		csv:      csv,
		pdf:      pdf,
		signer:   signer,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
		now:      time.Now,
	}
}

// CSV renders every stored request. An empty collection yields EMPTY_EXPORT.
func (s *ExportService) CSV(ctx context.Context) (*ExportFile, error) {
	return s.render(ctx, dto.ExportFormatCSV)
}

// PDF renders every stored request as a landscape table.
func (s *ExportService) PDF(ctx context.Context) (*ExportFile, error) {
	return s.render(ctx, dto.ExportFormatPDF)
}

// Publish stores a rendered export and returns a signed, expiring link.
func (s *ExportService) Publish(ctx context.Context, req dto.PublishExportRequest) (*dto.ExportLink, error) {
	if req.Format != dto.ExportFormatCSV && req.Format != dto.ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf")
	}
	if s.storage == nil || s.signer == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "export storage not configured")
	}
	file, err := s.render(ctx, req.Format)
	if err != nil {
		return nil, err
	}

	exportID := uuid.NewString()
	relPath, err := s.storage.Save(path.Join(exportID, file.Filename), file.Data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store export")
	}
	token, expiresAt, err := s.signer.Generate(exportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign export link")
	}
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	s.logger.Info("export published", zap.String("export_id", exportID), zap.String("file", relPath), zap.Time("expires_at", expiresAt))
	return &dto.ExportLink{
		Filename:  file.Filename,
		URL:       fmt.Sprintf("%s/exports/%s", prefix, token),
		ExpiresAt: expiresAt,
	}, nil
}

// Open resolves a signed token to the stored file and its download name.
func (s *ExportService) Open(token string) (*os.File, string, error) {
	if s.signer == nil || s.storage == nil {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export not found")
	}
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export link invalid or expired")
	}
	f, err := s.storage.Open(relPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export no longer available")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open export")
	}
	return f, path.Base(relPath), nil
}

// Cleanup removes published exports older than ttl (ResultTTL when ttl <= 0).
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	if s.storage == nil {
		return nil, nil
	}
	if ttl <= 0 {
		ttl = s.cfg.ResultTTL
	}
	removed, err := s.storage.CleanupOlderThan(ttl)
	if err != nil {
		return nil, err
	}
	if len(removed) > 0 {
		s.logger.Info("expired exports removed", zap.Int("count", len(removed)))
	}
	return removed, nil
}

// ExportFilename is printing_requests_<ISO date>.<ext>.
func ExportFilename(now time.Time, ext string) string {
	return exportFilenamePrefix + now.UTC().Format("2006-01-02") + "." + ext
}

func (s *ExportService) render(ctx context.Context, format dto.ExportFormat) (file *ExportFile, err error) {
	defer func() {
		if s.metrics != nil && !appErrors.Is(err, appErrors.ErrEmptyExport) {
			s.metrics.RecordExport(string(format), err)
		}
	}()

	requests, err := s.requests.All(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read print requests")
	}
	if len(requests) == 0 {
		return nil, appErrors.ErrEmptyExport
	}
	dataset := BuildExportDataset(requests)
	now := s.now()

	switch format {
	case dto.ExportFormatCSV:
		data, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{Filename: ExportFilename(now, "csv"), ContentType: "text/csv;charset=utf-8", Data: data}, nil
	case dto.ExportFormatPDF:
		data, err := s.pdf.Render(dataset, "Printing requests "+now.UTC().Format("2006-01-02"))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{Filename: ExportFilename(now, "pdf"), ContentType: "application/pdf", Data: data}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %s", format))
	}
}

// BuildExportDataset maps requests onto ExportHeaders. RequestedCopies is
// recomputed from the distribution rows; absent optionals are empty.
func BuildExportDataset(requests []models.PrintRequest) export.Dataset {
	rows := make([]map[string]string, 0, len(requests))
	for i := range requests {
		r := &requests[i]
		rows = append(rows, map[string]string{
			"ID":                r.ID,
			"Status":            string(r.Status),
			"SubmissionDate":    r.DateOfSubmission,
			"CollectionDate":    r.DateOfCollection,
			"Teacher":           r.TeacherInCharge,
			"Subject":           r.Subject,
			"Class":             r.Class,
			"OriginalPages":     strconv.Itoa(r.NoOfPagesOriginal),
			"RequestedCopies":   strconv.Itoa(r.RequestedCopies()),
			"TotalPrintedPages": strconv.Itoa(r.TotalPrintedPages),
			"AdjustedCopies":    optionalInt(r.AdjustedCopies),
			"StaffRemarks":      optionalString(r.StaffRemarks),
			"RicohPages":        optionalInt(r.RicohPages),
			"ToshibaPages":      optionalInt(r.ToshibaPages),
			"Stapling":          yesNo(r.Stapling == models.StaplingStapled),
			"PaperType":         choose(r.Paper == models.PaperWhite, "White", "Newsprint"),
			"Sided":             choose(r.Sides == models.SidedSingle, "Single", "Double"),
			"TeacherRemarks":    r.Remarks,
		})
	}
	return export.Dataset{Headers: ExportHeaders, Rows: rows}
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

func optionalString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func yesNo(b bool) string {
	return choose(b, "Yes", "No")
}

func choose(b bool, yes, no string) string {
	if b {
		return yes
	}
	return no
}
