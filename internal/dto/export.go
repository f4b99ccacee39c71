package dto

import "time"

// ExportFormat names a downloadable rendering of the request collection.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// PublishExportRequest asks for a stored export with a signed link.
type PublishExportRequest struct {
	Format ExportFormat `json:"format" validate:"required,oneof=csv pdf"`
}

// ExportLink points at a published export.
type ExportLink struct {
	Filename  string    `json:"filename"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
