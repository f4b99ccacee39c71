package dto

import "github.com/noah-isme/print-request-api/internal/models"

// ClassRequestInput is one distribution row in a submission body.
type ClassRequestInput struct {
	Form            string `json:"form"`
	ClassName       string `json:"className"`
	TeacherInCharge string `json:"teacherInCharge"`
	NoOfCopies      int    `json:"noOfCopies" validate:"min=0"`
}

// SubmitPrintRequest is the complete teacher form posted in one call. Empty
// option fields take the form defaults.
type SubmitPrintRequest struct {
	Class             string              `json:"class"`
	TeacherInCharge   string              `json:"teacherInCharge"`
	Subject           string              `json:"subject"`
	DateOfSubmission  string              `json:"dateOfSubmission"`
	DateOfCollection  string              `json:"dateOfCollection"`
	NoOfPagesOriginal int                 `json:"noOfPagesOriginal" validate:"min=0"`
	NoOfCopies        int                 `json:"noOfCopies" validate:"min=0"`
	Sides             models.SidedMode    `json:"sides" validate:"omitempty,oneof=SINGLE DOUBLE"`
	Stapling          models.StaplingMode `json:"stapling" validate:"omitempty,oneof=STAPLED NONE"`
	Paper             models.PaperType    `json:"paper" validate:"omitempty,oneof=WHITE NEWSPRINT"`
	Remarks           string              `json:"remarks"`
	Signature         string              `json:"signature"`
	ClassRequests     []ClassRequestInput `json:"classRequests" validate:"dive"`
}

// DraftHeaderPatch edits header fields of a draft; nil fields are left alone.
type DraftHeaderPatch struct {
	Class             *string              `json:"class"`
	TeacherInCharge   *string              `json:"teacherInCharge"`
	Subject           *string              `json:"subject"`
	DateOfSubmission  *string              `json:"dateOfSubmission"`
	DateOfCollection  *string              `json:"dateOfCollection"`
	NoOfPagesOriginal *int                 `json:"noOfPagesOriginal" validate:"omitempty,min=0"`
	NoOfCopies        *int                 `json:"noOfCopies" validate:"omitempty,min=0"`
	Sides             *models.SidedMode    `json:"sides" validate:"omitempty,oneof=SINGLE DOUBLE"`
	Stapling          *models.StaplingMode `json:"stapling" validate:"omitempty,oneof=STAPLED NONE"`
	Paper             *models.PaperType    `json:"paper" validate:"omitempty,oneof=WHITE NEWSPRINT"`
	Remarks           *string              `json:"remarks"`
	Signature         *string              `json:"signature"`
}

// DraftRowPatch edits one distribution row of a draft.
type DraftRowPatch struct {
	Form            *string `json:"form"`
	ClassName       *string `json:"className"`
	TeacherInCharge *string `json:"teacherInCharge"`
	NoOfCopies      *int    `json:"noOfCopies" validate:"omitempty,min=0"`
}

// StaffUpdateRequest carries the staff-editable fields. Every provided field
// is committed immediately.
type StaffUpdateRequest struct {
	AdjustedCopies *int    `json:"adjustedCopies" validate:"omitempty,min=0"`
	StaffRemarks   *string `json:"staffRemarks" validate:"omitempty,max=2000"`
	RicohPages     *int    `json:"ricohPages" validate:"omitempty,min=0"`
	ToshibaPages   *int    `json:"toshibaPages" validate:"omitempty,min=0"`
}

// Empty reports whether no field was provided.
func (r StaffUpdateRequest) Empty() bool {
	return r.AdjustedCopies == nil && r.StaffRemarks == nil && r.RicohPages == nil && r.ToshibaPages == nil
}

// PhotoUploadRequest carries a meter photo as a data URL when not sent as multipart.
type PhotoUploadRequest struct {
	DataURL string `json:"dataUrl" validate:"required"`
}

// PrintRequestQuery filters request listings.
type PrintRequestQuery struct {
	Status   string `form:"status" validate:"omitempty,oneof=Pending 'In Progress' Completed"`
	Page     int    `form:"page" validate:"omitempty,min=1"`
	PageSize int    `form:"page_size" validate:"omitempty,min=1,max=200"`
}

// ScanResult is the decoded barcode plus the request it resolved to, if any.
type ScanResult struct {
	Code    string               `json:"code"`
	Request *models.PrintRequest `json:"request,omitempty"`
}

// SubmitResponse carries the stored request and where to print it.
type SubmitResponse struct {
	Request      *models.PrintRequest `json:"request"`
	PrintableURL string               `json:"printableUrl"`
}
