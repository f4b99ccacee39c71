package models

import "time"

// RequestStatus tracks a print job through the printing room.
type RequestStatus string

const (
	RequestStatusPending    RequestStatus = "Pending"
	RequestStatusInProgress RequestStatus = "In Progress"
	RequestStatusCompleted  RequestStatus = "Completed"
)

// rank orders statuses so transitions can be checked for monotonicity.
func (s RequestStatus) rank() int {
	switch s {
	case RequestStatusPending:
		return 0
	case RequestStatusInProgress:
		return 1
	case RequestStatusCompleted:
		return 2
	default:
		return -1
	}
}

// Valid reports whether the status is one of the known workflow stages.
func (s RequestStatus) Valid() bool {
	return s.rank() >= 0
}

// CanAdvanceTo reports whether moving to next keeps the workflow forward-only.
func (s RequestStatus) CanAdvanceTo(next RequestStatus) bool {
	return next.Valid() && next.rank() >= s.rank()
}

// SidedMode selects single or double sided copies.
type SidedMode string

const (
	SidedSingle SidedMode = "SINGLE"
	SidedDouble SidedMode = "DOUBLE"
)

// StaplingMode selects whether copies are stapled.
type StaplingMode string

const (
	StaplingStapled StaplingMode = "STAPLED"
	StaplingNone    StaplingMode = "NONE"
)

// PaperType selects the paper stock.
type PaperType string

const (
	PaperWhite     PaperType = "WHITE"
	PaperNewsprint PaperType = "NEWSPRINT"
)

// PhotoSlot names one of the two meter photos.
type PhotoSlot string

const (
	PhotoBefore PhotoSlot = "before"
	PhotoAfter  PhotoSlot = "after"
)

// ClassRequest is one row of a distribution list.
type ClassRequest struct {
	ID              string `json:"id"`
	Form            string `json:"form"`
	ClassName       string `json:"className"`
	TeacherInCharge string `json:"teacherInCharge"`
	NoOfCopies      int    `json:"noOfCopies"`
}

// PrintRequest is one printing job submitted by a teacher.
type PrintRequest struct {
	ID                string         `json:"id"`
	Class             string         `json:"class"`
	TeacherInCharge   string         `json:"teacherInCharge"`
	Subject           string         `json:"subject"`
	DateOfSubmission  string         `json:"dateOfSubmission"`
	DateOfCollection  string         `json:"dateOfCollection"`
	NoOfPagesOriginal int            `json:"noOfPagesOriginal"`
	NoOfCopies        int            `json:"noOfCopies"`
	TotalPrintedPages int            `json:"totalPrintedPages"`
	Sides             SidedMode      `json:"sides"`
	Stapling          StaplingMode   `json:"stapling"`
	Paper             PaperType      `json:"paper"`
	Remarks           string         `json:"remarks"`
	Signature         string         `json:"signature"`
	ClassRequests     []ClassRequest `json:"classRequests"`
	Status            RequestStatus  `json:"status"`

	MeterPhotoBefore *string `json:"meterPhotoBefore,omitempty"`
	MeterPhotoAfter  *string `json:"meterPhotoAfter,omitempty"`
	AdjustedCopies   *int    `json:"adjustedCopies,omitempty"`
	StaffRemarks     *string `json:"staffRemarks,omitempty"`
	RicohPages       *int    `json:"ricohPages,omitempty"`
	ToshibaPages     *int    `json:"toshibaPages,omitempty"`

	SubmittedAt time.Time  `json:"submittedAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// TotalCopies sums the copies requested by every distribution row.
func TotalCopies(rows []ClassRequest) int {
	total := 0
	for _, row := range rows {
		total += row.NoOfCopies
	}
	return total
}

// RequestedCopies recomputes the copy count from the distribution list.
func (r *PrintRequest) RequestedCopies() int {
	return TotalCopies(r.ClassRequests)
}

// HasPhoto reports whether the given meter photo has been recorded.
func (r *PrintRequest) HasPhoto(slot PhotoSlot) bool {
	switch slot {
	case PhotoBefore:
		return r.MeterPhotoBefore != nil && *r.MeterPhotoBefore != ""
	case PhotoAfter:
		return r.MeterPhotoAfter != nil && *r.MeterPhotoAfter != ""
	default:
		return false
	}
}

// CanComplete reports whether both meter photos are present.
func (r *PrintRequest) CanComplete() bool {
	return r.HasPhoto(PhotoBefore) && r.HasPhoto(PhotoAfter)
}

// Clone returns a deep copy so callers never share slices or pointers with the store.
func (r *PrintRequest) Clone() *PrintRequest {
	if r == nil {
		return nil
	}
	clone := *r
	if r.ClassRequests != nil {
		clone.ClassRequests = make([]ClassRequest, len(r.ClassRequests))
		copy(clone.ClassRequests, r.ClassRequests)
	}
	clone.MeterPhotoBefore = cloneString(r.MeterPhotoBefore)
	clone.MeterPhotoAfter = cloneString(r.MeterPhotoAfter)
	clone.StaffRemarks = cloneString(r.StaffRemarks)
	clone.AdjustedCopies = cloneInt(r.AdjustedCopies)
	clone.RicohPages = cloneInt(r.RicohPages)
	clone.ToshibaPages = cloneInt(r.ToshibaPages)
	if r.CompletedAt != nil {
		completed := *r.CompletedAt
		clone.CompletedAt = &completed
	}
	return &clone
}

// PrintRequestFilter narrows repository listings.
type PrintRequestFilter struct {
	Status   RequestStatus
	Page     int
	PageSize int
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
