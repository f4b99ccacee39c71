package service

import (
	"errors"
	"time"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
)

const submissionDateLayout = "2006-01-02"

// errRowNotFound is returned by row edits that name an unknown row.
var errRowNotFound = errors.New("class request row not found")

// IntakeForm is the teacher's editable copy request before submission.
type IntakeForm struct {
	ID                string                `json:"id"`
	Class             string                `json:"class"`
	TeacherInCharge   string                `json:"teacherInCharge"`
	Subject           string                `json:"subject"`
	DateOfSubmission  string                `json:"dateOfSubmission"`
	DateOfCollection  string                `json:"dateOfCollection"`
	NoOfPagesOriginal int                   `json:"noOfPagesOriginal"`
	NoOfCopies        int                   `json:"noOfCopies"`
	Sides             models.SidedMode      `json:"sides"`
	Stapling          models.StaplingMode   `json:"stapling"`
	Paper             models.PaperType      `json:"paper"`
	Remarks           string                `json:"remarks"`
	Signature         string                `json:"signature"`
	ClassRequests     []models.ClassRequest `json:"classRequests"`

	// Derived values refreshed on every change so API clients can show them.
	TotalCopies       int `json:"totalCopies"`
	TotalPrintedPages int `json:"totalPrintedPages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewIntakeForm returns a form pre-filled with the printing room defaults.
func NewIntakeForm(id string, now time.Time, newRowID func() string) *IntakeForm {
	today := now.Format(submissionDateLayout)
	form := &IntakeForm{
		ID:                id,
		Class:             "F.5T, 6S",
		TeacherInCharge:   "Alli Li",
		Subject:           "GCZ Chinese",
		DateOfSubmission:  today,
		DateOfCollection:  today,
		NoOfPagesOriginal: 4,
		NoOfCopies:        40,
		Sides:             models.SidedDouble,
		Stapling:          models.StaplingStapled,
		Paper:             models.PaperWhite,
		Signature:         "Alli",
		ClassRequests: []models.ClassRequest{
			{ID: newRowID(), Form: "5", ClassName: "T", NoOfCopies: 40, TeacherInCharge: "A.Li"},
			{ID: newRowID(), Form: "6", ClassName: "S", NoOfCopies: 40, TeacherInCharge: "A.Li"},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	form.refresh()
	return form
}

// Copies sums the copies across all distribution rows.
func (f *IntakeForm) Copies() int {
	return models.TotalCopies(f.ClassRequests)
}

// PrintedPages is original pages times total copies.
func (f *IntakeForm) PrintedPages() int {
	return f.NoOfPagesOriginal * f.Copies()
}

// AddRow appends an empty row with a fresh id.
func (f *IntakeForm) AddRow(id string) models.ClassRequest {
	row := models.ClassRequest{ID: id}
	f.ClassRequests = append(f.ClassRequests, row)
	f.refresh()
	return row
}

// RemoveRow drops the row with the given id.
func (f *IntakeForm) RemoveRow(id string) error {
	for i, row := range f.ClassRequests {
		if row.ID == id {
			f.ClassRequests = append(f.ClassRequests[:i], f.ClassRequests[i+1:]...)
			f.refresh()
			return nil
		}
	}
	return errRowNotFound
}

// EditRow patches a row in place.
func (f *IntakeForm) EditRow(id string, patch dto.DraftRowPatch) error {
	for i := range f.ClassRequests {
		row := &f.ClassRequests[i]
		if row.ID != id {
			continue
		}
		if patch.Form != nil {
			row.Form = *patch.Form
		}
		if patch.ClassName != nil {
			row.ClassName = *patch.ClassName
		}
		if patch.TeacherInCharge != nil {
			row.TeacherInCharge = *patch.TeacherInCharge
		}
		if patch.NoOfCopies != nil {
			row.NoOfCopies = *patch.NoOfCopies
		}
		f.refresh()
		return nil
	}
	return errRowNotFound
}

// ApplyHeader copies every provided header field onto the form.
func (f *IntakeForm) ApplyHeader(patch dto.DraftHeaderPatch) {
	setString(&f.Class, patch.Class)
	setString(&f.TeacherInCharge, patch.TeacherInCharge)
	setString(&f.Subject, patch.Subject)
	setString(&f.DateOfSubmission, patch.DateOfSubmission)
	setString(&f.DateOfCollection, patch.DateOfCollection)
	setString(&f.Remarks, patch.Remarks)
	setString(&f.Signature, patch.Signature)
	if patch.NoOfPagesOriginal != nil {
		f.NoOfPagesOriginal = *patch.NoOfPagesOriginal
	}
	if patch.NoOfCopies != nil {
		f.NoOfCopies = *patch.NoOfCopies
	}
	if patch.Sides != nil {
		f.Sides = *patch.Sides
	}
	if patch.Stapling != nil {
		f.Stapling = *patch.Stapling
	}
	if patch.Paper != nil {
		f.Paper = *patch.Paper
	}
	f.refresh()
}

// Submit freezes the form into a pending request. Totals are computed here
// and never recomputed on the stored record.
func (f *IntakeForm) Submit(id string, now time.Time) *models.PrintRequest {
	rows := make([]models.ClassRequest, len(f.ClassRequests))
	copy(rows, f.ClassRequests)
	return &models.PrintRequest{
		ID:                id,
		Class:             f.Class,
		TeacherInCharge:   f.TeacherInCharge,
		Subject:           f.Subject,
		DateOfSubmission:  f.DateOfSubmission,
		DateOfCollection:  f.DateOfCollection,
		NoOfPagesOriginal: f.NoOfPagesOriginal,
		NoOfCopies:        f.NoOfCopies,
		TotalPrintedPages: f.PrintedPages(),
		Sides:             f.Sides,
		Stapling:          f.Stapling,
		Paper:             f.Paper,
		Remarks:           f.Remarks,
		Signature:         f.Signature,
		ClassRequests:     rows,
		Status:            models.RequestStatusPending,
		SubmittedAt:       now,
		UpdatedAt:         now,
	}
}

func (f *IntakeForm) refresh() {
	f.TotalCopies = f.Copies()
	f.TotalPrintedPages = f.PrintedPages()
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
