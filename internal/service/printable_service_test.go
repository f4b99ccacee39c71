package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/models"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/printform"
)

func TestBuildPrintForm(t *testing.T) {
	req := &models.PrintRequest{
		ID:                "A",
		Class:             "F.5T",
		NoOfPagesOriginal: 2,
		NoOfCopies:        500,
		TotalPrintedPages: 60,
		Sides:             models.SidedDouble,
		Stapling:          models.StaplingStapled,
		Paper:             models.PaperNewsprint,
		ClassRequests: []models.ClassRequest{
			{Form: "5", ClassName: "T", NoOfCopies: 10, TeacherInCharge: "A.Li"},
			{Form: "5", ClassName: "S", NoOfCopies: 20},
		},
	}

	form := BuildPrintForm(req, PrintableConfig{})
	assert.Equal(t, printform.DefaultSchoolName, form.SchoolName)
	assert.Equal(t, printform.DefaultFormCode, form.FormCode)
	assert.Equal(t, []int{2}, form.Bars)
	assert.Equal(t, 30, form.TotalCopies)
	assert.Equal(t, 60, form.TotalPrintedPages)
	require.Len(t, form.Rows, 2)
	assert.Equal(t, "A.Li", form.Rows[0].TeacherInCharge)

	lines := make([]string, 0, len(form.Options))
	for _, line := range form.Options {
		lines = append(lines, line.String())
	}
	assert.Equal(t, []string{
		"☐ Single-sided", "☑ Double-sided",
		"☑ Stapling", "☐ No stapling",
		"☐ White paper", "☑ Newsprint paper",
	}, lines)
}

func TestPrintableServiceViewAndPDF(t *testing.T) {
	repo := newMemoryRepo(t)
	seedRequest(t, repo, "REQ-1")
	staff := NewStaffService(repo, nil, nil, nil, StaffConfig{})
	svc := NewPrintableService(staff, nil, PrintableConfig{SchoolName: "Test School", FormCode: "Form X"})

	form, err := svc.View(context.Background(), "REQ-1")
	require.NoError(t, err)
	assert.Equal(t, "Test School", form.SchoolName)
	assert.Equal(t, "Form X", form.FormCode)
	assert.Equal(t, []int{3, 2, 2, 2, 2}, form.Bars)
	assert.Equal(t, 80, form.TotalCopies)

	pdf, err := svc.PDF(context.Background(), "REQ-1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	_, err = svc.View(context.Background(), "REQ-404")
	requireAppError(t, err, appErrors.ErrNotFound.Code)
}
