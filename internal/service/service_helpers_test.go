package service

import (
	"context"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/internal/repository"
	"github.com/noah-isme/print-request-api/pkg/capture"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
)

func newMemoryRepo(t *testing.T) *repository.PrintRequestRepository {
	t.Helper()
	repo, err := repository.NewPrintRequestRepository(context.Background(), kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	return repo
}

func meterPhoto(t *testing.T, w, h int) []byte {
	t.Helper()
	url, err := capture.EncodeDataURL(imaging.New(w, h, color.NRGBA{R: 30, G: 30, B: 30, A: 255}))
	require.NoError(t, err)
	return []byte(url)
}

func requireAppError(t *testing.T, err error, code string) *appErrors.Error {
	t.Helper()
	var appErr *appErrors.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func seedRequest(t *testing.T, repo *repository.PrintRequestRepository, id string) *models.PrintRequest {
	t.Helper()
	req := &models.PrintRequest{
		ID:                id,
		Class:             "F.5T, 6S",
		TeacherInCharge:   "Alli Li",
		Subject:           "GCZ Chinese",
		DateOfSubmission:  "2024-03-01",
		DateOfCollection:  "2024-03-04",
		NoOfPagesOriginal: 4,
		NoOfCopies:        40,
		TotalPrintedPages: 320,
		Sides:             models.SidedDouble,
		Stapling:          models.StaplingStapled,
		Paper:             models.PaperWhite,
		Signature:         "Alli",
		ClassRequests: []models.ClassRequest{
			{ID: "row-1", Form: "5", ClassName: "T", NoOfCopies: 40, TeacherInCharge: "A.Li"},
			{ID: "row-2", Form: "6", ClassName: "S", NoOfCopies: 40, TeacherInCharge: "A.Li"},
		},
		Status:      models.RequestStatusPending,
		SubmittedAt: time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repo.Append(context.Background(), req))
	return req
}

type recorderStub struct {
	mu          sync.Mutex
	submissions int
	transitions []string
	exports     []string
	scans       []string
}

func (r *recorderStub) RecordSubmission() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.submissions++
}

func (r *recorderStub) RecordStatusTransition(from, to models.RequestStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transitions = append(r.transitions, string(from)+"->"+string(to))
}

func (r *recorderStub) RecordExport(format string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	r.exports = append(r.exports, format+":"+outcome)
}

func (r *recorderStub) RecordScan(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scans = append(r.scans, outcome)
}
