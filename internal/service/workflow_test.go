package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/internal/repository"
)

func TestPrintRequestWorkflow(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryRepo(t)
	metrics := NewMetricsService()

	intake := NewIntakeService(repo, repository.NewDraftRepository(nil, nil), metrics, nil, nil, IntakeConfig{})
	staff := NewStaffService(repo, metrics, nil, nil, StaffConfig{PhotoMaxWidth: 320, PhotoMaxHeight: 320})
	exports := NewExportService(repo, nil, nil, metrics, ExportConfig{}, nil, nil, nil)

	draft, err := intake.CreateDraft(ctx)
	require.NoError(t, err)
	submitted, err := intake.SubmitDraft(ctx, draft.ID)
	require.NoError(t, err)
	require.Equal(t, 320, submitted.TotalPrintedPages)

	found, err := staff.Lookup(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, found.Status)

	_, err = staff.RecordPhoto(ctx, submitted.ID, models.PhotoBefore, meterPhoto(t, 8, 8))
	require.NoError(t, err)
	_, err = staff.RecordPhoto(ctx, submitted.ID, models.PhotoAfter, meterPhoto(t, 8, 8))
	require.NoError(t, err)
	adjusted := 78
	_, err = staff.UpdateDetails(ctx, submitted.ID, dto.StaffUpdateRequest{AdjustedCopies: &adjusted})
	require.NoError(t, err)

	done, err := staff.Complete(ctx, submitted.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusCompleted, done.Status)
	assert.WithinDuration(t, time.Now(), *done.CompletedAt, time.Minute)

	file, err := exports.CSV(ctx)
	require.NoError(t, err)
	row := strings.Split(string(file.Data), "\n")[1]
	assert.True(t, strings.HasPrefix(row, `"`+submitted.ID+`","Completed"`))
	assert.Contains(t, row, `"80","320","78"`)
}
