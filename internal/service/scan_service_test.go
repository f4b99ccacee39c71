package service

import (
	"context"
	"image"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/pkg/capture"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

type detectorFunc func(ctx context.Context, frame image.Image) ([]capture.Barcode, error)

func (f detectorFunc) Detect(ctx context.Context, frame image.Image) ([]capture.Barcode, error) {
	return f(ctx, frame)
}

func newScanFixture(t *testing.T, detector capture.Detector) (*ScanService, *recorderStub) {
	t.Helper()
	repo := newMemoryRepo(t)
	seedRequest(t, repo, "REQ-1")
	metrics := &recorderStub{}
	staff := NewStaffService(repo, nil, nil, nil, StaffConfig{})
	svc := NewScanService(detector, staff, metrics, nil, ScanConfig{Interval: time.Millisecond, Timeout: 50 * time.Millisecond})
	return svc, metrics
}

func TestScanServiceResolvesCode(t *testing.T) {
	svc, metrics := newScanFixture(t, detectorFunc(func(context.Context, image.Image) ([]capture.Barcode, error) {
		return []capture.Barcode{
			{Format: "qr_code", RawValue: "ignored"},
			{Format: capture.FormatCode128, RawValue: "REQ-1"},
		}, nil
	}))

	result, err := svc.Scan(context.Background(), meterPhoto(t, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, "REQ-1", result.Code)
	require.NotNil(t, result.Request)
	assert.Equal(t, "GCZ Chinese", result.Request.Subject)
	assert.Equal(t, []string{"hit"}, metrics.scans)
}

func TestScanServiceUnknownCode(t *testing.T) {
	svc, metrics := newScanFixture(t, detectorFunc(func(context.Context, image.Image) ([]capture.Barcode, error) {
		return []capture.Barcode{{Format: capture.FormatCode128, RawValue: "REQ-9"}}, nil
	}))

	result, err := svc.Scan(context.Background(), meterPhoto(t, 16, 16))
	require.NoError(t, err)
	assert.Equal(t, "REQ-9", result.Code)
	assert.Nil(t, result.Request)
	assert.Equal(t, []string{"unknown_id"}, metrics.scans)
}

func TestScanServiceNoBarcode(t *testing.T) {
	svc, metrics := newScanFixture(t, detectorFunc(func(context.Context, image.Image) ([]capture.Barcode, error) {
		return nil, nil
	}))

	_, err := svc.Scan(context.Background(), meterPhoto(t, 16, 16))
	requireAppError(t, err, appErrors.ErrNotFound.Code)
	assert.Equal(t, []string{"miss"}, metrics.scans)
}

func TestScanServiceUnsupportedAndInvalid(t *testing.T) {
	svc, _ := newScanFixture(t, nil)
	assert.False(t, svc.Supported())
	_, err := svc.Scan(context.Background(), meterPhoto(t, 16, 16))
	require.ErrorIs(t, err, appErrors.ErrUnsupported)

	svc, _ = newScanFixture(t, detectorFunc(func(context.Context, image.Image) ([]capture.Barcode, error) {
		t.Fatal("detector must not run on an undecodable frame")
		return nil, nil
	}))
	_, err = svc.Scan(context.Background(), []byte("garbage"))
	requireAppError(t, err, appErrors.ErrValidation.Code)
}
