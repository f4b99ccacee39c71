package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/dto"
	"github.com/noah-isme/print-request-api/pkg/capture"
	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

type scanRecorder interface {
	RecordScan(outcome string)
}

// ScanConfig paces the detection loop over an uploaded frame.
type ScanConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// ScanService reads a request id from an uploaded camera frame.
type ScanService struct {
	detector capture.Detector
	requests printableLookup
	metrics  scanRecorder
	logger   *zap.Logger
	cfg      ScanConfig
}

// NewScanService constructs a ScanService. A nil detector makes every scan
// report UNSUPPORTED.
func NewScanService(detector capture.Detector, requests printableLookup, metrics scanRecorder, logger *zap.Logger, cfg ScanConfig) *ScanService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 3 * time.Second
	}
	return &ScanService{detector: detector, requests: requests, metrics: metrics, logger: logger, cfg: cfg}
}

// Supported reports whether a barcode detector is configured.
func (s *ScanService) Supported() bool {
	return s.detector != nil
}

// Scan decodes the frame, runs the scanner over it and resolves the code.
func (s *ScanService) Scan(ctx context.Context, frame []byte) (*dto.ScanResult, error) {
	if !s.Supported() {
		s.record("unsupported")
		return nil, appErrors.ErrUnsupported
	}
	img, err := capture.DecodeImage(frame)
	if err != nil {
		s.record("invalid")
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid camera frame")
	}

	scanCtx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	scanner := capture.NewScanner(capture.StillDevice{Image: img}, s.detector, s.cfg.Interval, s.logger)
	code, err := scanner.Run(scanCtx)
	switch {
	case err == nil:
	case errors.Is(err, capture.ErrUnsupported):
		s.record("unsupported")
		return nil, appErrors.ErrUnsupported
	case errors.Is(err, capture.ErrAcquire):
		s.record("capture_failed")
		return nil, appErrors.Wrap(err, appErrors.ErrCaptureFailed.Code, appErrors.ErrCaptureFailed.Status, appErrors.ErrCaptureFailed.Message)
	case errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil:
		s.record("miss")
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no barcode found in frame")
	default:
		s.record("cancelled")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scan interrupted")
	}

	result := &dto.ScanResult{Code: code}
	req, err := s.requests.Lookup(ctx, code)
	switch {
	case err == nil:
		result.Request = req
		s.record("hit")
	case isNotFound(err):
		s.record("unknown_id")
	default:
		return nil, err
	}
	return result, nil
}

func (s *ScanService) record(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordScan(outcome)
	}
}
