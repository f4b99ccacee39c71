package capture

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// DefaultScanInterval approximates one detection attempt per animation frame.
const DefaultScanInterval = 16 * time.Millisecond

// Scanner polls a stream with a detector until it finds a barcode or the
// context is cancelled.
type Scanner struct {
	device   Device
	detector Detector
	interval time.Duration
	logger   *zap.Logger
}

// NewScanner builds a scanner. A nil detector makes Run report ErrUnsupported.
func NewScanner(device Device, detector Detector, interval time.Duration, logger *zap.Logger) *Scanner {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scanner{device: device, detector: detector, interval: interval, logger: logger}
}

// Supported reports whether a detector is available.
func (s *Scanner) Supported() bool {
	return s != nil && s.detector != nil
}

// Run returns the raw text of the first Code 128 barcode found. The stream is
// released on every exit path and nothing is reported once ctx is done.
func (s *Scanner) Run(ctx context.Context) (string, error) {
	if !s.Supported() {
		return "", ErrUnsupported
	}

	stream, err := s.device.Open(ctx, FacingEnvironment)
	if err != nil {
		if stream != nil {
			_ = stream.Close()
		}
		s.logger.Warn("scanner acquisition failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", ErrAcquire, err)
	}
	defer stream.Close() //nolint:errcheck

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		value, found := s.attempt(ctx, stream)
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if found {
			return value, nil
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-ticker.C:
		}
	}
}

func (s *Scanner) attempt(ctx context.Context, stream Stream) (string, bool) {
	frame, err := stream.Frame(ctx)
	if err != nil {
		s.logger.Debug("frame not ready", zap.Error(err))
		return "", false
	}
	barcodes, err := s.detector.Detect(ctx, frame)
	if err != nil {
		s.logger.Warn("barcode detection failed", zap.Error(err))
		return "", false
	}
	for _, code := range barcodes {
		if code.Format == "" || code.Format == FormatCode128 {
			return code.RawValue, true
		}
	}
	return "", false
}
