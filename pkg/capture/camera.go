package capture

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Camera holds one rear-facing stream between Start and Close and produces
// still frames on demand.
type Camera struct {
	device  Device
	onClose func()
	logger  *zap.Logger

	mu     sync.Mutex
	stream Stream
	closed bool
}

// NewCamera builds a camera over device. onClose runs once, on the first Close.
func NewCamera(device Device, onClose func(), logger *zap.Logger) *Camera {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Camera{device: device, onClose: onClose, logger: logger}
}

// Start acquires the stream. A failed acquisition releases anything partially
// opened and closes the camera. Closing while Start is pending releases the
// stream as soon as acquisition returns. A camera holds at most one stream;
// the loser of concurrent Starts releases what it opened.
func (c *Camera) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.stream != nil {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.mu.Unlock()

	stream, err := c.device.Open(ctx, FacingEnvironment)
	if err != nil {
		if stream != nil {
			_ = stream.Close()
		}
		c.logger.Warn("camera acquisition failed", zap.Error(err))
		_ = c.Close()
		return fmt.Errorf("%w: %v", ErrAcquire, err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		_ = stream.Close()
		return ErrClosed
	}
	if c.stream != nil {
		c.mu.Unlock()
		_ = stream.Close()
		return ErrAlreadyStarted
	}
	c.stream = stream
	c.mu.Unlock()
	return nil
}

// Capture grabs the current frame at native resolution as a JPEG data URL.
func (c *Camera) Capture(ctx context.Context) (string, error) {
	c.mu.Lock()
	stream, closed := c.stream, c.closed
	c.mu.Unlock()
	if closed {
		return "", ErrClosed
	}
	if stream == nil {
		return "", ErrNotStarted
	}
	frame, err := stream.Frame(ctx)
	if err != nil {
		return "", fmt.Errorf("read frame: %w", err)
	}
	return EncodeDataURL(frame)
}

// Close releases the stream unconditionally. It is safe to call repeatedly.
func (c *Camera) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	stream := c.stream
	c.stream = nil
	c.mu.Unlock()

	var err error
	if stream != nil {
		err = stream.Close()
	}
	if c.onClose != nil {
		c.onClose()
	}
	return err
}

// CaptureStill opens the camera, takes one frame and releases the device.
func CaptureStill(ctx context.Context, device Device, logger *zap.Logger) (string, error) {
	cam := NewCamera(device, nil, logger)
	defer cam.Close() //nolint:errcheck
	if err := cam.Start(ctx); err != nil {
		return "", err
	}
	return cam.Capture(ctx)
}
