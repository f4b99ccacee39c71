// Package capture models the camera and barcode scanner collaborators. The
// hardware and the symbology decoder are injected; this package owns stream
// lifetime and the polling loop.
package capture

import (
	"context"
	"errors"
	"image"
)

// Facing selects which camera to open.
type Facing string

// FacingEnvironment is the rear camera pointing away from the user.
const FacingEnvironment Facing = "environment"

// FormatCode128 is the only symbology the scanner reports.
const FormatCode128 = "code_128"

var (
	// ErrUnsupported means no barcode detector is available.
	ErrUnsupported = errors.New("barcode detection is not supported")
	// ErrAcquire wraps failures to open a video stream.
	ErrAcquire = errors.New("could not access camera")
	// ErrClosed is returned when a camera is used after Close.
	ErrClosed = errors.New("camera closed")
	// ErrNotStarted is returned when capturing before Start completed.
	ErrNotStarted = errors.New("camera not started")
	// ErrAlreadyStarted is returned by Start when a stream is already held.
	ErrAlreadyStarted = errors.New("camera already started")
)

// Stream is a live video stream. Close must release the device.
type Stream interface {
	Frame(ctx context.Context) (image.Image, error)
	Close() error
}

// Device acquires video streams.
type Device interface {
	Open(ctx context.Context, facing Facing) (Stream, error)
}

// Barcode is one detection result.
type Barcode struct {
	Format   string
	RawValue string
}

// Detector finds barcodes in a single frame.
type Detector interface {
	Detect(ctx context.Context, frame image.Image) ([]Barcode, error)
}
