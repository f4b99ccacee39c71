package capture

import (
	"context"
	"errors"
	"image"
	"sync"
)

// StillDevice serves a single uploaded frame as if it were a live stream.
type StillDevice struct {
	Image image.Image
}

// Open returns a stream yielding the stored frame.
func (d StillDevice) Open(ctx context.Context, facing Facing) (Stream, error) {
	if d.Image == nil {
		return nil, errors.New("no frame uploaded")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &stillStream{frame: d.Image}, nil
}

type stillStream struct {
	mu     sync.Mutex
	frame  image.Image
	closed bool
}

func (s *stillStream) Frame(ctx context.Context) (image.Image, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	return s.frame, nil
}

func (s *stillStream) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
