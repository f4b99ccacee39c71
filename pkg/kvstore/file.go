package kvstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/noah-isme/print-request-api/pkg/storage"
)

// FileBackend stores each key as a JSON file under the storage base directory.
type FileBackend struct {
	storage *storage.LocalStorage
	mu      sync.Mutex
}

// NewFileBackend wraps a local storage directory.
func NewFileBackend(store *storage.LocalStorage) *FileBackend {
	return &FileBackend{storage: store}
}

// Get reads the file for key.
func (b *FileBackend) Get(ctx context.Context, key string) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	file, err := b.storage.Open(filename(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	defer file.Close() //nolint:errcheck
	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("read key %s: %w", key, err)
	}
	return data, nil
}

// Put replaces the file for key atomically.
func (b *FileBackend) Put(ctx context.Context, key string, value []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, err := b.storage.SaveAtomic(filename(key), value); err != nil {
		return fmt.Errorf("write key %s: %w", key, err)
	}
	return nil
}

// Close is a no-op.
func (b *FileBackend) Close() error {
	return nil
}

func filename(key string) string {
	replacer := strings.NewReplacer("/", "_", "\\", "_", "..", "_", ":", "_")
	return replacer.Replace(key) + ".json"
}
