package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
)

// DefaultStoreKey is the durable key holding the request collection.
const DefaultStoreKey = "printRequests"

// ErrDuplicateID is returned when appending a request whose id is already stored.
var ErrDuplicateID = errors.New("print request id already exists")

type writeObserver interface {
	ObserveStoreWrite(duration time.Duration, err error)
}

// PrintRequestRepository owns the ordered request collection. Every mutation is
// serialised and written through to the durable backend before it becomes visible.
type PrintRequestRepository struct {
	backend  kvstore.Backend
	key      string
	logger   *zap.Logger
	observer writeObserver

	mu       sync.RWMutex
	requests []*models.PrintRequest
	index    map[string]int
}

// NewPrintRequestRepository loads the collection from the backend. Missing or
// malformed data yields an empty collection.
func NewPrintRequestRepository(ctx context.Context, backend kvstore.Backend, key string, logger *zap.Logger, observer writeObserver) (*PrintRequestRepository, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if key == "" {
		key = DefaultStoreKey
	}
	repo := &PrintRequestRepository{
		backend:  backend,
		key:      key,
		logger:   logger,
		observer: observer,
		index:    make(map[string]int),
	}
	if err := repo.load(ctx); err != nil {
		return nil, err
	}
	return repo, nil
}

func (r *PrintRequestRepository) load(ctx context.Context) error {
	raw, err := r.backend.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, kvstore.ErrKeyNotFound) {
			r.logger.Info("print request store empty", zap.String("key", r.key))
			return nil
		}
		return fmt.Errorf("load print requests: %w", err)
	}
	var stored []*models.PrintRequest
	if err := json.Unmarshal(raw, &stored); err != nil {
		r.logger.Warn("print request store malformed, starting empty", zap.String("key", r.key), zap.Error(err))
		return nil
	}
	for _, req := range stored {
		if req == nil || req.ID == "" {
			continue
		}
		if _, exists := r.index[req.ID]; exists {
			continue
		}
		r.index[req.ID] = len(r.requests)
		r.requests = append(r.requests, req)
	}
	r.logger.Info("print requests loaded", zap.String("key", r.key), zap.Int("count", len(r.requests)))
	return nil
}

// Append adds a request at the end of the collection.
func (r *PrintRequestRepository) Append(ctx context.Context, req *models.PrintRequest) error {
	if req == nil || req.ID == "" {
		return fmt.Errorf("append print request: id required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.index[req.ID]; exists {
		return ErrDuplicateID
	}
	r.requests = append(r.requests, req.Clone())
	r.index[req.ID] = len(r.requests) - 1
	if err := r.persist(ctx); err != nil {
		r.requests = r.requests[:len(r.requests)-1]
		delete(r.index, req.ID)
		return err
	}
	return nil
}

// FindByID returns a copy of the stored request or sql.ErrNoRows.
func (r *PrintRequestRepository) FindByID(ctx context.Context, id string) (*models.PrintRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return r.requests[pos].Clone(), nil
}

// Replace swaps the stored request with the same id, keeping its position.
// An unknown id leaves the collection untouched and reports false.
func (r *PrintRequestRepository) Replace(ctx context.Context, req *models.PrintRequest) (bool, error) {
	if req == nil {
		return false, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[req.ID]
	if !ok {
		r.logger.Debug("replace ignored for unknown print request", zap.String("id", req.ID))
		return false, nil
	}
	previous := r.requests[pos]
	r.requests[pos] = req.Clone()
	if err := r.persist(ctx); err != nil {
		r.requests[pos] = previous
		return false, err
	}
	return true, nil
}

// Update applies mutate to a copy of the stored request and writes it back.
// The whole read-modify-write runs under the writer lock.
func (r *PrintRequestRepository) Update(ctx context.Context, id string, mutate func(*models.PrintRequest) error) (*models.PrintRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pos, ok := r.index[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	previous := r.requests[pos]
	next := previous.Clone()
	if err := mutate(next); err != nil {
		return nil, err
	}
	next.ID = previous.ID
	r.requests[pos] = next
	if err := r.persist(ctx); err != nil {
		r.requests[pos] = previous
		return nil, err
	}
	return next.Clone(), nil
}

// All returns copies of every request in submission order.
func (r *PrintRequestRepository) All(ctx context.Context) ([]models.PrintRequest, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.PrintRequest, 0, len(r.requests))
	for _, req := range r.requests {
		out = append(out, *req.Clone())
	}
	return out, nil
}

// List filters by status and paginates, returning the matching total.
func (r *PrintRequestRepository) List(ctx context.Context, filter models.PrintRequestFilter) ([]models.PrintRequest, int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	matched := make([]*models.PrintRequest, 0, len(r.requests))
	for _, req := range r.requests {
		if filter.Status != "" && req.Status != filter.Status {
			continue
		}
		matched = append(matched, req)
	}
	total := len(matched)

	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	start := total
	if page-1 <= total/size {
		start = (page - 1) * size
		if start > total {
			start = total
		}
	}
	end := start + size
	if end > total {
		end = total
	}
	out := make([]models.PrintRequest, 0, end-start)
	for _, req := range matched[start:end] {
		out = append(out, *req.Clone())
	}
	return out, total, nil
}

// persist must be called with the writer lock held.
func (r *PrintRequestRepository) persist(ctx context.Context) error {
	start := time.Now()
	payload, err := json.Marshal(r.requests)
	if err == nil {
		err = r.backend.Put(ctx, r.key, payload)
	}
	if r.observer != nil {
		r.observer.ObserveStoreWrite(time.Since(start), err)
	}
	if err != nil {
		r.logger.Error("persist print requests failed", zap.String("key", r.key), zap.Error(err))
		return fmt.Errorf("persist print requests: %w", err)
	}
	return nil
}
