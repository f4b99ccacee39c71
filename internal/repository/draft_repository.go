package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	appErrors "github.com/noah-isme/print-request-api/pkg/errors"
)

const draftKeyPrefix = "print:draft:"

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// DraftRepository keeps unsubmitted intake forms. Redis is used when a client
// is configured, otherwise drafts live in process memory.
type DraftRepository struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time

	mu     sync.Mutex
	memory map[string]memoryEntry
}

// NewDraftRepository constructs a draft repository. client may be nil.
func NewDraftRepository(client *redis.Client, logger *zap.Logger) *DraftRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DraftRepository{
		client: client,
		logger: logger,
		now:    time.Now,
		memory: make(map[string]memoryEntry),
	}
}

// Get loads and unmarshals the draft into dest. Missing drafts return ErrCacheMiss.
func (r *DraftRepository) Get(ctx context.Context, id string, dest interface{}) error {
	key := draftKeyPrefix + id
	var raw []byte
	if r.client != nil {
		value, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return appErrors.ErrCacheMiss
			}
			return fmt.Errorf("redis get %s: %w", key, err)
		}
		raw = value
	} else {
		r.mu.Lock()
		entry, ok := r.memory[key]
		if ok && !entry.expiresAt.IsZero() && r.now().After(entry.expiresAt) {
			delete(r.memory, key)
			ok = false
		}
		r.mu.Unlock()
		if !ok {
			return appErrors.ErrCacheMiss
		}
		raw = entry.payload
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("unmarshal draft %s: %w", id, err)
	}
	return nil
}

// Set marshals the draft and stores it with the given TTL.
func (r *DraftRepository) Set(ctx context.Context, id string, value interface{}, ttl time.Duration) error {
	key := draftKeyPrefix + id
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshal draft %s: %w", id, err)
	}
	if r.client != nil {
		if err := r.client.Set(ctx, key, payload, ttl).Err(); err != nil {
			return fmt.Errorf("redis set %s: %w", key, err)
		}
		return nil
	}

	entry := memoryEntry{payload: payload}
	if ttl > 0 {
		entry.expiresAt = r.now().Add(ttl)
	}
	r.mu.Lock()
	r.memory[key] = entry
	r.mu.Unlock()
	return nil
}

// Delete removes a draft if present.
func (r *DraftRepository) Delete(ctx context.Context, id string) error {
	key := draftKeyPrefix + id
	if r.client != nil {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("redis delete %s: %w", key, err)
		}
		return nil
	}
	r.mu.Lock()
	delete(r.memory, key)
	r.mu.Unlock()
	return nil
}

// Sweep drops expired in-memory drafts and returns how many were removed.
// Redis expires keys on its own, so nothing is swept there.
func (r *DraftRepository) Sweep() int {
	if r.client != nil {
		return 0
	}
	now := r.now()
	r.mu.Lock()
	defer r.mu.Unlock()
	removed := 0
	for key, entry := range r.memory {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(r.memory, key)
			removed++
		}
	}
	if removed > 0 {
		r.logger.Debug("expired drafts swept", zap.Int("count", removed))
	}
	return removed
}
