package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/print-request-api/pkg/config"
	"github.com/noah-isme/print-request-api/pkg/database"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
	"github.com/noah-isme/print-request-api/pkg/storage"
)

// openBackend selects the durable store for the request collection.
func openBackend(ctx context.Context, cfg *config.Config, client *redis.Client, logger *zap.Logger) (kvstore.Backend, error) {
	switch cfg.Store.Driver {
	case "", kvstore.DriverFile:
		local, err := storage.NewLocalStorage(cfg.Store.Dir)
		if err != nil {
			return nil, fmt.Errorf("prepare store directory: %w", err)
		}
		logger.Info("using file store", zap.String("dir", cfg.Store.Dir))
		return kvstore.NewFileBackend(local), nil
	case kvstore.DriverMemory:
		logger.Warn("using in-memory store, requests will not survive a restart")
		return kvstore.NewMemoryBackend(), nil
	case kvstore.DriverRedis:
		if client == nil {
			return nil, errors.New("STORE_DRIVER=redis requires REDIS_HOST")
		}
		logger.Info("using redis store")
		return kvstore.NewRedisBackend(client, "print:"), nil
	case kvstore.DriverPostgres:
		db, err := database.NewPostgres(ctx, cfg.Database)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return migrated(ctx, kvstore.NewSQLBackend(db), logger, "postgres")
	case kvstore.DriverSQLite:
		db, err := database.NewSQLite(cfg.Store.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return migrated(ctx, kvstore.NewSQLBackend(db), logger, "sqlite")
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

func migrated(ctx context.Context, backend *kvstore.SQLBackend, logger *zap.Logger, driver string) (kvstore.Backend, error) {
	if err := backend.Migrate(ctx); err != nil {
		_ = backend.Close()
		return nil, err
	}
	logger.Info("using sql store", zap.String("driver", driver))
	return backend, nil
}

// storeCheck probes the backend with a read; a missing key still means the store answers.
func storeCheck(backend kvstore.Backend, key string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if _, err := backend.Get(ctx, key); err != nil && !errors.Is(err, kvstore.ErrKeyNotFound) {
			return err
		}
		return nil
	}
}
