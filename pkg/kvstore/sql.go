package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

const createTableQuery = `CREATE TABLE IF NOT EXISTS kv_store (
	key TEXT PRIMARY KEY,
	value TEXT NOT NULL,
	updated_at TIMESTAMP NOT NULL
)`

// SQLBackend keeps values in a kv_store table. It works against Postgres and SQLite.
type SQLBackend struct {
	db *sqlx.DB
}

// NewSQLBackend wraps an open database handle.
func NewSQLBackend(db *sqlx.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

// Migrate creates the kv_store table when missing.
func (b *SQLBackend) Migrate(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, createTableQuery); err != nil {
		return fmt.Errorf("create kv_store table: %w", err)
	}
	return nil
}

// Get loads the value stored under key.
func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	query := b.db.Rebind(`SELECT value FROM kv_store WHERE key = ?`)
	var value string
	if err := b.db.GetContext(ctx, &value, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrKeyNotFound
		}
		return nil, fmt.Errorf("select kv %s: %w", key, err)
	}
	return []byte(value), nil
}

// Put upserts the value stored under key.
func (b *SQLBackend) Put(ctx context.Context, key string, value []byte) error {
	query := b.db.Rebind(`INSERT INTO kv_store (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT (key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`)
	if _, err := b.db.ExecContext(ctx, query, key, string(value), time.Now().UTC()); err != nil {
		return fmt.Errorf("upsert kv %s: %w", key, err)
	}
	return nil
}

// Close closes the database handle.
func (b *SQLBackend) Close() error {
	return b.db.Close()
}
