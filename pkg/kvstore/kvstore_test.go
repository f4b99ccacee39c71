package kvstore

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/pkg/storage"
)

func TestMemoryBackendRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	ctx := context.Background()

	_, err := backend.Get(ctx, "printRequests")
	require.ErrorIs(t, err, ErrKeyNotFound)

	value := []byte(`[{"id":"REQ-1"}]`)
	require.NoError(t, backend.Put(ctx, "printRequests", value))
	value[0] = 'x'

	got, err := backend.Get(ctx, "printRequests")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"REQ-1"}]`, string(got))
}

func TestFileBackendRoundTrip(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	backend := NewFileBackend(store)
	ctx := context.Background()

	_, err = backend.Get(ctx, "printRequests")
	require.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, backend.Put(ctx, "printRequests", []byte(`[]`)))
	require.NoError(t, backend.Put(ctx, "printRequests", []byte(`[{"id":"REQ-2"}]`)))

	got, err := backend.Get(ctx, "printRequests")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"REQ-2"}]`, string(got))
}

func newSQLMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestSQLBackendGet(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	backend := NewSQLBackend(db)

	rows := sqlmock.NewRows([]string{"value"}).AddRow(`[{"id":"REQ-3"}]`)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store")).
		WithArgs("printRequests").
		WillReturnRows(rows)

	got, err := backend.Get(context.Background(), "printRequests")
	require.NoError(t, err)
	require.Equal(t, `[{"id":"REQ-3"}]`, string(got))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendGetMissing(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	backend := NewSQLBackend(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store")).
		WithArgs("printRequests").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := backend.Get(context.Background(), "printRequests")
	require.ErrorIs(t, err, ErrKeyNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackendPutAndMigrate(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	backend := NewSQLBackend(db)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_store")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WithArgs("printRequests", `[]`, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, backend.Migrate(context.Background()))
	require.NoError(t, backend.Put(context.Background(), "printRequests", []byte(`[]`)))
	require.NoError(t, mock.ExpectationsWereMet())
}
