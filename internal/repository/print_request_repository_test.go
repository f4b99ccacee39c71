package repository

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/print-request-api/internal/models"
	"github.com/noah-isme/print-request-api/pkg/kvstore"
)

type failingBackend struct {
	*kvstore.MemoryBackend
	failPut bool
}

func (b *failingBackend) Put(ctx context.Context, key string, value []byte) error {
	if b.failPut {
		return errors.New("disk full")
	}
	return b.MemoryBackend.Put(ctx, key, value)
}

type writeObserverStub struct {
	writes int
	errors int
}

func (o *writeObserverStub) ObserveStoreWrite(duration time.Duration, err error) {
	o.writes++
	if err != nil {
		o.errors++
	}
}

func newRequest(id string) *models.PrintRequest {
	return &models.PrintRequest{
		ID:                id,
		Class:             "F.5T",
		NoOfPagesOriginal: 2,
		ClassRequests: []models.ClassRequest{
			{ID: "row-1", Form: "5", ClassName: "T", NoOfCopies: 10},
		},
		TotalPrintedPages: 20,
		Status:            models.RequestStatusPending,
	}
}

func TestPrintRequestRepositoryStartsEmptyWhenKeyMissing(t *testing.T) {
	repo, err := NewPrintRequestRepository(context.Background(), kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestPrintRequestRepositoryStartsEmptyWhenDataMalformed(t *testing.T) {
	backend := kvstore.NewMemoryBackend()
	require.NoError(t, backend.Put(context.Background(), DefaultStoreKey, []byte("{not json")))

	repo, err := NewPrintRequestRepository(context.Background(), backend, DefaultStoreKey, nil, nil)
	require.NoError(t, err)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestPrintRequestRepositoryAppendPersistsAndReloads(t *testing.T) {
	ctx := context.Background()
	backend := kvstore.NewMemoryBackend()
	observer := &writeObserverStub{}
	repo, err := NewPrintRequestRepository(ctx, backend, DefaultStoreKey, nil, observer)
	require.NoError(t, err)

	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))
	require.NoError(t, repo.Append(ctx, newRequest("REQ-2")))
	require.Equal(t, 2, observer.writes)

	reloaded, err := NewPrintRequestRepository(ctx, backend, DefaultStoreKey, nil, nil)
	require.NoError(t, err)
	all, err := reloaded.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "REQ-1", all[0].ID)
	require.Equal(t, "REQ-2", all[1].ID)
}

func TestPrintRequestRepositoryAppendRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)

	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))
	require.ErrorIs(t, repo.Append(ctx, newRequest("REQ-1")), ErrDuplicateID)
}

func TestPrintRequestRepositoryFindReturnsCopy(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))

	found, err := repo.FindByID(ctx, "REQ-1")
	require.NoError(t, err)
	found.ClassRequests[0].NoOfCopies = 999

	again, err := repo.FindByID(ctx, "REQ-1")
	require.NoError(t, err)
	require.Equal(t, 10, again.ClassRequests[0].NoOfCopies)

	_, err = repo.FindByID(ctx, "REQ-404")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPrintRequestRepositoryReplaceKeepsPosition(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))
	require.NoError(t, repo.Append(ctx, newRequest("REQ-2")))

	updated := newRequest("REQ-1")
	updated.Status = models.RequestStatusInProgress
	replaced, err := repo.Replace(ctx, updated)
	require.NoError(t, err)
	require.True(t, replaced)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Equal(t, "REQ-1", all[0].ID)
	require.Equal(t, models.RequestStatusInProgress, all[0].Status)
}

func TestPrintRequestRepositoryReplaceUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	observer := &writeObserverStub{}
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, observer)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))

	replaced, err := repo.Replace(ctx, newRequest("REQ-404"))
	require.NoError(t, err)
	require.False(t, replaced)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, 1, observer.writes)
}

func TestPrintRequestRepositoryRollsBackOnWriteFailure(t *testing.T) {
	ctx := context.Background()
	backend := &failingBackend{MemoryBackend: kvstore.NewMemoryBackend()}
	repo, err := NewPrintRequestRepository(ctx, backend, "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))

	backend.failPut = true
	require.Error(t, repo.Append(ctx, newRequest("REQ-2")))
	_, err = repo.Update(ctx, "REQ-1", func(req *models.PrintRequest) error {
		req.Status = models.RequestStatusCompleted
		return nil
	})
	require.Error(t, err)

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, models.RequestStatusPending, all[0].Status)

	backend.failPut = false
	require.NoError(t, repo.Append(ctx, newRequest("REQ-2")))
}

func TestPrintRequestRepositoryUpdateMutatorError(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))

	boom := errors.New("rejected")
	_, err = repo.Update(ctx, "REQ-1", func(req *models.PrintRequest) error {
		req.Status = models.RequestStatusCompleted
		return boom
	})
	require.ErrorIs(t, err, boom)

	found, err := repo.FindByID(ctx, "REQ-1")
	require.NoError(t, err)
	require.Equal(t, models.RequestStatusPending, found.Status)

	_, err = repo.Update(ctx, "REQ-404", func(req *models.PrintRequest) error { return nil })
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestPrintRequestRepositoryListFiltersAndPaginates(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	for _, id := range []string{"REQ-1", "REQ-2", "REQ-3"} {
		require.NoError(t, repo.Append(ctx, newRequest(id)))
	}
	done := newRequest("REQ-2")
	done.Status = models.RequestStatusCompleted
	_, err = repo.Replace(ctx, done)
	require.NoError(t, err)

	pending, total, err := repo.List(ctx, models.PrintRequestFilter{Status: models.RequestStatusPending})
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Equal(t, "REQ-1", pending[0].ID)
	require.Equal(t, "REQ-3", pending[1].ID)

	page, total, err := repo.List(ctx, models.PrintRequestFilter{Page: 2, PageSize: 2})
	require.NoError(t, err)
	require.Equal(t, 3, total)
	require.Len(t, page, 1)
	require.Equal(t, "REQ-3", page[0].ID)
}

func TestPrintRequestRepositoryListPastLastPage(t *testing.T) {
	ctx := context.Background()
	repo, err := NewPrintRequestRepository(ctx, kvstore.NewMemoryBackend(), "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, repo.Append(ctx, newRequest("REQ-1")))

	for _, page := range []int{2, (1 << 58) + 1, math.MaxInt} {
		items, total, err := repo.List(ctx, models.PrintRequestFilter{Page: page, PageSize: 50})
		require.NoError(t, err)
		require.Equal(t, 1, total)
		require.Empty(t, items)
	}
}
