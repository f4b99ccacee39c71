package errors

import (
	"database/sql"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIsMatchesClonesAndWraps(t *testing.T) {
	cloned := Clone(ErrPreconditionFailed, "both meter photos are required")
	require.True(t, Is(cloned, ErrPreconditionFailed))
	require.True(t, Is(fmt.Errorf("complete REQ-1: %w", cloned), ErrPreconditionFailed))
	require.False(t, Is(cloned, ErrConflict))
	require.False(t, Is(sql.ErrNoRows, ErrNotFound))
	require.False(t, Is(nil, ErrNotFound))
}

func TestFromErrorDefaultsToInternal(t *testing.T) {
	appErr := FromError(sql.ErrConnDone)
	require.Equal(t, ErrInternal.Code, appErr.Code)
	require.Equal(t, http.StatusInternalServerError, appErr.Status)
	require.ErrorIs(t, appErr, sql.ErrConnDone)

	wrapped := Wrap(sql.ErrNoRows, ErrNotFound.Code, ErrNotFound.Status, "Request ID not found")
	require.Same(t, wrapped, FromError(wrapped))
	require.Equal(t, "Request ID not found: sql: no rows in result set", wrapped.Error())
}
