package blobstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThrottledStore_Passthrough(t *testing.T) {
	ctx := t.Context()
	store := NewThrottledStore(NewMemoryStore(), 1<<20, 0)

	require.NoError(t, store.Put(ctx, "a.csv", []byte("payload")))

	b, err := store.Open(ctx, "a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.Size())

	buf := make([]byte, 7)
	n, err := b.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(buf[:n]))
	require.NoError(t, b.Close())

	w, err := store.Create(ctx, "b.csv")
	require.NoError(t, err)
	_, err = w.Write([]byte("more"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.csv"}, names)

	require.NoError(t, store.Delete(ctx, "a.csv"))
	_, err = store.Open(ctx, "a.csv")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestThrottledStore_LimitsThroughput(t *testing.T) {
	ctx := t.Context()

	// 1 KiB/s with a 256-byte burst: a 512-byte write needs ~250ms of budget
	// beyond the initial burst.
	store := NewThrottledStore(NewMemoryStore(), 1024, 256)

	start := time.Now()
	require.NoError(t, store.Put(ctx, "big", make([]byte, 512)))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 200*time.Millisecond)
}

func TestThrottledStore_RespectsContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(t.Context(), 50*time.Millisecond)
	defer cancel()

	store := NewThrottledStore(NewMemoryStore(), 10, 1)
	err := store.Put(ctx, "big", make([]byte, 1024))
	assert.Error(t, err)
}
