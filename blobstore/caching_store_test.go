package blobstore

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/tablo/internal/cache"
)

type mockBlob struct {
	data      []byte
	reads     int
	readBytes int
}

func (m *mockBlob) Close() error { return nil }
func (m *mockBlob) Size() int64  { return int64(len(m.data)) }
func (m *mockBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	m.reads++
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	m.readBytes += n
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
func (m *mockBlob) ReadRange(_ context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(m.data[off : off+length])), nil
}

type mockStore struct {
	blobs map[string]*mockBlob
	opens int
}

func (m *mockStore) Open(ctx context.Context, name string) (Blob, error) {
	m.opens++
	if b, ok := m.blobs[name]; ok {
		return b, nil
	}
	return nil, ErrNotFound
}
func (m *mockStore) Create(ctx context.Context, name string) (WritableBlob, error) { return nil, nil }
func (m *mockStore) Put(ctx context.Context, name string, data []byte) error {
	if m.blobs == nil {
		m.blobs = make(map[string]*mockBlob)
	}
	m.blobs[name] = &mockBlob{data: data}
	return nil
}
func (m *mockStore) Delete(ctx context.Context, name string) error             { return nil }
func (m *mockStore) List(ctx context.Context, prefix string) ([]string, error) { return nil, nil }

func TestCachingStore_ReadAt(t *testing.T) {
	ctx := context.Background()

	data := make([]byte, 1024)
	for i := range data {
		data[i] = byte(i % 255)
	}

	inner := &mockStore{
		blobs: map[string]*mockBlob{
			"test": {data: data},
		},
	}

	c := cache.NewLRUBlockCache(1024 * 1024)
	store := NewCachingStore(inner, c, 256)

	blob, err := store.Open(ctx, "test")
	require.NoError(t, err)

	// 1. Read first block (bytes 0-100)
	buf := make([]byte, 100)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[:100], buf)

	// Inner blob was read once, a full block
	mBlob := inner.blobs["test"]
	assert.Equal(t, 1, mBlob.reads)
	assert.Equal(t, 256, mBlob.readBytes)

	// 2. Read same range again, cache hit
	n, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, 1, mBlob.reads)

	// 3. Read spanning block 0 (cached) and block 1 (not cached)
	buf2 := make([]byte, 100)
	n, err = blob.ReadAt(ctx, buf2, 200)
	require.NoError(t, err)
	assert.Equal(t, 100, n)
	assert.Equal(t, data[200:300], buf2)

	assert.Equal(t, 2, mBlob.reads)
	assert.Equal(t, 256+256, mBlob.readBytes)

	// 4. Block 1 again, cache hit
	_, err = blob.ReadAt(ctx, buf2, 260)
	require.NoError(t, err)
	assert.Equal(t, 2, mBlob.reads)
}

func TestCachingStore_SmallFile(t *testing.T) {
	ctx := context.Background()

	data := []byte("hello")
	inner := &mockStore{
		blobs: map[string]*mockBlob{
			"small": {data: data},
		},
	}
	c := cache.NewLRUBlockCache(1024)
	store := NewCachingStore(inner, c, 256)

	blob, err := store.Open(ctx, "small")
	require.NoError(t, err)

	buf := make([]byte, 10)
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Equal(t, data, buf[:n])
}

func TestCachingStore_InvalidateOnPut(t *testing.T) {
	ctx := context.Background()

	inner := &mockStore{}
	require.NoError(t, inner.Put(ctx, "blob", []byte("version-one")))

	c := cache.NewLRUBlockCache(1024)
	store := NewCachingStore(inner, c, 256)

	blob, err := store.Open(ctx, "blob")
	require.NoError(t, err)

	buf := make([]byte, 11)
	_, err = blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "version-one", string(buf))

	// Overwrite through the caching store drops stale blocks
	require.NoError(t, store.Put(ctx, "blob", []byte("version-two")))

	blob2, err := store.Open(ctx, "blob")
	require.NoError(t, err)
	_, err = blob2.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	assert.Equal(t, "version-two", string(buf))
}
