package blobstore

import (
	"context"
	"io"

	"golang.org/x/time/rate"
)

// ThrottledStore wraps a BlobStore and limits aggregate read and write
// throughput in bytes per second. Use it to keep bulk exports from starving
// a shared network link or tripping object-store rate limits.
type ThrottledStore struct {
	inner   BlobStore
	limiter *rate.Limiter
}

// NewThrottledStore creates a ThrottledStore allowing bytesPerSecond of IO
// with the given burst size. A burst <= 0 defaults to one second's worth.
func NewThrottledStore(inner BlobStore, bytesPerSecond float64, burst int) *ThrottledStore {
	if burst <= 0 {
		burst = int(bytesPerSecond)
	}
	return &ThrottledStore{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(bytesPerSecond), burst),
	}
}

// waitN reserves n bytes of budget, splitting requests larger than the burst.
func (s *ThrottledStore) waitN(ctx context.Context, n int) error {
	for n > 0 {
		chunk := min(n, s.limiter.Burst())
		if err := s.limiter.WaitN(ctx, chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (s *ThrottledStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledBlob{inner: b, store: s}, nil
}

func (s *ThrottledStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	w, err := s.inner.Create(ctx, name)
	if err != nil {
		return nil, err
	}
	return &throttledWritableBlob{inner: w, ctx: ctx, store: s}, nil
}

func (s *ThrottledStore) Put(ctx context.Context, name string, data []byte) error {
	if err := s.waitN(ctx, len(data)); err != nil {
		return err
	}
	return s.inner.Put(ctx, name, data)
}

func (s *ThrottledStore) Delete(ctx context.Context, name string) error {
	return s.inner.Delete(ctx, name)
}

func (s *ThrottledStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

type throttledBlob struct {
	inner Blob
	store *ThrottledStore
}

func (b *throttledBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if err := b.store.waitN(ctx, len(p)); err != nil {
		return 0, err
	}
	return b.inner.ReadAt(ctx, p, off)
}

func (b *throttledBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	if err := b.store.waitN(ctx, int(length)); err != nil {
		return nil, err
	}
	return b.inner.ReadRange(ctx, off, length)
}

func (b *throttledBlob) Close() error {
	return b.inner.Close()
}

func (b *throttledBlob) Size() int64 {
	return b.inner.Size()
}

type throttledWritableBlob struct {
	inner WritableBlob
	ctx   context.Context
	store *ThrottledStore
}

func (w *throttledWritableBlob) Write(p []byte) (int, error) {
	if err := w.store.waitN(w.ctx, len(p)); err != nil {
		return 0, err
	}
	return w.inner.Write(p)
}

func (w *throttledWritableBlob) Sync() error {
	return w.inner.Sync()
}

func (w *throttledWritableBlob) Close() error {
	return w.inner.Close()
}
