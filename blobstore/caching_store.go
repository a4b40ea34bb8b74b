package blobstore

import (
	"context"
	"errors"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/tablo/internal/cache"
)

// CachingStore wraps a BlobStore and adds block-level read caching. It is
// intended for remote backends (S3, MinIO) where repeated partial reads of
// the same export are expensive.
type CachingStore struct {
	inner     BlobStore
	cache     cache.BlockCache
	blockSize int64
}

// NewCachingStore creates a new CachingStore.
// blockSize defaults to 4KB if <= 0.
func NewCachingStore(inner BlobStore, cache cache.BlockCache, blockSize int64) *CachingStore {
	if blockSize <= 0 {
		blockSize = 4096
	}
	return &CachingStore{
		inner:     inner,
		cache:     cache,
		blockSize: blockSize,
	}
}

func (s *CachingStore) Open(ctx context.Context, name string) (Blob, error) {
	b, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &CachingBlob{
		inner:     b,
		cache:     s.cache,
		name:      name,
		blockSize: s.blockSize,
	}, nil
}

// Create passes through; writes are not cached.
func (s *CachingStore) Create(ctx context.Context, name string) (WritableBlob, error) {
	s.invalidate(name)
	return s.inner.Create(ctx, name)
}

func (s *CachingStore) Put(ctx context.Context, name string, data []byte) error {
	s.invalidate(name)
	return s.inner.Put(ctx, name, data)
}

func (s *CachingStore) Delete(ctx context.Context, name string) error {
	s.invalidate(name)
	return s.inner.Delete(ctx, name)
}

func (s *CachingStore) List(ctx context.Context, prefix string) ([]string, error) {
	return s.inner.List(ctx, prefix)
}

func (s *CachingStore) invalidate(name string) {
	s.cache.Invalidate(func(key cache.CacheKey) bool {
		return key.Path == name
	})
}

// CachingBlob wraps a Blob and serves reads from the block cache.
type CachingBlob struct {
	inner     Blob
	cache     cache.BlockCache
	name      string
	blockSize int64
}

func (b *CachingBlob) Close() error {
	return b.inner.Close()
}

func (b *CachingBlob) Size() int64 {
	return b.inner.Size()
}

func (b *CachingBlob) ReadAt(ctx context.Context, p []byte, off int64) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	totalRead := 0

	startBlock := off / b.blockSize
	endBlock := (off + int64(len(p)) - 1) / b.blockSize

	// Coalesce missing blocks into run-sized backend reads.
	if err := b.fillCache(ctx, startBlock, endBlock); err != nil {
		return 0, err
	}

	for blk := startBlock; blk <= endBlock; blk++ {
		blkStart := blk * b.blockSize

		// Intersection of the block with the requested range.
		intersectStart := max(blkStart, off)
		intersectEnd := min(blkStart+b.blockSize, off+int64(len(p)))
		if intersectEnd <= intersectStart {
			continue
		}

		copySize := int(intersectEnd - intersectStart)
		dstOffset := intersectStart - off

		blockData, err := b.fetchBlock(ctx, blk)
		if err != nil {
			return totalRead, err
		}

		srcOffset := intersectStart - blkStart

		// The last block of a blob may be short.
		if srcOffset+int64(copySize) > int64(len(blockData)) {
			copySize = len(blockData) - int(srcOffset)
		}

		if copySize > 0 {
			n := copy(p[dstOffset:dstOffset+int64(copySize)], blockData[srcOffset:])
			totalRead += n
		}
	}

	return totalRead, nil
}

// fillCache loads the missing blocks in [startBlock, endBlock] into the
// cache, fetching contiguous runs of missing blocks with single backend
// requests.
func (b *CachingBlob) fillCache(ctx context.Context, startBlock, endBlock int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var missingRuns []struct {
		start, count int64
	}

	runStart := int64(-1)
	runCount := int64(0)

	for blk := startBlock; blk <= endBlock; blk++ {
		key := cache.CacheKey{Path: b.name, Offset: uint64(blk)}
		if _, ok := b.cache.Get(ctx, key); !ok {
			if runStart == -1 {
				runStart = blk
				runCount = 1
			} else {
				runCount++
			}
		} else if runStart != -1 {
			missingRuns = append(missingRuns, struct{ start, count int64 }{runStart, runCount})
			runStart = -1
			runCount = 0
		}
	}
	if runStart != -1 {
		missingRuns = append(missingRuns, struct{ start, count int64 }{runStart, runCount})
	}

	g, _ := errgroup.WithContext(ctx)
	// Bounded to avoid FD exhaustion and backend rate limits.
	g.SetLimit(16)

	for _, run := range missingRuns {
		g.Go(func() error {
			byteStart := run.start * b.blockSize
			byteSize := run.count * b.blockSize

			fileSize := b.Size()
			if byteStart >= fileSize {
				return nil
			}
			if byteStart+byteSize > fileSize {
				byteSize = fileSize - byteStart
			}

			buf := make([]byte, byteSize)
			n, err := b.inner.ReadAt(ctx, buf, byteStart)
			if err != nil && !errors.Is(err, io.EOF) {
				return err
			}
			if n == 0 {
				return nil
			}

			validData := buf[:n]

			for i := int64(0); i < run.count; i++ {
				offsetInRun := i * b.blockSize
				if offsetInRun >= int64(len(validData)) {
					break
				}
				endInRun := min(offsetInRun+b.blockSize, int64(len(validData)))

				// Copy so the cache does not pin the whole run buffer.
				blockCopy := make([]byte, endInRun-offsetInRun)
				copy(blockCopy, validData[offsetInRun:endInRun])

				key := cache.CacheKey{Path: b.name, Offset: uint64(run.start + i)}
				b.cache.Set(ctx, key, blockCopy)
			}
			return nil
		})
	}
	return g.Wait()
}

func (b *CachingBlob) fetchBlock(ctx context.Context, blkIdx int64) ([]byte, error) {
	key := cache.CacheKey{Path: b.name, Offset: uint64(blkIdx)}

	if data, ok := b.cache.Get(ctx, key); ok {
		return data, nil
	}

	buf := make([]byte, b.blockSize)
	n, err := b.inner.ReadAt(ctx, buf, blkIdx*b.blockSize)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	validData := buf[:n]
	if n > 0 {
		b.cache.Set(ctx, key, validData)
	}
	return validData, nil
}

// ReadRange serves ranged reads through the block cache via ReadAt.
func (b *CachingBlob) ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error) {
	return io.NopCloser(&contextSectionReader{blob: b, ctx: ctx, off: off, limit: off + length}), nil
}

// contextSectionReader wraps CachingBlob to implement io.Reader with context.
type contextSectionReader struct {
	blob  *CachingBlob
	ctx   context.Context
	off   int64
	limit int64
}

func (r *contextSectionReader) Read(p []byte) (n int, err error) {
	if r.off >= r.limit {
		return 0, io.EOF
	}
	if remaining := r.limit - r.off; int64(len(p)) > remaining {
		p = p[:remaining]
	}
	n, err = r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	return
}
