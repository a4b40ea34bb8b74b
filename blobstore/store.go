package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing and retrieving named byte blobs,
// such as exported table files.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a new writable blob. The blob becomes visible to
	// readers when the returned handle is closed.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob in one call, replacing any previous content.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting an absent blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a blob.
type Blob interface {
	io.Closer
	// ReadAt reads len(p) bytes starting at off, io.ReaderAt style.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// ReadRange returns a reader over [off, off+length).
	ReadRange(ctx context.Context, off, length int64) (io.ReadCloser, error)
	// Size returns the size of the blob in bytes.
	Size() int64
}

// WritableBlob is a write handle for a blob under construction.
type WritableBlob interface {
	io.Writer
	io.Closer
	// Sync flushes buffered data to stable storage where the backend
	// supports it.
	Sync() error
}

// Mappable is an optional interface for Blobs that support zero-copy access.
type Mappable interface {
	// Bytes returns the underlying byte slice.
	// The slice is valid until the Blob is closed.
	Bytes() ([]byte, error)
}

// ReadAll reads a whole blob into memory.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	if m, ok := b.(Mappable); ok {
		data, err := m.Bytes()
		if err == nil {
			out := make([]byte, len(data))
			copy(out, data)
			return out, nil
		}
	}

	out := make([]byte, b.Size())
	if len(out) == 0 {
		return out, nil
	}
	n, err := b.ReadAt(ctx, out, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return out[:n], nil
}

// Reader adapts a Blob to io.Reader for streaming consumption.
func Reader(ctx context.Context, b Blob) io.Reader {
	return &blobReader{ctx: ctx, blob: b}
}

type blobReader struct {
	ctx  context.Context
	blob Blob
	off  int64
}

func (r *blobReader) Read(p []byte) (int, error) {
	if r.off >= r.blob.Size() {
		return 0, io.EOF
	}
	n, err := r.blob.ReadAt(r.ctx, p, r.off)
	r.off += int64(n)
	return n, err
}
