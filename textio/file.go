package textio

import (
	"context"
	"os"
	"path/filepath"

	"github.com/hupe1980/tablo"
	"github.com/hupe1980/tablo/blobstore"
)

// ReadFile reads a delimited text file into a new table, decompressing by
// extension (.gz, .zst, .lz4; the format extension comes before it, e.g.
// "orders.csv.gz").
func ReadFile(path string, optFns ...func(*Options)) (*tablo.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	dec, err := decompressor(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ReadTable(dec, optFns...)
}

// WriteFile writes the table to a delimited text file, compressing by
// extension.
func WriteFile(path string, t *tablo.Table, optFns ...func(*Options)) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc, err := compressor(f, filepath.Base(path))
	if err != nil {
		f.Close()
		return err
	}

	if err := WriteTable(enc, t, optFns...); err != nil {
		enc.Close()
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadBlob reads a delimited text export from a blob store, decompressing by
// the blob name's extension.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*Options)) (*tablo.Table, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	dec, err := decompressor(blobstore.Reader(ctx, b), name)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return ReadTable(dec, optFns...)
}

// WriteBlob writes the table to a blob store, compressing by the blob name's
// extension. The blob becomes visible when the write completes.
func WriteBlob(ctx context.Context, store blobstore.BlobStore, name string, t *tablo.Table, optFns ...func(*Options)) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	enc, err := compressor(w, name)
	if err != nil {
		w.Close()
		return err
	}

	if err := WriteTable(enc, t, optFns...); err != nil {
		enc.Close()
		w.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
