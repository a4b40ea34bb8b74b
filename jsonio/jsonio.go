// Package jsonio reads and writes tables as JSON lines: one record object
// per line. Missing values round-trip through JSON null.
//
// Serialization goes through codec.Codec, so the fast goccy-backed codec is
// used by default and the stdlib codec can be swapped in via Options.
package jsonio

import (
	"bufio"
	"context"
	"io"
	"sort"

	"github.com/hupe1980/tablo"
	"github.com/hupe1980/tablo/blobstore"
	"github.com/hupe1980/tablo/codec"
)

// Options configures JSON-lines IO.
type Options struct {
	// Codec serializes and deserializes records. Defaults to codec.Default.
	Codec codec.Codec

	// Columns fixes the schema on import. When empty, the schema is taken
	// from the first record's keys in sorted order.
	Columns []string
}

func applyOptions(optFns []func(*Options)) Options {
	o := Options{Codec: codec.Default}
	for _, fn := range optFns {
		fn(&o)
	}
	if o.Codec == nil {
		o.Codec = codec.Default
	}
	return o
}

// WriteTable writes one JSON object per row to w. Every object carries the
// full schema; Missing values are emitted as null.
func WriteTable(w io.Writer, t *tablo.Table, optFns ...func(*Options)) error {
	o := applyOptions(optFns)

	bw := bufio.NewWriter(w)
	for row := range t.All() {
		line, err := o.Codec.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := bw.Write(line); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadTable reads JSON-lines records from r into a new table.
//
// Unless Options.Columns fixes the schema, it is derived from the first
// record's keys in sorted order. JSON null becomes Missing; keys outside
// the schema are ignored; absent keys fill with Missing.
func ReadTable(r io.Reader, optFns ...func(*Options)) (*tablo.Table, error) {
	o := applyOptions(optFns)

	var t *tablo.Table
	if len(o.Columns) > 0 {
		var err error
		t, err = tablo.New(o.Columns)
		if err != nil {
			return nil, err
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var record map[string]any
		if err := o.Codec.Unmarshal(line, &record); err != nil {
			return nil, err
		}

		if t == nil {
			var err error
			t, err = tablo.New(sortedKeys(record))
			if err != nil {
				return nil, err
			}
		}

		row := make(map[string]tablo.Value, len(record))
		for k, v := range record {
			if v == nil {
				row[k] = tablo.Missing
			} else {
				row[k] = v
			}
		}
		if err := t.AppendRow(row); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		return nil, tablo.ErrEmptySchema
	}
	return t, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReadBlob reads a JSON-lines export from a blob store.
func ReadBlob(ctx context.Context, store blobstore.BlobStore, name string, optFns ...func(*Options)) (*tablo.Table, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	return ReadTable(blobstore.Reader(ctx, b), optFns...)
}

// WriteBlob writes the table as JSON lines to a blob store.
func WriteBlob(ctx context.Context, store blobstore.BlobStore, name string, t *tablo.Table, optFns ...func(*Options)) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return err
	}
	if err := WriteTable(w, t, optFns...); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}
