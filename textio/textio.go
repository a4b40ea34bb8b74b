// Package textio reads and writes tables as delimited text.
//
// The wire shape is a header line naming the columns followed by one record
// per line. Imported cell values are strings; the package does no type
// inference. On export, values are rendered with fmt.Sprint and Missing
// becomes an empty field.
//
// ReadFile/WriteFile pick a compression codec from the file extension
// (.gz, .zst, .lz4). ReadBlob/WriteBlob run the same format through any
// blobstore.BlobStore.
package textio

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/hupe1980/tablo"
)

// Options configures delimited text IO.
type Options struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune

	// Comment, when non-zero, causes lines starting with it to be ignored
	// on import.
	Comment rune
}

func applyOptions(optFns []func(*Options)) Options {
	o := Options{Comma: ','}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// ReadTable reads a header plus records from r into a new table.
func ReadTable(r io.Reader, optFns ...func(*Options)) (*tablo.Table, error) {
	o := applyOptions(optFns)

	cr := csv.NewReader(r)
	cr.Comma = o.Comma
	cr.Comment = o.Comment

	header, err := cr.Read()
	if err != nil {
		if err == io.EOF {
			return nil, tablo.ErrEmptySchema
		}
		return nil, err
	}

	t, err := tablo.New(header)
	if err != nil {
		return nil, err
	}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		values := make([]any, len(record))
		for i, field := range record {
			values[i] = field
		}
		if err := t.AppendRow(values); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// WriteTable writes the table's header and rows to w.
func WriteTable(w io.Writer, t *tablo.Table, optFns ...func(*Options)) error {
	o := applyOptions(optFns)

	cw := csv.NewWriter(w)
	cw.Comma = o.Comma

	columns := t.Columns()
	if err := cw.Write(columns); err != nil {
		return err
	}

	record := make([]string, len(columns))
	for row := range t.All() {
		for i, name := range columns {
			record[i] = formatValue(row[name])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatValue(v tablo.Value) string {
	if tablo.IsMissing(v) || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
