// Package sheetio imports spreadsheet worksheets as tables via excelize.
//
// The first worksheet row is the header; header cells are whitespace-trimmed.
// Data rows shorter than the header are padded with Missing. Cell values are
// imported as strings, matching excelize's formatted-cell representation.
// Import only; there is no spreadsheet export.
package sheetio

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/hupe1980/tablo"
)

// Options configures worksheet import.
type Options struct {
	// Sheet selects the worksheet by zero-based position. Defaults to 0.
	Sheet int
}

func applyOptions(optFns []func(*Options)) Options {
	o := Options{}
	for _, fn := range optFns {
		fn(&o)
	}
	return o
}

// ReadFile imports a worksheet from a spreadsheet file.
func ReadFile(path string, optFns ...func(*Options)) (*tablo.Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readWorkbook(f, applyOptions(optFns))
}

// Read imports a worksheet from an in-memory spreadsheet.
func Read(r io.Reader, optFns ...func(*Options)) (*tablo.Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return readWorkbook(f, applyOptions(optFns))
}

func readWorkbook(f *excelize.File, o Options) (*tablo.Table, error) {
	sheets := f.GetSheetList()
	if o.Sheet < 0 || o.Sheet >= len(sheets) {
		return nil, fmt.Errorf("sheet index %d out of range (%d sheets)", o.Sheet, len(sheets))
	}

	rows, err := f.GetRows(sheets[o.Sheet])
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, tablo.ErrEmptySchema
	}

	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = strings.TrimSpace(cell)
	}

	t, err := tablo.New(header)
	if err != nil {
		return nil, err
	}

	for _, cells := range rows[1:] {
		values := make([]any, len(header))
		for i := range header {
			if i < len(cells) {
				values[i] = cells[i]
			} else {
				values[i] = tablo.Missing
			}
		}
		if err := t.AppendRow(values); err != nil {
			return nil, err
		}
	}

	return t, nil
}
