package tablo

import (
	"slices"
	"time"
)

// Select returns a new table containing only the named columns, in the order
// given. Each argument may itself be a comma/space-delimited list. No
// arguments, or a single "*", selects all columns.
//
// The result owns fresh Row maps: mutating a value in the result does not
// affect the receiver (values themselves are copied by reference). Select("*")
// is the explicit way to de-alias a filtered view.
func (t *Table) Select(columns ...string) (*Table, error) {
	start := time.Now()

	var names []string
	if len(columns) == 0 || (len(columns) == 1 && columns[0] == "*") {
		names = slices.Clone(t.columns)
	} else {
		for _, c := range columns {
			names = append(names, SplitSchema(c)...)
		}
	}

	for _, name := range names {
		if !t.HasColumn(name) {
			err := &ErrColumnNotFound{Column: name}
			t.metrics.RecordSelect(time.Since(start), err)
			t.logger.LogSelect(names, 0, err)
			return nil, err
		}
	}

	if dup := duplicateName(names); dup != "" {
		err := &ErrDuplicateColumn{Column: dup}
		t.metrics.RecordSelect(time.Since(start), err)
		t.logger.LogSelect(names, 0, err)
		return nil, err
	}

	out := t.derived(names)
	out.rows = make([]Row, len(t.rows))
	for i, row := range t.rows {
		fresh := make(Row, len(names))
		for _, name := range names {
			fresh[name] = row[name]
		}
		out.rows[i] = fresh
	}

	t.metrics.RecordSelect(time.Since(start), nil)
	t.logger.LogSelect(names, len(out.rows), nil)
	return out, nil
}

// Filter returns a view containing the rows for which pred is true, in
// original order.
//
// The view shares Row objects with the receiver: mutating a value through
// the view mutates the original, and vice versa. Use Select("*") on the
// result for an independent copy.
func (t *Table) Filter(pred func(Row) bool) *Table {
	start := time.Now()

	out := t.derived(slices.Clone(t.columns))
	for _, row := range t.rows {
		if pred(row) {
			out.rows = append(out.rows, row)
		}
	}

	t.metrics.RecordFilter(time.Since(start), nil)
	t.logger.LogFilter(len(out.rows), len(t.rows))
	return out
}

func duplicateName(names []string) string {
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, dup := seen[n]; dup {
			return n
		}
		seen[n] = struct{}{}
	}
	return ""
}
