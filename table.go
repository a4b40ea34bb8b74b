package tablo

import (
	"iter"
	"slices"
	"strings"
	"time"
)

// Table is an ordered sequence of uniform-shape records plus the ordered list
// of column names that defines display and output order.
//
// Invariants:
//   - every row's key set equals the schema, before and after any public
//     mutating call
//   - insertion order of rows is preserved and meaningful (sort stability,
//     join output ordering)
type Table struct {
	columns []string
	rows    []Row

	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty table with the given column schema.
// Column names must be non-empty and unique.
func New(columns []string, optFns ...Option) (*Table, error) {
	if len(columns) == 0 {
		return nil, ErrEmptySchema
	}
	seen := make(map[string]struct{}, len(columns))
	for _, name := range columns {
		if name == "" {
			return nil, ErrEmptySchema
		}
		if _, dup := seen[name]; dup {
			return nil, &ErrDuplicateColumn{Column: name}
		}
		seen[name] = struct{}{}
	}

	opts := applyOptions(optFns)

	return &Table{
		columns: slices.Clone(columns),
		metrics: opts.metrics,
		logger:  opts.logger,
	}, nil
}

// NewFromString creates an empty table from a single schema string with
// column names separated by commas and/or spaces, e.g. "id, name, age".
func NewFromString(schema string, optFns ...Option) (*Table, error) {
	return New(SplitSchema(schema), optFns...)
}

// SplitSchema splits a schema string on commas and whitespace.
func SplitSchema(schema string) []string {
	return strings.FieldsFunc(schema, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// derived creates an empty table sharing t's ambient configuration.
// The caller owns columns.
func (t *Table) derived(columns []string) *Table {
	return &Table{
		columns: columns,
		metrics: t.metrics,
		logger:  t.logger,
	}
}

// Columns returns a copy of the schema in display order.
func (t *Table) Columns() []string {
	return slices.Clone(t.columns)
}

// HasColumn reports whether name is part of the schema.
func (t *Table) HasColumn(name string) bool {
	return slices.Contains(t.columns, name)
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns the rows in insertion order. The returned slice is a copy but
// the Row maps are the table's own: mutating a value through them mutates the
// table.
func (t *Table) Rows() []Row {
	return slices.Clone(t.rows)
}

// Row returns the row at position i.
func (t *Table) Row(i int) Row {
	return t.rows[i]
}

// All returns an iterator over the rows in insertion order.
func (t *Table) All() iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for _, row := range t.rows {
			if !yield(row) {
				return
			}
		}
	}
}

// Column returns the values of one column in row order.
func (t *Table) Column(name string) ([]Value, error) {
	if !t.HasColumn(name) {
		return nil, &ErrColumnNotFound{Column: name}
	}
	values := make([]Value, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[name]
	}
	return values, nil
}

// AppendRow normalizes data and appends one record.
//
// data may be a positional slice or array (length must equal the schema
// length), a map with string keys (unknown keys ignored, absent schema keys
// filled with Missing), or a struct (exported fields by name, `tablo` tag
// honored).
func (t *Table) AppendRow(data any) error {
	return t.AddRows(data)
}

// AddRows normalizes and appends multiple records. The whole batch is
// validated before any row is appended, so a failing element leaves the
// table unchanged.
func (t *Table) AddRows(data ...any) error {
	start := time.Now()

	rows := make([]Row, len(data))
	for i, d := range data {
		row, err := t.coerceRow(d)
		if err != nil {
			t.metrics.RecordAppend(0, time.Since(start), err)
			t.logger.LogAppend(0, err)
			return err
		}
		rows[i] = row
	}
	t.rows = append(t.rows, rows...)

	t.metrics.RecordAppend(len(rows), time.Since(start), nil)
	t.logger.LogAppend(len(rows), nil)
	return nil
}

// Equal reports whether two tables have the same schema and the same row
// values in the same order. Row identity is ignored.
func (t *Table) Equal(other *Table) bool {
	if other == nil || !slices.Equal(t.columns, other.columns) || len(t.rows) != len(other.rows) {
		return false
	}
	for i, row := range t.rows {
		for _, name := range t.columns {
			if row[name] != other.rows[i][name] {
				return false
			}
		}
	}
	return true
}

func (t *Table) columnIndex(name string) int {
	return slices.Index(t.columns, name)
}
