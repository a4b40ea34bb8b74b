package tablo

import (
	"github.com/hupe1980/tablo/rowset"
)

// Index is a unique-key lookup over one column, mapping each key value to its
// row.
//
// An Index is a snapshot: rows appended after the build are not visible
// through it, and it shares Row objects with the table it was built from.
type Index struct {
	column  string
	byValue map[Value]Row
}

// BuildIndex builds a unique index over the named column. Every value in the
// column must be distinct; a duplicate fails the build with ErrDuplicateKey.
//
// Index key values must be comparable.
func (t *Table) BuildIndex(column string) (*Index, error) {
	if !t.HasColumn(column) {
		err := &ErrColumnNotFound{Column: column}
		t.logger.LogIndexBuild(column, 0, err)
		return nil, err
	}

	byValue := make(map[Value]Row, len(t.rows))
	for _, row := range t.rows {
		k := row[column]
		if _, dup := byValue[k]; dup {
			err := &ErrDuplicateKey{Column: column, Value: k}
			t.logger.LogIndexBuild(column, 0, err)
			return nil, err
		}
		byValue[k] = row
	}

	t.logger.LogIndexBuild(column, len(byValue), nil)
	return &Index{column: column, byValue: byValue}, nil
}

// Column returns the indexed column name.
func (ix *Index) Column() string {
	return ix.column
}

// Lookup returns the row holding the key value, or ErrNotFound when absent.
func (ix *Index) Lookup(key Value) (Row, error) {
	row, ok := ix.byValue[key]
	if !ok {
		return nil, ErrNotFound
	}
	return row, nil
}

// Has reports whether the key value is present.
func (ix *Index) Has(key Value) bool {
	_, ok := ix.byValue[key]
	return ok
}

// Len returns the number of indexed keys.
func (ix *Index) Len() int {
	return len(ix.byValue)
}

// InvertedIndex maps each distinct value of one column to the set of row
// positions holding it. Unlike Index it permits duplicate values, so it fits
// low-cardinality columns used for repeated filtering.
//
// An InvertedIndex is a positional snapshot: any mutation of the table's row
// order or length invalidates it.
type InvertedIndex struct {
	column   string
	postings map[Value]*rowset.Set
}

// BuildInvertedIndex builds a value-to-positions index over the named column.
func (t *Table) BuildInvertedIndex(column string) (*InvertedIndex, error) {
	if !t.HasColumn(column) {
		err := &ErrColumnNotFound{Column: column}
		t.logger.LogIndexBuild(column, 0, err)
		return nil, err
	}

	postings := make(map[Value]*rowset.Set)
	for i, row := range t.rows {
		k := row[column]
		set, ok := postings[k]
		if !ok {
			set = rowset.New()
			postings[k] = set
		}
		set.Add(i)
	}

	t.logger.LogIndexBuild(column, len(postings), nil)
	return &InvertedIndex{column: column, postings: postings}, nil
}

// Column returns the indexed column name.
func (ix *InvertedIndex) Column() string {
	return ix.column
}

// Positions returns the set of row positions holding the value. The returned
// set is shared with the index; clone before mutating.
func (ix *InvertedIndex) Positions(value Value) *rowset.Set {
	if set, ok := ix.postings[value]; ok {
		return set
	}
	return rowset.New()
}

// PositionsWhere unions the position sets of all values matching pred.
func (ix *InvertedIndex) PositionsWhere(pred func(Value) bool) *rowset.Set {
	out := rowset.New()
	for v, set := range ix.postings {
		if pred(v) {
			out.Or(set)
		}
	}
	return out
}

// Positions returns the set of row positions for which pred is true.
// Combine sets with rowset's boolean operations, then materialize a view
// with FilterSet.
func (t *Table) Positions(pred func(Row) bool) *rowset.Set {
	out := rowset.New()
	for i, row := range t.rows {
		if pred(row) {
			out.Add(i)
		}
	}
	return out
}

// FilterSet returns a view of the table restricted to the given row
// positions, in ascending position order. Like Filter, the view shares Row
// objects with the receiver.
func (t *Table) FilterSet(set *rowset.Set) *Table {
	out := t.derived(t.Columns())
	for pos := range set.All() {
		if pos >= len(t.rows) {
			break
		}
		out.rows = append(out.rows, t.rows[pos])
	}
	return out
}
