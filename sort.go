package tablo

import (
	"cmp"
	"fmt"
	"sort"
	"time"
)

// SortOptions configures Sort.
type SortOptions struct {
	// Descending reverses the ordering. Equal keys still preserve their
	// prior relative order.
	Descending bool

	// Key converts the sort column value before comparison, e.g. lower-case
	// folding or parsing numbers out of strings. Default: identity.
	Key func(Value) Value

	// Less overrides the default value ordering entirely. When set, Key is
	// still applied first.
	Less func(a, b Value) bool
}

// Sort reorders the rows in place by the values of one column, ascending
// unless configured otherwise. The sort is stable: rows with equal keys keep
// their previous relative order.
func (t *Table) Sort(column string, optFns ...func(o *SortOptions)) error {
	start := time.Now()

	opts := SortOptions{}
	for _, fn := range optFns {
		fn(&opts)
	}

	if !t.HasColumn(column) {
		err := &ErrColumnNotFound{Column: column}
		t.metrics.RecordSort(time.Since(start), err)
		t.logger.LogSort(column, 0, err)
		return err
	}

	// Extract keys once so Key is called at most once per row.
	keys := make([]Value, len(t.rows))
	for i, row := range t.rows {
		k := row[column]
		if opts.Key != nil {
			k = opts.Key(k)
		}
		keys[i] = k
	}

	less := opts.Less
	if less == nil {
		less = func(a, b Value) bool { return compareValues(a, b) < 0 }
	}

	order := make([]int, len(t.rows))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		if opts.Descending {
			return less(keys[order[j]], keys[order[i]])
		}
		return less(keys[order[i]], keys[order[j]])
	})

	sorted := make([]Row, len(t.rows))
	for i, idx := range order {
		sorted[i] = t.rows[idx]
	}
	t.rows = sorted

	t.metrics.RecordSort(time.Since(start), nil)
	t.logger.LogSort(column, len(t.rows), nil)
	return nil
}

// compareValues is the default ordering used by Sort. Missing sorts before
// everything; numeric kinds order numerically among themselves; otherwise
// values of the same dynamic type use their natural order, and values of
// different types fall back to a deterministic type-name ordering.
func compareValues(a, b Value) int {
	aMissing, bMissing := IsMissing(a) || a == nil, IsMissing(b) || b == nil
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		return -1
	case bMissing:
		return 1
	}

	if af, aok := asFloat(a); aok {
		if bf, bok := asFloat(b); bok {
			return cmp.Compare(af, bf)
		}
	}

	switch av := a.(type) {
	case string:
		if bv, ok := b.(string); ok {
			return cmp.Compare(av, bv)
		}
	case bool:
		if bv, ok := b.(bool); ok {
			switch {
			case av == bv:
				return 0
			case bv:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Compare(bv)
		}
	}

	// Mixed or unknown types: deterministic, not semantically meaningful.
	if c := cmp.Compare(fmt.Sprintf("%T", a), fmt.Sprintf("%T", b)); c != 0 {
		return c
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}

func asFloat(v Value) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
