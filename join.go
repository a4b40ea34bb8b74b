package tablo

import (
	"fmt"
	"time"
)

// JoinMode selects which unmatched rows a join retains.
type JoinMode int

const (
	// JoinInner keeps only matched row combinations.
	JoinInner JoinMode = iota
	// JoinLeft keeps matched combinations plus unmatched left rows.
	JoinLeft
	// JoinRight keeps matched combinations plus unmatched right rows.
	JoinRight
	// JoinOuter keeps matched combinations plus unmatched rows of both sides.
	JoinOuter
)

// String implements fmt.Stringer.
func (m JoinMode) String() string {
	switch m {
	case JoinInner:
		return "inner"
	case JoinLeft:
		return "left"
	case JoinRight:
		return "right"
	case JoinOuter:
		return "outer"
	default:
		return fmt.Sprintf("JoinMode(%d)", int(m))
	}
}

// ParseJoinMode parses "inner", "left", "right" or "outer".
func ParseJoinMode(s string) (JoinMode, error) {
	switch s {
	case "inner":
		return JoinInner, nil
	case "left":
		return JoinLeft, nil
	case "right":
		return JoinRight, nil
	case "outer":
		return JoinOuter, nil
	default:
		return 0, &ErrInvalidJoinMode{Mode: -1, Name: s}
	}
}

// JoinKey names the join columns on each side.
type JoinKey struct {
	Left  string
	Right string
}

// On matches rows where both tables carry the key under the same name.
func On(column string) JoinKey {
	return JoinKey{Left: column, Right: column}
}

// OnPair matches rows where the key lives under different names on each side.
func OnPair(left, right string) JoinKey {
	return JoinKey{Left: left, Right: right}
}

// Join combines the receiver (left side) with another table on key equality.
//
// Key equality is exact: values are compared with Go ==, so an int key never
// matches a string or float key holding the "same" number. Join key values
// must be comparable.
//
// The output schema is, in fixed order: the merged key column (named after
// the left key, taking the left value and falling back to the right value
// when the left side is absent), the remaining left columns, the remaining
// right columns. A right column that collides with an output column name is
// a schema error.
//
// Output row order is deterministic:
//  1. matched combinations in left-row order, with duplicate right matches
//     adjacent;
//  2. for left/outer modes, unmatched left rows in original order;
//  3. for right/outer modes, unmatched right rows grouped by key in the
//     right side's first-seen key order.
//
// Gaps in unmatched rows are filled with Missing.
func (t *Table) Join(right *Table, on JoinKey, mode JoinMode) (*Table, error) {
	start := time.Now()

	joined, err := t.join(right, on, mode)

	outRows := 0
	if joined != nil {
		outRows = len(joined.rows)
	}
	t.metrics.RecordJoin(mode, outRows, time.Since(start), err)
	t.logger.LogJoin(mode, len(t.rows), len(right.rows), outRows, err)
	return joined, err
}

func (t *Table) join(right *Table, on JoinKey, mode JoinMode) (*Table, error) {
	switch mode {
	case JoinInner, JoinLeft, JoinRight, JoinOuter:
	default:
		return nil, &ErrInvalidJoinMode{Mode: mode}
	}
	if !t.HasColumn(on.Left) {
		return nil, &ErrColumnNotFound{Column: on.Left}
	}
	if !right.HasColumn(on.Right) {
		return nil, &ErrColumnNotFound{Column: on.Right}
	}

	outColumns, err := joinSchema(t.columns, right.columns, on)
	if err != nil {
		return nil, err
	}

	// Multi-valued lookup of right rows by key, preserving first-seen key
	// order for the right-unmatched pass.
	lookup := make(map[Value][]Row, len(right.rows))
	keyOrder := make([]Value, 0, len(right.rows))
	for _, rrow := range right.rows {
		k := rrow[on.Right]
		if _, seen := lookup[k]; !seen {
			keyOrder = append(keyOrder, k)
		}
		lookup[k] = append(lookup[k], rrow)
	}

	out := t.derived(outColumns)

	joinRow := func(lrow, rrow Row) Row {
		key := Value(Missing)
		if lrow != nil {
			key = lrow[on.Left]
		}
		if IsMissing(key) && rrow != nil {
			key = rrow[on.Right]
		}
		row := make(Row, len(outColumns))
		row[on.Left] = key
		for _, name := range t.columns {
			if name == on.Left {
				continue
			}
			if lrow != nil {
				row[name] = lrow[name]
			} else {
				row[name] = Missing
			}
		}
		for _, name := range right.columns {
			if name == on.Right {
				continue
			}
			if rrow != nil {
				row[name] = rrow[name]
			} else {
				row[name] = Missing
			}
		}
		return row
	}

	// Matched pass: left rows in original order, right duplicates fan out
	// adjacently. Left duplicates are not deduplicated.
	var leftUnmatched []Row
	matched := make(map[Value]struct{})
	for _, lrow := range t.rows {
		k := lrow[on.Left]
		rrows, ok := lookup[k]
		if ok {
			for _, rrow := range rrows {
				out.rows = append(out.rows, joinRow(lrow, rrow))
			}
			matched[k] = struct{}{}
			continue
		}
		if mode == JoinLeft || mode == JoinOuter {
			leftUnmatched = append(leftUnmatched, lrow)
		}
	}

	// Deferred unmatched passes.
	if mode == JoinLeft || mode == JoinOuter {
		for _, lrow := range leftUnmatched {
			out.rows = append(out.rows, joinRow(lrow, nil))
		}
	}
	if mode == JoinRight || mode == JoinOuter {
		for _, k := range keyOrder {
			if _, ok := matched[k]; ok {
				continue
			}
			for _, rrow := range lookup[k] {
				out.rows = append(out.rows, joinRow(nil, rrow))
			}
		}
	}

	return out, nil
}

// joinSchema computes the output column order: merged key, left minus key,
// right minus key. Any resulting duplicate is rejected.
func joinSchema(left, right []string, on JoinKey) ([]string, error) {
	out := make([]string, 0, len(left)+len(right)-1)
	out = append(out, on.Left)
	for _, name := range left {
		if name != on.Left {
			out = append(out, name)
		}
	}
	for _, name := range right {
		if name != on.Right {
			out = append(out, name)
		}
	}
	if dup := duplicateName(out); dup != "" {
		return nil, &ErrDuplicateColumn{Column: dup}
	}
	return out, nil
}
