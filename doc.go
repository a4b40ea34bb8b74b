// Package tablo provides a lightweight embedded tabular data structure for Go.
//
// Tablo is a small alternative to a full dataframe library for ad-hoc
// structured data manipulation:
//
//   - Ordered column schema plus ordered records (rows)
//   - SQL-like operations: select, filter, join, sort
//   - Column transforms: rename, remove, set, derive, map
//   - Hash joins with inner/left/right/outer modes and deterministic output
//   - Roaring-bitmap row sets and inverted column indexes for repeated filtering
//   - Import/export adapters for delimited text, JSON lines and spreadsheets,
//     over local files, in-memory buffers or object storage (S3, MinIO)
//
// # Quick Start
//
// Create a table and add rows:
//
//	t, err := tablo.NewFromString("id b c")
//	if err != nil {
//	    panic(err)
//	}
//	if err := t.AddRows(
//	    []any{1, 5, 6},
//	    []any{2, 2, 3},
//	    []any{3, 4, 8},
//	); err != nil {
//	    panic(err)
//	}
//
// Join two tables:
//
//	joined, err := t.Join(t2, tablo.OnPair("id", "id2"), tablo.JoinLeft)
//
// Filter and select:
//
//	view := t.Filter(func(r tablo.Row) bool { return r["b"].(int) > 2 }) // aliases rows
//	snap, err := t.Select("id", "c")                                     // independent rows
//
// # Views and Copies
//
// Filter returns a view: the result shares row objects with the source, so
// mutating a value through either side is visible through the other. Select
// materializes fresh rows; use Select("*") to de-alias a filtered view.
//
// # Concurrency
//
// A Table is not safe for concurrent mutation. All operations are immediate,
// synchronous in-memory transformations under a single-writer contract; there
// is no internal locking. The import/export adapters are the only components
// that perform I/O.
package tablo
