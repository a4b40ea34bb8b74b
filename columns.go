package tablo

import (
	"reflect"
	"time"
)

// RenameColumn renames a column, keeping its schema position. Every row's
// value is carried over to the new name.
func (t *Table) RenameColumn(oldName, newName string) error {
	idx := t.columnIndex(oldName)
	if idx < 0 {
		err := &ErrColumnNotFound{Column: oldName}
		t.logger.LogColumnOp("rename", oldName, err)
		return err
	}
	if newName == "" {
		t.logger.LogColumnOp("rename", oldName, ErrSchema)
		return ErrSchema
	}
	if newName == oldName {
		return nil
	}
	if t.HasColumn(newName) {
		err := &ErrDuplicateColumn{Column: newName}
		t.logger.LogColumnOp("rename", oldName, err)
		return err
	}

	t.columns[idx] = newName
	for _, row := range t.rows {
		row[newName] = row[oldName]
		delete(row, oldName)
	}

	t.logger.LogColumnOp("rename", newName, nil)
	return nil
}

// RemoveColumn drops a column from the schema and from every row.
func (t *Table) RemoveColumn(name string) error {
	idx := t.columnIndex(name)
	if idx < 0 {
		err := &ErrColumnNotFound{Column: name}
		t.logger.LogColumnOp("remove", name, err)
		return err
	}

	t.columns = append(t.columns[:idx], t.columns[idx+1:]...)
	for _, row := range t.rows {
		delete(row, name)
	}

	t.logger.LogColumnOp("remove", name, nil)
	return nil
}

// SetColumn sets a column on every row. If name is not part of the schema it
// is appended to it.
//
// A slice or array value is assigned positionally and must have exactly one
// element per row; any other value is broadcast to all rows. Validation
// happens before any row is touched.
func (t *Table) SetColumn(name string, value any) error {
	if name == "" {
		t.logger.LogColumnOp("set", name, ErrSchema)
		return ErrSchema
	}

	var vector []Value
	rv := reflect.ValueOf(value)
	if value != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
		if rv.Len() != len(t.rows) {
			err := &ErrArityMismatch{What: "column", Want: len(t.rows), Got: rv.Len()}
			t.logger.LogColumnOp("set", name, err)
			return err
		}
		vector = make([]Value, rv.Len())
		for i := range vector {
			vector[i] = rv.Index(i).Interface()
		}
	}

	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	if vector != nil {
		for i, row := range t.rows {
			row[name] = vector[i]
		}
	} else {
		for _, row := range t.rows {
			row[name] = value
		}
	}

	t.logger.LogColumnOp("set", name, nil)
	return nil
}

// DeriveColumn computes fn for each row and stores the result under name,
// appending name to the schema if new. Rows are visited in insertion order,
// so fn observes earlier derivations on prior rows.
func (t *Table) DeriveColumn(name string, fn func(Row) Value) error {
	start := time.Now()
	if name == "" || fn == nil {
		t.logger.LogColumnOp("derive", name, ErrSchema)
		return ErrSchema
	}

	if !t.HasColumn(name) {
		t.columns = append(t.columns, name)
	}
	for _, row := range t.rows {
		row[name] = fn(row)
	}

	t.metrics.RecordTransform(time.Since(start), nil)
	t.logger.LogColumnOp("derive", name, nil)
	return nil
}

// MapColumn replaces each row's value at name with fn(old). Unlike
// DeriveColumn, the column must already exist. Useful for type conversions.
func (t *Table) MapColumn(name string, fn func(Value) Value) error {
	start := time.Now()
	if fn == nil {
		t.logger.LogColumnOp("map", name, ErrSchema)
		return ErrSchema
	}
	if !t.HasColumn(name) {
		err := &ErrColumnNotFound{Column: name}
		t.logger.LogColumnOp("map", name, err)
		return err
	}

	for _, row := range t.rows {
		row[name] = fn(row[name])
	}

	t.metrics.RecordTransform(time.Since(start), nil)
	t.logger.LogColumnOp("map", name, nil)
	return nil
}
