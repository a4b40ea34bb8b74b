package tablo

import (
	"reflect"
)

// Value is a cell value. Values are caller-defined and opaque to the core;
// they are only compared (join keys, index keys) and copied by reference.
// Values used as join or index keys must be comparable in the Go sense.
type Value = any

// Row is a single record: a mapping from column name to value. A row's key
// set is always exactly the schema of the table that owns it.
type Row map[string]Value

// missingValue is the sentinel type behind Missing.
type missingValue struct{}

func (missingValue) String() string { return "<missing>" }

// MarshalJSON encodes the missing sentinel as JSON null.
func (missingValue) MarshalJSON() ([]byte, error) { return []byte("null"), nil }

// Missing marks a cell with no value. It is used both for fields not provided
// at row construction and for gaps produced by unmatched join rows.
var Missing Value = missingValue{}

// IsMissing reports whether v is the Missing sentinel.
func IsMissing(v Value) bool {
	_, ok := v.(missingValue)
	return ok
}

// coerceRow normalizes one of the three supported input shapes into a Row
// whose keys equal the schema:
//
//   - positional slice or array: zipped with the schema, length must match
//   - map with string keys: schema keys extracted, unknown keys ignored
//   - struct (or pointer to struct): exported fields extracted by name,
//     with a `tablo` field tag taking precedence
//
// Absent map keys and struct fields default to Missing. coerceRow is pure:
// it never mutates the table.
func (t *Table) coerceRow(data any) (Row, error) {
	switch d := data.(type) {
	case Row:
		return t.rowFromMap(d), nil
	case map[string]Value:
		return t.rowFromMap(d), nil
	case []Value:
		return t.rowFromValues(d)
	}

	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, &ErrArityMismatch{What: "row", Want: len(t.columns), Got: 0}
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		values := make([]Value, rv.Len())
		for i := range values {
			values[i] = rv.Index(i).Interface()
		}
		return t.rowFromValues(values)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			break
		}
		m := make(map[string]Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return t.rowFromMap(m), nil
	case reflect.Struct:
		return t.rowFromStruct(rv), nil
	}

	return nil, &ErrArityMismatch{What: "row", Want: len(t.columns), Got: 0}
}

func (t *Table) rowFromValues(values []Value) (Row, error) {
	if len(values) != len(t.columns) {
		return nil, &ErrArityMismatch{What: "row", Want: len(t.columns), Got: len(values)}
	}
	row := make(Row, len(t.columns))
	for i, name := range t.columns {
		row[name] = values[i]
	}
	return row, nil
}

func (t *Table) rowFromMap(m map[string]Value) Row {
	row := make(Row, len(t.columns))
	for _, name := range t.columns {
		if v, ok := m[name]; ok {
			row[name] = v
		} else {
			row[name] = Missing
		}
	}
	return row
}

func (t *Table) rowFromStruct(rv reflect.Value) Row {
	fields := make(map[string]Value)
	collectFields(rv, fields)

	row := make(Row, len(t.columns))
	for _, name := range t.columns {
		if v, ok := fields[name]; ok {
			row[name] = v
		} else {
			row[name] = Missing
		}
	}
	return row
}

// collectFields gathers exported fields, shallow fields shadowing embedded
// ones as in encoding/json.
func collectFields(rv reflect.Value, out map[string]Value) {
	rt := rv.Type()
	var embedded []reflect.Value
	for i := range rt.NumField() {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if f.Anonymous && f.Type.Kind() == reflect.Struct {
			embedded = append(embedded, rv.Field(i))
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup("tablo"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		}
		if _, taken := out[name]; !taken {
			out[name] = rv.Field(i).Interface()
		}
	}
	for _, e := range embedded {
		collectFields(e, out)
	}
}
