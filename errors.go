package tablo

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced column or key is absent.
	ErrNotFound = errors.New("not found")

	// ErrSchema is returned when a column definition is malformed.
	ErrSchema = errors.New("invalid schema")

	// ErrEmptySchema is returned when a schema has no columns or an empty
	// column name. Satisfies errors.Is(err, ErrSchema).
	ErrEmptySchema = fmt.Errorf("%w: empty schema", ErrSchema)
)

// ErrColumnNotFound indicates a referenced column is not part of the schema.
//
// Satisfies errors.Is(err, ErrNotFound).
type ErrColumnNotFound struct {
	Column string
}

func (e *ErrColumnNotFound) Error() string {
	return fmt.Sprintf("column %q not found", e.Column)
}

func (e *ErrColumnNotFound) Unwrap() error { return ErrNotFound }

// ErrArityMismatch indicates a positional row or column vector whose length
// does not match the table shape.
type ErrArityMismatch struct {
	What string // "row" or "column"
	Want int
	Got  int
}

func (e *ErrArityMismatch) Error() string {
	return fmt.Sprintf("%s arity mismatch: want %d values, got %d", e.What, e.Want, e.Got)
}

// ErrDuplicateColumn indicates a column name that would appear twice in a
// schema.
//
// Satisfies errors.Is(err, ErrSchema).
type ErrDuplicateColumn struct {
	Column string
}

func (e *ErrDuplicateColumn) Error() string {
	return fmt.Sprintf("duplicate column %q", e.Column)
}

func (e *ErrDuplicateColumn) Unwrap() error { return ErrSchema }

// ErrInvalidJoinMode indicates a join mode outside the four supported values.
// Name is set when the mode came from an unparsable string.
type ErrInvalidJoinMode struct {
	Mode JoinMode
	Name string
}

func (e *ErrInvalidJoinMode) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("invalid join mode %q", e.Name)
	}
	return fmt.Sprintf("invalid join mode: %d", int(e.Mode))
}

// ErrDuplicateKey indicates an index build over a column whose values are not
// unique.
type ErrDuplicateKey struct {
	Column string
	Value  Value
}

func (e *ErrDuplicateKey) Error() string {
	return fmt.Sprintf("duplicate key %v in column %q", e.Value, e.Column)
}
