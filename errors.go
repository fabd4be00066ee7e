package pgstruct

import (
	"fmt"
	"reflect"
)

// DuplicateColumnError is returned by NewRow when two columns share a name.
type DuplicateColumnError struct {
	Name string
}

func (e DuplicateColumnError) Error() string {
	return fmt.Sprintf("duplicate column %q in row", e.Name)
}

// MissingColumnError is returned when a declared field or position has no
// corresponding column in the row.
type MissingColumnError struct {
	Column string
}

func (e MissingColumnError) Error() string {
	return fmt.Sprintf("no column %q in row", e.Column)
}

// NullValueError is returned when a SQL NULL is decoded into a target that
// cannot represent absence.
type NullValueError struct {
	Column string
	Target reflect.Type
}

func (e NullValueError) Error() string {
	return fmt.Sprintf("cannot decode NULL column %q into %s", e.Column, e.Target)
}

// TypeMismatchError is returned when a column's PostgreSQL type is
// incompatible with the target type. This includes integer width mismatches:
// the converter never widens or truncates.
type TypeMismatchError struct {
	Column string
	OID    uint32
	Target reflect.Type
	Reason string
}

func (e TypeMismatchError) Error() string {
	s := fmt.Sprintf("cannot decode %s column %q into %s", OIDName(e.OID), e.Column, e.Target)
	if e.Reason != "" {
		s += ": " + e.Reason
	}
	return s
}

// ArityMismatchError is returned by positional decoding when the number of
// columns does not match the number of target fields.
type ArityMismatchError struct {
	Columns int
	Fields  int
}

func (e ArityMismatchError) Error() string {
	return fmt.Sprintf("row has %d columns, but target has %d fields", e.Columns, e.Fields)
}

// FieldCollisionError is returned when two fields of a target struct,
// possibly at different flattening depths, map to the same column name.
type FieldCollisionError struct {
	Column string
	Fields [2]string
}

func (e FieldCollisionError) Error() string {
	return fmt.Sprintf("fields %s and %s both map to column %q", e.Fields[0], e.Fields[1], e.Column)
}

// UnsupportedArrayShapeError is returned when an array column is not
// single-dimensional.
type UnsupportedArrayShapeError struct {
	Dimensions int
}

func (e UnsupportedArrayShapeError) Error() string {
	return fmt.Sprintf("unsupported %d-dimensional array: only one dimension is supported", e.Dimensions)
}

// ArrayFormatError is returned when a binary array payload is malformed.
type ArrayFormatError struct {
	Reason string
}

func (e ArrayFormatError) Error() string {
	return "malformed array payload: " + e.Reason
}

// JSONSyntaxError is returned when a json or jsonb column does not contain
// valid JSON, or when a jsonb payload carries an unknown version byte.
type JSONSyntaxError struct {
	Column string
	Err    error
}

func (e JSONSyntaxError) Error() string {
	return fmt.Sprintf("invalid JSON in column %q: %v", e.Column, e.Err)
}

func (e JSONSyntaxError) Unwrap() error { return e.Err }

// ColumnDecodeError wraps a failure with the position at which it happened:
// the column being read and, for struct targets, the path of field names
// leading to it.
type ColumnDecodeError struct {
	ColumnName  string
	ColumnIndex int
	FieldPath   string
	Err         error
}

func (e ColumnDecodeError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("column %q (field %s): %v", e.ColumnName, e.FieldPath, e.Err)
	}
	return fmt.Sprintf("column %q: %v", e.ColumnName, e.Err)
}

func (e ColumnDecodeError) Unwrap() error { return e.Err }
