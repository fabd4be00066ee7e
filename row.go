package pgstruct

import (
	"fmt"
	"strings"

	"github.com/jackc/pgproto3/v2"
)

// PostgreSQL format codes
const (
	TextFormatCode   = 0
	BinaryFormatCode = 1
)

// Column is one decoded cell of a row: the column name, the PostgreSQL type
// oid reported for it, and the raw value in the binary wire format. A nil
// Value means SQL NULL; an empty, non-nil Value is an empty value.
type Column struct {
	Name  string
	OID   uint32
	Value []byte
}

// IsNull reports whether the column is SQL NULL.
func (c Column) IsNull() bool { return c.Value == nil }

// Row is a read-only view over one fetched row: the columns in projection
// order plus a name index built at construction. A Row is handed to one
// decode call and never mutated; the raw column values remain owned by the
// caller and must not change while the Row is in use.
type Row struct {
	columns   []Column
	nameIndex map[string]int
}

// NewRow builds a Row from columns in projection order. It fails with
// DuplicateColumnError when two columns share a name.
func NewRow(columns []Column) (*Row, error) {
	nameIndex := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := nameIndex[c.Name]; ok {
			return nil, DuplicateColumnError{Name: c.Name}
		}
		nameIndex[c.Name] = i
	}
	return &Row{columns: columns, nameIndex: nameIndex}, nil
}

// NewRowFromDataRow builds a Row from the pgproto3 messages describing one
// result row: the RowDescription fields and the DataRow. Every field must
// use the binary format code; the decoder does not understand text-format
// results. The DataRow's value buffers are referenced, not copied.
func NewRowFromDataRow(fields []pgproto3.FieldDescription, dr *pgproto3.DataRow) (*Row, error) {
	if len(fields) != len(dr.Values) {
		return nil, fmt.Errorf("row description has %d fields, but data row has %d values", len(fields), len(dr.Values))
	}

	columns := make([]Column, len(fields))
	for i := range fields {
		if fields[i].Format != BinaryFormatCode {
			return nil, fmt.Errorf("column %q uses the text format code: only binary results are supported", string(fields[i].Name))
		}
		columns[i] = Column{
			Name:  string(fields[i].Name),
			OID:   fields[i].DataTypeOID,
			Value: dr.Values[i],
		}
	}

	return NewRow(columns)
}

// Len returns the number of columns in the row.
func (r *Row) Len() int { return len(r.columns) }

// Column returns the column at index i.
func (r *Row) Column(i int) (Column, bool) {
	if i < 0 || i >= len(r.columns) {
		return Column{}, false
	}
	return r.columns[i], true
}

// ColumnByName returns the column with the given name and its index. The
// lookup is exact first, then case-insensitive.
func (r *Row) ColumnByName(name string) (Column, int, bool) {
	if i, ok := r.nameIndex[name]; ok {
		return r.columns[i], i, true
	}
	for i := range r.columns {
		if strings.EqualFold(r.columns[i].Name, name) {
			return r.columns[i], i, true
		}
	}
	return Column{}, -1, false
}

// Names returns the column names in projection order.
func (r *Row) Names() []string {
	names := make([]string, len(r.columns))
	for i := range r.columns {
		names[i] = r.columns[i].Name
	}
	return names
}
