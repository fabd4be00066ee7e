// Package pgstruct decodes single PostgreSQL result rows into Go values
// without per-type decoding code.
//
// A Row is built from the columns of one fetched row: each column carries
// its name, type oid, and raw value in the binary wire format. FromRow then
// drives decoding from the shape of the target type:
//
//	row, err := pgstruct.NewRow([]pgstruct.Column{
//		{Name: "id", OID: pgstruct.Int4OID, Value: idBytes},
//		{Name: "name", OID: pgstruct.TextOID, Value: nameBytes},
//	})
//	if err != nil {
//		// ...
//	}
//
//	type User struct {
//		ID   int32  `db:"id"`
//		Name string `db:"name"`
//	}
//
//	user, err := pgstruct.FromRow[User](row)
//
// Struct fields are matched to columns by the db struct tag, or by the field
// name when no tag is present; the match is case-insensitive. A field tagged
// db:"-" is ignored.
//
// Pointer targets decode SQL NULL to nil. Slice targets decode array
// columns element by element, so []*int32 over an int4[] column with NULL
// elements works. json and jsonb columns decode through encoding/json into
// struct, map, and slice targets. numeric columns decode into
// decimal.Decimal, float64, or string targets.
//
// Nested struct fields are flattened: their field names resolve against the
// same flat column namespace as the parent's fields, with no prefix.
// Anonymous embedded structs and fields tagged db:",flatten" always
// flatten; a plain struct-typed field flattens when the row has no column
// with its name, and decodes the column as a JSON document when it does.
// Two fields resolving to the same column is an error, never a silent
// overwrite.
//
// FromRowByPos matches struct fields to columns by position instead of by
// name, for tuple-like targets. FromRowToMap decodes the whole row into a
// map of natural Go values keyed by column name.
//
// Conversions are strict: an int8 column does not decode into an int32
// target, nor the reverse, and a NULL column only decodes into a pointer
// target. Every failure is reported with the column and field position at
// which it happened, and the first failure aborts the whole row.
//
// The decoder performs no I/O and holds no mutable shared state; rows of a
// fetched batch may be decoded concurrently.
package pgstruct
