package pgstruct_test

import (
	"testing"

	"github.com/jackc/pgio"
	"github.com/pgstruct/pgstruct"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeInt4Array(t *testing.T) {
	value := arrayValue(pgstruct.Int4OID, int4Value(1), int4Value(2), int4Value(3))
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, value)

	v, err := pgstruct.FromRow[[]int32](row)
	require.NoError(t, err)
	assert.Equal(t, []int32{1, 2, 3}, v)
}

func TestDecodeTextArray(t *testing.T) {
	value := arrayValue(pgstruct.TextOID, textValue("a"), textValue(""), textValue("c"))
	row := singleColumnRow(t, pgstruct.TextArrayOID, value)

	v, err := pgstruct.FromRow[[]string](row)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "", "c"}, v)
}

func TestDecodeArrayWithNullsIntoPointers(t *testing.T) {
	value := arrayValue(pgstruct.Int4OID, int4Value(1), nil, int4Value(3))
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, value)

	v, err := pgstruct.FromRow[[]*int32](row)
	require.NoError(t, err)
	require.Len(t, v, 3)
	require.NotNil(t, v[0])
	assert.Equal(t, int32(1), *v[0])
	assert.Nil(t, v[1])
	require.NotNil(t, v[2])
	assert.Equal(t, int32(3), *v[2])
}

func TestDecodeArrayNullElementIntoNonPointer(t *testing.T) {
	value := arrayValue(pgstruct.Int4OID, int4Value(1), nil)
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, value)

	_, err := pgstruct.FromRow[[]int32](row)
	var nullErr pgstruct.NullValueError
	require.ErrorAs(t, err, &nullErr)
	assert.Equal(t, "v[1]", nullErr.Column)
}

func TestDecodeEmptyArray(t *testing.T) {
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, emptyArrayValue(pgstruct.Int4OID))

	v, err := pgstruct.FromRow[[]int32](row)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestDecodeMultiDimensionalArray(t *testing.T) {
	buf := pgio.AppendInt32(nil, 2) // two dimensions
	buf = pgio.AppendInt32(buf, 0)
	buf = pgio.AppendUint32(buf, pgstruct.Int4OID)
	buf = pgio.AppendInt32(buf, 1)
	buf = pgio.AppendInt32(buf, 1)
	buf = pgio.AppendInt32(buf, 1)
	buf = pgio.AppendInt32(buf, 1)
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, buf)

	_, err := pgstruct.FromRow[[]int32](row)
	var shapeErr pgstruct.UnsupportedArrayShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, 2, shapeErr.Dimensions)
}

func TestDecodeMalformedArrayPayload(t *testing.T) {
	tests := []struct {
		name  string
		value []byte
	}{
		{name: "truncated header", value: []byte{0, 0}},
		{name: "element past end", value: func() []byte {
			buf := pgio.AppendInt32(nil, 1)
			buf = pgio.AppendInt32(buf, 0)
			buf = pgio.AppendUint32(buf, pgstruct.Int4OID)
			buf = pgio.AppendInt32(buf, 1)
			buf = pgio.AppendInt32(buf, 1)
			buf = pgio.AppendInt32(buf, 100) // element length beyond the payload
			return buf
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := singleColumnRow(t, pgstruct.Int4ArrayOID, tt.value)
			_, err := pgstruct.FromRow[[]int32](row)
			var formatErr pgstruct.ArrayFormatError
			require.ErrorAs(t, err, &formatErr)
		})
	}
}

func TestDecodeArrayElementTypeMismatch(t *testing.T) {
	value := arrayValue(pgstruct.Int4OID, int4Value(1))
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, value)

	_, err := pgstruct.FromRow[[]string](row)
	var mismatch pgstruct.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "v[0]", mismatch.Column)
}

func TestDecodeArrayIntoNonSlice(t *testing.T) {
	value := arrayValue(pgstruct.Int4OID, int4Value(1))
	row := mustNewRow(t,
		pgstruct.Column{Name: "tags", OID: pgstruct.Int4ArrayOID, Value: value},
		pgstruct.Column{Name: "pad", OID: pgstruct.Int4OID, Value: int4Value(0)},
	)

	type rec struct {
		Tags int32 `db:"tags"`
		Pad  int32 `db:"pad"`
	}
	_, err := pgstruct.FromRow[rec](row)
	var mismatch pgstruct.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
}

func TestDecodeNullArrayColumn(t *testing.T) {
	row := singleColumnRow(t, pgstruct.Int4ArrayOID, nil)

	_, err := pgstruct.FromRow[[]int32](row)
	var nullErr pgstruct.NullValueError
	require.ErrorAs(t, err, &nullErr)

	p, err := pgstruct.FromRow[*[]int32](row)
	require.NoError(t, err)
	assert.Nil(t, p)
}
