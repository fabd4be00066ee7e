package pgstruct_test

import (
	"math"
	"testing"

	"github.com/jackc/pgio"
	"github.com/pgstruct/pgstruct"
	"github.com/stretchr/testify/require"
)

// Helpers to build binary wire values the way the backend sends them.

func boolValue(v bool) []byte {
	if v {
		return []byte{1}
	}
	return []byte{0}
}

func int2Value(v int16) []byte { return pgio.AppendInt16(nil, v) }
func int4Value(v int32) []byte { return pgio.AppendInt32(nil, v) }
func int8Value(v int64) []byte { return pgio.AppendInt64(nil, v) }

func float4Value(v float32) []byte { return pgio.AppendUint32(nil, math.Float32bits(v)) }
func float8Value(v float64) []byte { return pgio.AppendUint64(nil, math.Float64bits(v)) }

func textValue(s string) []byte { return []byte(s) }

func jsonbValue(doc string) []byte { return append([]byte{1}, doc...) }

// arrayValue builds a one-dimensional binary array. A nil element is a NULL.
func arrayValue(elementOID uint32, elements ...[]byte) []byte {
	var containsNull int32
	for _, e := range elements {
		if e == nil {
			containsNull = 1
		}
	}
	buf := pgio.AppendInt32(nil, 1)
	buf = pgio.AppendInt32(buf, containsNull)
	buf = pgio.AppendUint32(buf, elementOID)
	buf = pgio.AppendInt32(buf, int32(len(elements)))
	buf = pgio.AppendInt32(buf, 1)
	for _, e := range elements {
		if e == nil {
			buf = pgio.AppendInt32(buf, -1)
			continue
		}
		buf = pgio.AppendInt32(buf, int32(len(e)))
		buf = append(buf, e...)
	}
	return buf
}

func emptyArrayValue(elementOID uint32) []byte {
	buf := pgio.AppendInt32(nil, 0)
	buf = pgio.AppendInt32(buf, 0)
	buf = pgio.AppendUint32(buf, elementOID)
	return buf
}

// numericValue builds a binary numeric from base-10000 digit groups.
func numericValue(digits []uint16, weight int16, sign uint16, dscale uint16) []byte {
	buf := pgio.AppendUint16(nil, uint16(len(digits)))
	buf = pgio.AppendInt16(buf, weight)
	buf = pgio.AppendUint16(buf, sign)
	buf = pgio.AppendUint16(buf, dscale)
	for _, d := range digits {
		buf = pgio.AppendUint16(buf, d)
	}
	return buf
}

func mustNewRow(t *testing.T, columns ...pgstruct.Column) *pgstruct.Row {
	t.Helper()
	row, err := pgstruct.NewRow(columns)
	require.NoError(t, err)
	return row
}
