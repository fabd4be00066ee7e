package pgstruct

import "strconv"

// PostgreSQL oids for the types the decoder understands. The values come from
// pg_type.dat in the PostgreSQL sources.
const (
	BoolOID         uint32 = 16
	ByteaOID        uint32 = 17
	Int8OID         uint32 = 20
	Int2OID         uint32 = 21
	Int4OID         uint32 = 23
	TextOID         uint32 = 25
	JSONOID         uint32 = 114
	JSONArrayOID    uint32 = 199
	Float4OID       uint32 = 700
	Float8OID       uint32 = 701
	BoolArrayOID    uint32 = 1000
	ByteaArrayOID   uint32 = 1001
	Int2ArrayOID    uint32 = 1005
	Int4ArrayOID    uint32 = 1007
	TextArrayOID    uint32 = 1009
	BPCharArrayOID  uint32 = 1014
	VarcharArrayOID uint32 = 1015
	Int8ArrayOID    uint32 = 1016
	Float4ArrayOID  uint32 = 1021
	Float8ArrayOID  uint32 = 1022
	BPCharOID       uint32 = 1042
	VarcharOID      uint32 = 1043
	NumericArrayOID uint32 = 1231
	NumericOID      uint32 = 1700
	JSONBOID        uint32 = 3802
	JSONBArrayOID   uint32 = 3807
)

var oidNames = map[uint32]string{
	BoolOID:         "bool",
	ByteaOID:        "bytea",
	Int8OID:         "int8",
	Int2OID:         "int2",
	Int4OID:         "int4",
	TextOID:         "text",
	JSONOID:         "json",
	JSONArrayOID:    "_json",
	Float4OID:       "float4",
	Float8OID:       "float8",
	BoolArrayOID:    "_bool",
	ByteaArrayOID:   "_bytea",
	Int2ArrayOID:    "_int2",
	Int4ArrayOID:    "_int4",
	TextArrayOID:    "_text",
	BPCharArrayOID:  "_bpchar",
	VarcharArrayOID: "_varchar",
	Int8ArrayOID:    "_int8",
	Float4ArrayOID:  "_float4",
	Float8ArrayOID:  "_float8",
	BPCharOID:       "bpchar",
	VarcharOID:      "varchar",
	NumericArrayOID: "_numeric",
	NumericOID:      "numeric",
	JSONBOID:        "jsonb",
	JSONBArrayOID:   "_jsonb",
}

var arrayElementOIDs = map[uint32]uint32{
	BoolArrayOID:    BoolOID,
	ByteaArrayOID:   ByteaOID,
	Int2ArrayOID:    Int2OID,
	Int4ArrayOID:    Int4OID,
	TextArrayOID:    TextOID,
	BPCharArrayOID:  BPCharOID,
	VarcharArrayOID: VarcharOID,
	Int8ArrayOID:    Int8OID,
	Float4ArrayOID:  Float4OID,
	Float8ArrayOID:  Float8OID,
	NumericArrayOID: NumericOID,
	JSONArrayOID:    JSONOID,
	JSONBArrayOID:   JSONBOID,
}

// OIDName returns the PostgreSQL name for oid, or "oid=N" when the type is
// not one the decoder knows about. Used in error messages.
func OIDName(oid uint32) string {
	if name, ok := oidNames[oid]; ok {
		return name
	}
	return "oid=" + strconv.FormatUint(uint64(oid), 10)
}

// ArrayElementOID returns the element type oid for an array type oid. ok is
// false when oid is not a supported array type.
func ArrayElementOID(oid uint32) (elementOID uint32, ok bool) {
	elementOID, ok = arrayElementOIDs[oid]
	return elementOID, ok
}

func isJSONOID(oid uint32) bool {
	return oid == JSONOID || oid == JSONBOID
}
