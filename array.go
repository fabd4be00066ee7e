package pgstruct

import (
	"encoding/binary"
	"strconv"
)

// Information on the internals of PostgreSQL arrays can be found in
// src/include/utils/array.h and src/backend/utils/adt/arrayfuncs.c. Of
// particular interest is the array_send function.

// decodeArray parses the binary array wire format of an array column into
// transient element columns carrying the array's element oid, so each
// element re-enters the dispatcher like any other column. Only
// one-dimensional arrays are supported.
func decodeArray(col Column) ([]Column, error) {
	src := col.Value
	rp := 0

	numDims, rp, err := arrayInt32(src, rp)
	if err != nil {
		return nil, err
	}

	switch {
	case numDims == 0:
		return nil, nil
	case numDims < 0:
		return nil, ArrayFormatError{Reason: "negative dimension count"}
	case numDims > 1:
		return nil, UnsupportedArrayShapeError{Dimensions: int(numDims)}
	}

	// contains-null flag, unused: element nullability is carried per
	// element by its length prefix.
	_, rp, err = arrayInt32(src, rp)
	if err != nil {
		return nil, err
	}

	elementOID, rp, err := arrayInt32(src, rp)
	if err != nil {
		return nil, err
	}

	length, rp, err := arrayInt32(src, rp)
	if err != nil {
		return nil, err
	}
	if length < 0 {
		return nil, ArrayFormatError{Reason: "negative dimension length"}
	}

	// lower bound, unused
	_, rp, err = arrayInt32(src, rp)
	if err != nil {
		return nil, err
	}

	elements := make([]Column, 0, length)
	for i := 0; i < int(length); i++ {
		var elemLen int32
		elemLen, rp, err = arrayInt32(src, rp)
		if err != nil {
			return nil, err
		}

		elem := Column{
			Name: col.Name + "[" + strconv.Itoa(i) + "]",
			OID:  uint32(elementOID),
		}

		switch {
		case elemLen == -1:
			// NULL element, elem.Value stays nil.
		case elemLen < 0:
			return nil, ArrayFormatError{Reason: "negative element length"}
		case rp+int(elemLen) > len(src):
			return nil, ArrayFormatError{Reason: "element length past end of payload"}
		default:
			elem.Value = src[rp : rp+int(elemLen) : rp+int(elemLen)]
			rp += int(elemLen)
		}

		elements = append(elements, elem)
	}

	return elements, nil
}

func arrayInt32(src []byte, rp int) (int32, int, error) {
	if rp+4 > len(src) {
		return 0, rp, ArrayFormatError{Reason: "payload too short"}
	}
	return int32(binary.BigEndian.Uint32(src[rp:])), rp + 4, nil
}
