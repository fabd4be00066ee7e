package pgstruct

import (
	"encoding/binary"
	"math"
	"reflect"
	"strings"
)

// convertColumn decodes one non-NULL column into a scalar target value.
// Integer and float widths are matched exactly: an int8 column never decodes
// into an int32 target and an int4 column never decodes into an int64
// target. dst must be settable.
func convertColumn(col Column, dst reflect.Value) error {
	switch dst.Kind() {
	case reflect.Bool:
		if col.OID != BoolOID {
			return typeMismatch(col, dst)
		}
		if len(col.Value) != 1 {
			return typeMismatchReason(col, dst, "invalid length for bool")
		}
		switch col.Value[0] {
		case 0:
			dst.SetBool(false)
		case 1:
			dst.SetBool(true)
		default:
			return typeMismatchReason(col, dst, "invalid byte value for bool")
		}
		return nil

	case reflect.String:
		switch col.OID {
		case TextOID, VarcharOID:
			dst.SetString(string(col.Value))
		case BPCharOID:
			// bpchar values are blank padded to the declared width.
			dst.SetString(strings.TrimRight(string(col.Value), " "))
		case NumericOID:
			d, err := decodeNumeric(col.Value)
			if err != nil {
				return typeMismatchReason(col, dst, err.Error())
			}
			dst.SetString(d.String())
		default:
			return typeMismatch(col, dst)
		}
		return nil

	case reflect.Int16:
		if col.OID != Int2OID {
			return typeMismatch(col, dst)
		}
		if len(col.Value) != 2 {
			return typeMismatchReason(col, dst, "invalid length for int2")
		}
		dst.SetInt(int64(int16(binary.BigEndian.Uint16(col.Value))))
		return nil

	case reflect.Int32:
		if col.OID != Int4OID {
			return typeMismatch(col, dst)
		}
		if len(col.Value) != 4 {
			return typeMismatchReason(col, dst, "invalid length for int4")
		}
		dst.SetInt(int64(int32(binary.BigEndian.Uint32(col.Value))))
		return nil

	case reflect.Int64, reflect.Int:
		if col.OID != Int8OID {
			return typeMismatch(col, dst)
		}
		if len(col.Value) != 8 {
			return typeMismatchReason(col, dst, "invalid length for int8")
		}
		dst.SetInt(int64(binary.BigEndian.Uint64(col.Value)))
		return nil

	case reflect.Float32:
		if col.OID != Float4OID {
			return typeMismatch(col, dst)
		}
		if len(col.Value) != 4 {
			return typeMismatchReason(col, dst, "invalid length for float4")
		}
		dst.SetFloat(float64(math.Float32frombits(binary.BigEndian.Uint32(col.Value))))
		return nil

	case reflect.Float64:
		switch col.OID {
		case Float8OID:
			if len(col.Value) != 8 {
				return typeMismatchReason(col, dst, "invalid length for float8")
			}
			dst.SetFloat(math.Float64frombits(binary.BigEndian.Uint64(col.Value)))
		case NumericOID:
			d, err := decodeNumeric(col.Value)
			if err != nil {
				return typeMismatchReason(col, dst, err.Error())
			}
			f, _ := d.Float64()
			dst.SetFloat(f)
		default:
			return typeMismatch(col, dst)
		}
		return nil

	case reflect.Int8:
		return typeMismatchReason(col, dst, "no PostgreSQL type decodes into an 8-bit integer")

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return typeMismatchReason(col, dst, "unsigned integer targets are not supported")

	default:
		return typeMismatch(col, dst)
	}
}

func typeMismatch(col Column, dst reflect.Value) error {
	return TypeMismatchError{Column: col.Name, OID: col.OID, Target: dst.Type()}
}

func typeMismatchReason(col Column, dst reflect.Value, reason string) error {
	return TypeMismatchError{Column: col.Name, OID: col.OID, Target: dst.Type(), Reason: reason}
}
