package pgstruct

import (
	"encoding/binary"
	"errors"
	"math/big"

	"github.com/shopspring/decimal"
)

// Binary numeric representation per PostgreSQL's numeric_send: a sequence of
// base-10000 digit groups with a weight, sign, and display scale.
const (
	pgNumericNaNSign    = 0xc000
	pgNumericPosSign    = 0x0000
	pgNumericNegSign    = 0x4000
	pgNumericPosInfSign = 0xd000
	pgNumericNegInfSign = 0xf000
)

var (
	errNumericIncomplete  = errors.New("numeric payload incomplete")
	errNumericNaN         = errors.New("numeric is NaN")
	errNumericInfinity    = errors.New("numeric is infinity")
	errNumericInvalidSign = errors.New("numeric has invalid sign word")

	bigNBase = big.NewInt(10000)
)

// decodeNumeric decodes the binary wire representation of a numeric value.
// NaN and infinity have no decimal representation and are reported as
// errors.
func decodeNumeric(src []byte) (decimal.Decimal, error) {
	if len(src) < 8 {
		return decimal.Decimal{}, errNumericIncomplete
	}

	ndigits := int(binary.BigEndian.Uint16(src[0:]))
	weight := int(int16(binary.BigEndian.Uint16(src[2:])))
	sign := binary.BigEndian.Uint16(src[4:])

	switch sign {
	case pgNumericPosSign, pgNumericNegSign:
	case pgNumericNaNSign:
		return decimal.Decimal{}, errNumericNaN
	case pgNumericPosInfSign, pgNumericNegInfSign:
		return decimal.Decimal{}, errNumericInfinity
	default:
		return decimal.Decimal{}, errNumericInvalidSign
	}

	if ndigits == 0 {
		return decimal.New(0, 0), nil
	}

	if len(src[8:]) < ndigits*2 {
		return decimal.Decimal{}, errNumericIncomplete
	}

	accum := &big.Int{}
	rp := 8
	for i := 0; i < ndigits; i++ {
		digit := int64(binary.BigEndian.Uint16(src[rp:]))
		rp += 2
		if i > 0 {
			accum.Mul(accum, bigNBase)
		}
		accum.Add(accum, big.NewInt(digit))
	}

	if sign == pgNumericNegSign {
		accum.Neg(accum)
	}

	// Each digit group is worth 10^4; weight counts groups left of the
	// decimal point, so the exponent of the accumulated integer is
	// (weight+1-ndigits)*4.
	exp := int32(weight+1-ndigits) * 4

	return decimal.NewFromBigInt(accum, exp), nil
}
