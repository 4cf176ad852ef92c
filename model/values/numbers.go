package values

import (
	"math/big"

	"github.com/onflow/cadence"
	"github.com/shopspring/decimal"
)

// fixedPointScale is the number of decimal digits of Fix64 and UFix64.
const fixedPointScale = 8

// bigIntOf returns the value of any integer kind as a fresh big.Int.
func bigIntOf(value cadence.Value) (*big.Int, bool) {
	switch v := value.(type) {
	case cadence.Int:
		return copyBig(v.Value), true
	case cadence.Int8:
		return big.NewInt(int64(v)), true
	case cadence.Int16:
		return big.NewInt(int64(v)), true
	case cadence.Int32:
		return big.NewInt(int64(v)), true
	case cadence.Int64:
		return big.NewInt(int64(v)), true
	case cadence.Int128:
		return copyBig(v.Value), true
	case cadence.Int256:
		return copyBig(v.Value), true
	case cadence.UInt:
		return copyBig(v.Value), true
	case cadence.UInt8:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.UInt16:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.UInt32:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.UInt64:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.UInt128:
		return copyBig(v.Value), true
	case cadence.UInt256:
		return copyBig(v.Value), true
	case cadence.Word8:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.Word16:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.Word32:
		return new(big.Int).SetUint64(uint64(v)), true
	case cadence.Word64:
		return new(big.Int).SetUint64(uint64(v)), true
	}
	return nil, false
}

func copyBig(b *big.Int) *big.Int {
	if b == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(b)
}

// decimalOf returns fixed point and integer values as a decimal.
func decimalOf(value cadence.Value) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case cadence.Fix64:
		return decimal.New(int64(v), -fixedPointScale), true
	case cadence.UFix64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(v)), -fixedPointScale), true
	}
	if b, ok := bigIntOf(value); ok {
		return decimal.NewFromBigInt(b, 0), true
	}
	return decimal.Decimal{}, false
}

// integerOf returns the integer held by value. Enum values yield their raw value.
func integerOf(value cadence.Value) (*big.Int, bool) {
	if enum, ok := value.(cadence.Enum); ok {
		c, _ := asComposite(enum)
		raw, ok := c.field("rawValue")
		if !ok {
			return nil, false
		}
		return bigIntOf(raw)
	}
	return bigIntOf(value)
}

// signedBounds returns the range of a signed integer of the given bit size.
func signedBounds(bits int) (*big.Int, *big.Int) {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	min := new(big.Int).Neg(limit)
	max := new(big.Int).Sub(limit, big.NewInt(1))
	return min, max
}

// unsignedMax returns the largest unsigned integer of the given bit size.
func unsignedMax(bits int) *big.Int {
	limit := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return limit.Sub(limit, big.NewInt(1))
}
