package field

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"
)

// DefaultIntegerBytes is the storage width assumed for integer columns that
// do not declare one.
const DefaultIntegerBytes = 4

// IntegerRange describes the values representable by an integer column.
// Min is always inclusive. Max is inclusive unless ExclusiveMax is set.
type IntegerRange struct {
	Min          decimal.Decimal
	Max          decimal.Decimal
	ExclusiveMax bool
}

// Contains reports whether v is within the range.
func (r IntegerRange) Contains(v decimal.Decimal) bool {
	if v.LessThan(r.Min) {
		return false
	}
	if r.ExclusiveMax {
		return v.LessThan(r.Max)
	}
	return v.LessThanOrEqual(r.Max)
}

// String implements the fmt.Stringer interface.
func (r IntegerRange) String() string {
	if r.ExclusiveMax {
		return fmt.Sprintf("[%s, %s)", r.Min, r.Max)
	}
	return fmt.Sprintf("[%s, %s]", r.Min, r.Max)
}

// HalfOpen returns an IntegerRange of [lo, hi).
func HalfOpen(lo, hi int64) *IntegerRange {
	return &IntegerRange{Min: decimal.NewFromInt(lo), Max: decimal.NewFromInt(hi), ExclusiveMax: true}
}

// Closed returns an IntegerRange of [lo, hi].
func Closed(lo, hi int64) *IntegerRange {
	return &IntegerRange{Min: decimal.NewFromInt(lo), Max: decimal.NewFromInt(hi)}
}

// RangeOf returns the range of an integer stored in the given number of
// bytes. The standard widths come from the math package limits; other
// widths are computed from their bit size.
func RangeOf(bytes int, unsigned bool) IntegerRange {
	if bytes <= 0 {
		bytes = DefaultIntegerBytes
	}
	if unsigned {
		switch bytes {
		case 1:
			return IntegerRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxUint8)}
		case 2:
			return IntegerRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxUint16)}
		case 4:
			return IntegerRange{Min: decimal.Zero, Max: decimal.NewFromInt(math.MaxUint32)}
		case 8:
			return IntegerRange{Min: decimal.Zero, Max: decimal.NewFromBigInt(new(big.Int).SetUint64(math.MaxUint64), 0)}
		}
		hi := new(big.Int).Lsh(big.NewInt(1), uint(bytes*8))
		return IntegerRange{Min: decimal.Zero, Max: decimal.NewFromBigInt(hi.Sub(hi, big.NewInt(1)), 0)}
	}
	switch bytes {
	case 1:
		return IntegerRange{Min: decimal.NewFromInt(math.MinInt8), Max: decimal.NewFromInt(math.MaxInt8)}
	case 2:
		return IntegerRange{Min: decimal.NewFromInt(math.MinInt16), Max: decimal.NewFromInt(math.MaxInt16)}
	case 4:
		return IntegerRange{Min: decimal.NewFromInt(math.MinInt32), Max: decimal.NewFromInt(math.MaxInt32)}
	case 8:
		return IntegerRange{Min: decimal.NewFromInt(math.MinInt64), Max: decimal.NewFromInt(math.MaxInt64)}
	}
	hi := new(big.Int).Lsh(big.NewInt(1), uint(bytes*8-1))
	lo := new(big.Int).Neg(hi)
	return IntegerRange{Min: decimal.NewFromBigInt(lo, 0), Max: decimal.NewFromBigInt(hi.Sub(hi, big.NewInt(1)), 0)}
}
