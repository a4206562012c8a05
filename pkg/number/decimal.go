package number

import (
	"math/big"

	"github.com/shopspring/decimal"
)

func Decimal(v string) decimal.Decimal {
	d, _ := decimal.NewFromString(v)
	return d
}

// FromScaled converts a fixed-point integer into a decimal, e.g. FromScaled(20_000_000, 9) = 0.02
func FromScaled(v uint64, exp int32) decimal.Decimal {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(v), -exp)
}

// ToScaled converts a decimal into a fixed-point integer, truncating extra precision
func ToScaled(d decimal.Decimal, exp int32) (uint64, error) {
	if d.IsNegative() {
		return 0, ErrOverflow
	}

	i := d.Shift(exp).Truncate(0).BigInt()
	if !i.IsUint64() {
		return 0, ErrOverflow
	}

	return i.Uint64(), nil
}
