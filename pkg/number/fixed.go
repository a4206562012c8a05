package number

import (
	"errors"
	"math/bits"

	"github.com/holiman/uint256"
)

// ErrOverflow the result does not fit into 64 bits, or a division by zero was requested
var ErrOverflow = errors.New("number: overflow")

// ScaledMulDiv returns floor(a*b/c) with a 256-bit intermediate product
func ScaledMulDiv(a, b, c uint64) (uint64, error) {
	if c == 0 {
		return 0, ErrOverflow
	}

	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(x, uint256.NewInt(c))
	if !x.IsUint64() {
		return 0, ErrOverflow
	}

	return x.Uint64(), nil
}

// Sqrt integer square root by Newton's method, floor(sqrt(n))
func Sqrt(n uint64) uint64 {
	if n < 2 {
		return n
	}

	// initial guess is a power of two not below sqrt(n)
	x := uint64(1) << ((bits.Len64(n) + 1) / 2)
	for {
		y := (x + n/x) >> 1
		if y >= x {
			return x
		}
		x = y
	}
}

// Add checked addition
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}

	return sum, nil
}

// Sub checked subtraction, a result below zero is reported as overflow
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrOverflow
	}

	return diff, nil
}

// Mul checked multiplication
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}

	return lo, nil
}

// SaturatingSub returns a-b, or zero when b > a
func SaturatingSub(a, b uint64) uint64 {
	if b > a {
		return 0
	}

	return a - b
}

// Clamp bounds v to [lo, hi]
func Clamp(v, lo, hi uint64) uint64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}

	return v
}

// Min smaller of a and b
func Min(a, b uint64) uint64 {
	if a < b {
		return a
	}

	return b
}
