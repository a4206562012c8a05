package vault

import (
	"lendvault/core"
	"lendvault/pkg/number"
)

// arithmetic helpers reporting overflow as core.ErrMathOverflow

func mulDiv(a, b, c uint64) (uint64, error) {
	v, err := number.ScaledMulDiv(a, b, c)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	return v, nil
}

func add(a, b uint64) (uint64, error) {
	v, err := number.Add(a, b)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	return v, nil
}

func sub(a, b uint64) (uint64, error) {
	v, err := number.Sub(a, b)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	return v, nil
}

func mul(a, b uint64) (uint64, error) {
	v, err := number.Mul(a, b)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	return v, nil
}
