package interest

import (
	"lendvault/pkg/number"
)

const (
	// Precision scale of rates, indexes and factors (1e9 = 1.0)
	Precision uint64 = 1_000_000_000
	// SecondsPerYear seconds per year
	SecondsPerYear uint64 = 365 * 86400

	// BaseRate borrow rate per year at zero utilization, 2%
	BaseRate uint64 = 20_000_000
	// UtilizationMultiplier slope of the rate below the kink, 18%
	UtilizationMultiplier uint64 = 180_000_000
	// Kink utilization where the jump multiplier takes over, 80%
	Kink uint64 = 800_000_000
	// JumpMultiplier slope of the rate above the kink, 109%
	JumpMultiplier uint64 = 1_090_000_000
)

// Curve piecewise-linear borrow rate model with a kink
type Curve struct {
	BaseRate       uint64 `json:"base_rate"`
	Multiplier     uint64 `json:"multiplier"`
	JumpMultiplier uint64 `json:"jump_multiplier"`
	Kink           uint64 `json:"kink"`
}

// DefaultCurve the vault's rate curve
var DefaultCurve = Curve{
	BaseRate:       BaseRate,
	Multiplier:     UtilizationMultiplier,
	JumpMultiplier: JumpMultiplier,
	Kink:           Kink,
}

// Utilization utilization = borrows / total_assets, scaled by Precision.
// It is zero when there are no assets.
func Utilization(borrows, totalAssets uint64) (uint64, error) {
	if totalAssets == 0 {
		return 0, nil
	}

	return number.ScaledMulDiv(borrows, Precision, totalAssets)
}

// BorrowRate borrow rate per year for the given utilization
func (c Curve) BorrowRate(utilization uint64) (uint64, error) {
	if utilization <= c.Kink {
		return c.linear(utilization)
	}

	normalRate, err := c.linear(c.Kink)
	if err != nil {
		return 0, err
	}

	jump, err := number.ScaledMulDiv(utilization-c.Kink, c.JumpMultiplier, Precision)
	if err != nil {
		return 0, err
	}

	return number.Add(normalRate, jump)
}

func (c Curve) linear(utilization uint64) (uint64, error) {
	slope, err := number.ScaledMulDiv(utilization, c.Multiplier, Precision)
	if err != nil {
		return 0, err
	}

	return number.Add(c.BaseRate, slope)
}

// BorrowRateOf rate for the given borrows and total assets; BaseRate when there are no assets
func (c Curve) BorrowRateOf(borrows, totalAssets uint64) (uint64, error) {
	if totalAssets == 0 {
		return c.BaseRate, nil
	}

	utilization, err := Utilization(borrows, totalAssets)
	if err != nil {
		return 0, err
	}

	return c.BorrowRate(utilization)
}

// SupplyRate supply_rate = borrow_rate * utilization * (1 - reserve_factor)
func SupplyRate(borrowRate, utilization, reserveFactor uint64) (uint64, error) {
	if reserveFactor > Precision {
		return 0, number.ErrOverflow
	}

	rateToPool, err := number.ScaledMulDiv(borrowRate, Precision-reserveFactor, Precision)
	if err != nil {
		return 0, err
	}

	return number.ScaledMulDiv(utilization, rateToPool, Precision)
}

// Factor interest accumulated by rate over elapsed seconds, linear in time
func Factor(rate, elapsed uint64) (uint64, error) {
	return number.ScaledMulDiv(rate, elapsed, SecondsPerYear)
}
