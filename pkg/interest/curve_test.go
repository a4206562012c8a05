package interest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBorrowRate(t *testing.T) {
	c := DefaultCurve

	rate, err := c.BorrowRate(0)
	require.NoError(t, err)
	assert.Equal(t, BaseRate, rate)

	// 50% utilization: 2% + 0.5 * 18% = 11%
	rate, err = c.BorrowRate(500_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(110_000_000), rate)

	// at the kink: 2% + 0.8 * 18% = 16.4%
	rate, err = c.BorrowRate(Kink)
	require.NoError(t, err)
	assert.Equal(t, uint64(164_000_000), rate)

	// 90% utilization: 16.4% + 0.1 * 109% = 27.3%
	rate, err = c.BorrowRate(900_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(273_000_000), rate)

	// 100% utilization: 16.4% + 0.2 * 109% = 38.2%
	rate, err = c.BorrowRate(Precision)
	require.NoError(t, err)
	assert.Equal(t, uint64(382_000_000), rate)
}

func TestBorrowRateContinuousAtKink(t *testing.T) {
	curves := []Curve{
		DefaultCurve,
		{BaseRate: 0, Multiplier: 40_000_000, JumpMultiplier: 750_000_000, Kink: 800_000_000},
		{BaseRate: 12_345, Multiplier: 333_333_333, JumpMultiplier: 3_000_000_000, Kink: 123_456_789},
	}

	for _, c := range curves {
		below, err := c.linear(c.Kink)
		require.NoError(t, err)

		// the jump branch evaluated at zero excess
		normal, err := c.linear(c.Kink)
		require.NoError(t, err)
		above := normal + (c.Kink-c.Kink)*c.JumpMultiplier/Precision

		assert.Equal(t, below, above)

		at, err := c.BorrowRate(c.Kink)
		require.NoError(t, err)
		next, err := c.BorrowRate(c.Kink + 1)
		require.NoError(t, err)
		assert.Equal(t, below, at)
		assert.GreaterOrEqual(t, next, at)
		assert.LessOrEqual(t, next-at, c.JumpMultiplier/Precision+1)
	}
}

func TestBorrowRateMonotonic(t *testing.T) {
	c := DefaultCurve
	prev := uint64(0)
	for u := uint64(0); u <= 2*Precision; u += Precision / 1000 {
		rate, err := c.BorrowRate(u)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rate, prev)
		prev = rate
	}
}

func TestBorrowRateOf(t *testing.T) {
	rate, err := DefaultCurve.BorrowRateOf(100, 0)
	require.NoError(t, err)
	assert.Equal(t, BaseRate, rate)

	rate, err = DefaultCurve.BorrowRateOf(500, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(110_000_000), rate)
}

func TestSupplyRate(t *testing.T) {
	// 11% borrow rate at 50% utilization, 10% reserve factor: 0.11 * 0.5 * 0.9 = 4.95%
	rate, err := SupplyRate(110_000_000, 500_000_000, 100_000_000)
	require.NoError(t, err)
	assert.Equal(t, uint64(49_500_000), rate)

	_, err = SupplyRate(110_000_000, 500_000_000, Precision+1)
	assert.Error(t, err)
}

func TestFactor(t *testing.T) {
	f, err := Factor(20_000_000, SecondsPerYear)
	require.NoError(t, err)
	assert.Equal(t, uint64(20_000_000), f)

	f, err = Factor(20_000_000, SecondsPerYear/2)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000_000), f)
}
