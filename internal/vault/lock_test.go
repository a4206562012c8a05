package vault

import (
	"testing"

	"lendvault/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const day int64 = 86400

func TestCalculateExtension(t *testing.T) {
	full := uint64(30 * day)

	t.Run("half way", func(t *testing.T) {
		// deposit ratio 1.0, time ratio 0.5
		// sqrt = 707106, linear = 800000, factor = 565684
		ext, err := CalculateExtension(1000, 1000, full/2, full)
		require.NoError(t, err)
		assert.Equal(t, full*565_684/Scale, ext)
	})

	t.Run("small top-up is floored", func(t *testing.T) {
		ext, err := CalculateExtension(100, 1000, full/2, full)
		require.NoError(t, err)
		assert.Equal(t, uint64(259_200), ext)
	})

	t.Run("large top-up is capped", func(t *testing.T) {
		ext, err := CalculateExtension(1_000_000, 1, full, full)
		require.NoError(t, err)
		assert.Equal(t, full, ext)
	})

	t.Run("expired lock", func(t *testing.T) {
		ext, err := CalculateExtension(1000, 1000, 0, full)
		require.NoError(t, err)
		assert.Equal(t, full/10, ext)
	})

	t.Run("time ratio rounds to zero", func(t *testing.T) {
		year := uint64(360 * day)
		// deposit ratio 0.01 gives 0.001, clamped up to the minimum
		ext, err := CalculateExtension(1, 100, 1, year)
		require.NoError(t, err)
		assert.Equal(t, uint64(3_110_400), ext)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := CalculateExtension(1000, 0, 10, full)
		assert.Equal(t, core.ErrInvalidAmount, err)

		_, err = CalculateExtension(1000, 1000, 10, 0)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	t.Run("overflow", func(t *testing.T) {
		_, err := CalculateExtension(1000, 1000, 1<<63, 1)
		assert.Equal(t, core.ErrMathOverflow, err)
	})
}

func TestCalculateExtensionBounds(t *testing.T) {
	deposits := []uint64{1, 7, 100, 999, 1000, 50_000, 1_000_000_000}
	for _, tier := range []core.LockTier{core.LockTierShort, core.LockTierLong, core.LockTierVeryLong} {
		full := uint64(tier.Duration())
		for _, remaining := range []uint64{0, 1, 59, full / 7, full / 2, full - 1, full} {
			for _, added := range deposits {
				for _, existing := range deposits {
					ext, err := CalculateExtension(added, existing, remaining, full)
					require.NoError(t, err)

					assert.GreaterOrEqual(t, ext, full*MinExtensionRatio/Scale)
					assert.LessOrEqual(t, ext, full*MaxExtensionRatio/Scale)
				}
			}
		}
	}
}

func TestLock(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#1")

	_, err := e.Lock(s, "alice", 1000, 4, genesis)
	assert.Equal(t, core.ErrInvalidLockTier, err)

	o, err := e.Lock(s, "alice", 1000, uint8(core.LockTierShort), genesis)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), o.Shares)
	assert.Equal(t, core.LockTierShort, o.Position.LockTier)
	assert.Equal(t, genesis+30*day, o.Position.LockedUntil)
	assert.Equal(t, genesis, o.Position.DepositTime)
	assert.Equal(t, uint64(1000), o.Vault.TotalLockedShares)
	assert.Equal(t, core.EventActionLock, o.Events[0].Action)

	_, err = e.Lock(o.State, "alice", 1000, uint8(core.LockTierLong), genesis+day)
	assert.Equal(t, core.ErrTierMismatch, err)

	_, err = e.Withdraw(o.State, capOf(s), "alice", 1000, genesis+day)
	assert.Equal(t, core.ErrStillLocked, err)

	topped, err := e.Lock(o.State, "alice", 500, uint8(core.LockTierShort), genesis+day)
	require.NoError(t, err)
	assert.Equal(t, genesis+31*day, topped.Position.LockedUntil)
	assert.Equal(t, genesis, topped.Position.DepositTime)
	assert.Equal(t, uint64(1500), topped.Position.Shares)
	assert.Equal(t, uint64(1500), topped.Vault.TotalLockedShares)

	expired := genesis + 31*day
	out, err := e.Withdraw(topped.State, capOf(s), "alice", 1500, expired)
	require.NoError(t, err)
	assert.Equal(t, uint64(1500), out.Assets)
	assert.Zero(t, out.Vault.TotalLockedShares)

	relocked, err := e.Lock(out.State, "alice", 100, uint8(core.LockTierVeryLong), expired)
	require.NoError(t, err)
	assert.Equal(t, core.LockTierVeryLong, relocked.Position.LockTier)
	assert.Equal(t, expired, relocked.Position.DepositTime)
}

func TestLockWeightedExtension(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#1")
	s.Vault.WeightedExtension = true

	o, err := e.Lock(s, "alice", 1000, uint8(core.LockTierShort), genesis)
	require.NoError(t, err)
	assert.Equal(t, genesis+30*day, o.Position.LockedUntil)

	small, err := e.Lock(o.State, "alice", 100, uint8(core.LockTierShort), genesis+15*day)
	require.NoError(t, err)
	assert.Equal(t, genesis+30*day+259_200, small.Position.LockedUntil)

	// capped at now + tier duration
	large, err := e.Lock(o.State, "alice", 1000, uint8(core.LockTierShort), genesis+15*day)
	require.NoError(t, err)
	assert.Equal(t, genesis+45*day, large.Position.LockedUntil)
}

func TestPreviewLock(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#1")

	quote, err := e.PreviewLock(s, 10_000, uint8(core.LockTierLong), genesis)
	require.NoError(t, err)
	assert.Equal(t, core.LockTierLong, quote.Tier)
	assert.Equal(t, uint64(10_000), quote.Shares)
	assert.Equal(t, genesis+180*day, quote.LockedUntil)
	assert.Equal(t, uint64(20), quote.FeeBps)
	assert.Equal(t, uint64(20), quote.Fee)

	for _, tc := range []struct {
		tier core.LockTier
		fee  uint64
	}{
		{core.LockTierUnlocked, 50},
		{core.LockTierShort, 30},
		{core.LockTierLong, 20},
		{core.LockTierVeryLong, 10},
	} {
		q, err := e.PreviewLock(s, 10_000, uint8(tc.tier), genesis)
		require.NoError(t, err)
		assert.Equal(t, tc.fee, q.FeeBps, tc.tier.String())
	}

	_, err = e.PreviewLock(s, 10_000, 9, genesis)
	assert.Equal(t, core.ErrInvalidLockTier, err)
}
