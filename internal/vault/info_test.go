package vault

import (
	"testing"

	"lendvault/core"
	"lendvault/pkg/interest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVaultInfo(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "")

	info, err := e.VaultInfo(s, genesis)
	require.NoError(t, err)
	assert.Equal(t, interest.Precision, info.ExchangeRate)
	assert.Zero(t, info.Utilization)
	assert.Equal(t, interest.BaseRate, info.BorrowRate)

	s = seedDeposit(t, e, 10_000)
	o, err := e.Borrow(s, capOf(s), "pool", "alice", 4000, genesis)
	require.NoError(t, err)

	info, err = e.VaultInfo(o.State, genesis)
	require.NoError(t, err)
	assert.Equal(t, uint64(10_000), info.TotalAssets)
	assert.Equal(t, uint64(400_000_000), info.Utilization)
	assert.Equal(t, uint64(92_000_000), info.BorrowRate)
	// 9.2% * 40% * 90%
	assert.Equal(t, uint64(33_120_000), info.SupplyRate)
	assert.Equal(t, interest.Precision, info.ExchangeRate)

	later, err := e.VaultInfo(o.State, genesis+int64(interest.SecondsPerYear))
	require.NoError(t, err)
	assert.Greater(t, later.ExchangeRate, info.ExchangeRate)
	// the snapshot is not modified by a query
	assert.Equal(t, genesis, o.Vault.LastUpdateTime)
}

func TestPositionInfoLockBonus(t *testing.T) {
	e := newEngine(t)
	s := seedDeposit(t, e, 10_000)
	o, err := e.Borrow(s, capOf(s), "pool", "alice", 4000, genesis)
	require.NoError(t, err)

	locked := o.State
	locked.Position.LockTier = core.LockTierVeryLong
	locked.Position.LockedUntil = genesis + 360*day

	plain, err := e.PositionInfo(o.State, genesis)
	require.NoError(t, err)
	bonus, err := e.PositionInfo(locked, genesis)
	require.NoError(t, err)

	assert.Equal(t, uint64(10_000), plain.AssetValue)
	assert.Equal(t, uint64(4000), plain.Debt)
	assert.Equal(t, uint64(33_120_000), plain.SupplyRate)
	// three tier steps of 5%
	assert.Equal(t, uint64(38_088_000), bonus.SupplyRate)
}
