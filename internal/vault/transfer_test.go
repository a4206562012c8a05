package vault

import (
	"testing"

	"lendvault/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferPosition(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#1")

	o, err := e.Lock(s, "alice", 1000, uint8(core.LockTierLong), genesis)
	require.NoError(t, err)

	target := core.Position{VaultID: s.Vault.ID, Identity: "nft#2"}
	moved, err := e.TransferPosition(o.State, target, genesis+day)
	require.NoError(t, err)

	assert.Zero(t, moved.Position.Shares)
	assert.Zero(t, moved.Position.DepositedAmount)
	assert.Equal(t, core.LockTierUnlocked, moved.Position.LockTier)
	require.NotNil(t, moved.Target)
	assert.Equal(t, uint64(1000), moved.Target.Shares)
	assert.Equal(t, uint64(1000), moved.Target.DepositedAmount)
	assert.Equal(t, core.LockTierLong, moved.Target.LockTier)
	assert.Equal(t, o.Position.LockedUntil, moved.Target.LockedUntil)
	assert.Equal(t, genesis, moved.Target.DepositTime)
	assert.Equal(t, o.Vault.TotalShares, moved.Vault.TotalShares)
	assert.Equal(t, o.Vault.TotalLockedShares, moved.Vault.TotalLockedShares)
	assert.Empty(t, moved.Transfers)
}

func TestTransferPositionErrors(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#1")
	now := genesis + day

	_, err := e.TransferPosition(s, core.Position{VaultID: s.Vault.ID, Identity: "nft#2"}, now)
	assert.Equal(t, core.ErrInsufficientShares, err)

	o, err := e.Lock(s, "alice", 1000, uint8(core.LockTierShort), genesis)
	require.NoError(t, err)

	_, err = e.TransferPosition(o.State, core.Position{VaultID: s.Vault.ID, Identity: "nft#1"}, now)
	assert.Equal(t, core.ErrOperationForbidden, err)

	_, err = e.TransferPosition(o.State, core.Position{VaultID: 9, Identity: "nft#2"}, now)
	assert.Equal(t, core.ErrOperationForbidden, err)

	other := core.Position{VaultID: s.Vault.ID, Identity: "nft#2", Shares: 10, LockTier: core.LockTierLong}
	_, err = e.TransferPosition(o.State, other, now)
	assert.Equal(t, core.ErrTierMismatch, err)

	indebted := o.State
	indebted.Borrow.Borrowed = 1
	indebted.Borrow.BorrowIndex = InitialBorrowIndex
	_, err = e.TransferPosition(indebted, core.Position{VaultID: s.Vault.ID, Identity: "nft#2"}, now)
	assert.Equal(t, core.ErrInsufficientCollateral, err)
}
