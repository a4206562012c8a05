package vault

import (
	"testing"

	"lendvault/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithdrawEarly(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#7")

	o, err := e.Lock(s, "alice", 10_000, uint8(core.LockTierShort), genesis)
	require.NoError(t, err)
	reserves := o.Vault.TotalReserves

	out, err := e.WithdrawEarly(o.State, capOf(s), "alice", o.Position.Shares, genesis+day)
	require.NoError(t, err)

	assert.Equal(t, uint64(1000), out.Penalty)
	assert.Equal(t, uint64(9000), out.Assets)
	assert.Equal(t, reserves+1000, out.Vault.TotalReserves)
	assert.Equal(t, uint64(1000), out.Balance)
	assert.Zero(t, out.Position.Shares)
	assert.Zero(t, out.Vault.TotalShares)
	assert.Zero(t, out.Vault.TotalLockedShares)
	assert.Equal(t, []core.Instruction{{Direction: core.DirectionOut, Counterparty: "alice", Amount: 9000}}, out.Transfers)

	require.NotEmpty(t, out.Events)
	last := out.Events[len(out.Events)-1]
	assert.Equal(t, core.EventActionPenalty, last.Action)
	assert.Equal(t, uint64(1000), last.Penalty)
}

func TestWithdrawEarlyErrors(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "nft#7")

	o, err := e.Lock(s, "alice", 10_000, uint8(core.LockTierShort), genesis)
	require.NoError(t, err)

	_, err = e.WithdrawEarly(o.State, capOf(s), "alice", 100, genesis+30*day)
	assert.Equal(t, core.ErrNotLockedForEarlyWithdrawal, err)

	_, err = e.WithdrawEarly(o.State, capOf(s), "alice", 10_001, genesis+day)
	assert.Equal(t, core.ErrInsufficientShares, err)

	_, err = e.WithdrawEarly(o.State, nil, "alice", 100, genesis+day)
	assert.Equal(t, core.ErrInvalidOwnership, err)

	unlocked, err := e.Deposit(newState(t, e, "bob"), "bob", 1000, genesis)
	require.NoError(t, err)
	_, err = e.WithdrawEarly(unlocked.State, capOf(s), "bob", 100, genesis)
	assert.Equal(t, core.ErrNotLockedForEarlyWithdrawal, err)
}

func TestPenalty(t *testing.T) {
	p, err := Penalty(10_000, EarlyWithdrawalPenaltyBps)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), p)

	p, err = Penalty(9, EarlyWithdrawalPenaltyBps)
	require.NoError(t, err)
	assert.Zero(t, p)
}
