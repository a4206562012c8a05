package vault

import (
	"errors"
	"testing"

	"lendvault/core"
	"lendvault/pkg/interest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const genesis int64 = 1_600_000_000

func newEngine(t *testing.T, opts ...func(*Params)) *Engine {
	t.Helper()

	params := DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}

	return New(params)
}

func newState(t *testing.T, e *Engine, identity string) State {
	t.Helper()

	v, err := e.Initialize(&core.InitializeRequest{
		AssetID:       "965e5c6e-434c-3fa9-b780-c50f43cd955c",
		Owner:         "owner",
		Pool:          "pool",
		ReserveFactor: 100_000_000,
	}, genesis)
	require.NoError(t, err)
	v.ID = 1

	return State{
		Vault:    *v,
		Position: core.Position{VaultID: v.ID, Identity: identity},
		Borrow:   core.BorrowPosition{VaultID: v.ID, Identity: identity},
	}
}

func capOf(s State) *core.Capability {
	return &core.Capability{VaultID: s.Vault.ID, Operator: "operator"}
}

// ledger replays operations of several identities against one vault
type ledger struct {
	vault     core.Vault
	balance   uint64
	positions map[string]core.Position
	borrows   map[string]core.BorrowPosition
}

func newLedger(s State) *ledger {
	return &ledger{
		vault:     s.Vault,
		balance:   s.Balance,
		positions: map[string]core.Position{},
		borrows:   map[string]core.BorrowPosition{},
	}
}

func (l *ledger) state(identity string) State {
	p, ok := l.positions[identity]
	if !ok {
		p = core.Position{VaultID: l.vault.ID, Identity: identity}
	}

	b, ok := l.borrows[identity]
	if !ok {
		b = core.BorrowPosition{VaultID: l.vault.ID, Identity: identity}
	}

	return State{Vault: l.vault, Position: p, Borrow: b, Balance: l.balance}
}

func (l *ledger) apply(o *Outcome) {
	l.vault = o.Vault
	l.balance = o.Balance
	l.positions[o.Position.Identity] = o.Position
	l.borrows[o.Position.Identity] = o.Borrow
}

func TestInitialize(t *testing.T) {
	e := newEngine(t)

	v, err := e.Initialize(&core.InitializeRequest{Owner: "owner", ReserveFactor: MaxReserveFactor}, genesis)
	require.NoError(t, err)
	assert.Equal(t, InitialBorrowIndex, v.BorrowIndex)
	assert.Equal(t, interest.BaseRate, v.BorrowRate)
	assert.Equal(t, genesis, v.LastUpdateTime)
	assert.Zero(t, v.TotalShares)

	_, err = e.Initialize(&core.InitializeRequest{Owner: "owner", ReserveFactor: MaxReserveFactor + 1}, genesis)
	assert.Equal(t, core.ErrReserveFactorTooHigh, err)
}

func TestAccrue(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "")
	s.Vault.TotalBorrowed = 1_000_000
	s.Vault.BorrowRate = 20_000_000
	s.Vault.ReserveFactor = 100_000_000
	s.Balance = 9_000_000

	now := genesis + int64(interest.SecondsPerYear)
	o, err := e.Accrue(s, now)
	require.NoError(t, err)

	assert.Equal(t, uint64(1_020_000_000), o.Vault.BorrowIndex)
	assert.Equal(t, uint64(1_020_000), o.Vault.TotalBorrowed)
	assert.Equal(t, uint64(2000), o.Vault.TotalReserves)
	assert.Equal(t, uint64(20_000), o.Interest)
	assert.Equal(t, now, o.Vault.LastUpdateTime)
	// utilization 1_020_000 / 10_018_000
	assert.Equal(t, uint64(38_327_011), o.Vault.BorrowRate)

	require.Len(t, o.Events, 1)
	assert.Equal(t, core.EventActionAccrue, o.Events[0].Action)
	assert.Equal(t, uint64(20_000), o.Events[0].Amount)
	assert.Equal(t, uint64(1_020_000_000), o.Events[0].BorrowIndex)

	// the input snapshot is untouched
	assert.Equal(t, uint64(1_000_000), s.Vault.TotalBorrowed)
	assert.Equal(t, InitialBorrowIndex, s.Vault.BorrowIndex)

	t.Run("same timestamp is a no-op", func(t *testing.T) {
		again, err := e.Accrue(o.State, now)
		require.NoError(t, err)
		assert.Equal(t, o.Vault, again.Vault)
		assert.Empty(t, again.Events)
		assert.Zero(t, again.Interest)
	})

	t.Run("clock regression", func(t *testing.T) {
		_, err := e.Accrue(o.State, now-1)
		assert.True(t, errors.Is(err, core.ErrClockRegression))
	})

	t.Run("paused", func(t *testing.T) {
		paused := e.Pause(o.State)
		_, err := e.Accrue(paused.State, now+1)
		assert.Equal(t, core.ErrVaultPaused, err)
	})
}

func TestAccrueIndexGrowsWithoutBorrows(t *testing.T) {
	e := newEngine(t)
	s := newState(t, e, "")

	o, err := e.Accrue(s, genesis+int64(interest.SecondsPerYear))
	require.NoError(t, err)
	assert.Equal(t, uint64(1_020_000_000), o.Vault.BorrowIndex)
	assert.Zero(t, o.Vault.TotalBorrowed)
	assert.Zero(t, o.Vault.TotalReserves)
	assert.Empty(t, o.Events)
}

func TestBorrowIndexMonotonic(t *testing.T) {
	e := newEngine(t)
	l := newLedger(newState(t, e, ""))

	o, err := e.Deposit(l.state("alice"), "alice", 1_000_000, genesis)
	require.NoError(t, err)
	l.apply(o)

	o, err = e.Borrow(l.state("alice"), capOf(l.state("alice")), "pool", "alice", 400_000, genesis)
	require.NoError(t, err)
	l.apply(o)

	steps := []int64{0, 1, 7, 3600, 86400, 0, 13, 31_536_000, 1}
	now := genesis
	last := l.vault.BorrowIndex
	lastBorrowed := l.vault.TotalBorrowed
	for _, step := range steps {
		now += step
		o, err := e.Accrue(l.state(""), now)
		require.NoError(t, err)
		l.vault = o.Vault

		assert.GreaterOrEqual(t, l.vault.BorrowIndex, last)
		assert.GreaterOrEqual(t, l.vault.TotalBorrowed, lastBorrowed)
		last = l.vault.BorrowIndex
		lastBorrowed = l.vault.TotalBorrowed
	}

	assert.Greater(t, last, InitialBorrowIndex)
}

func TestTotalAssets(t *testing.T) {
	v := &core.Vault{TotalBorrowed: 300, TotalReserves: 100}

	total, err := TotalAssets(v, 1000)
	require.NoError(t, err)
	assert.Equal(t, uint64(1200), total)
	assert.Equal(t, uint64(900), Liquidity(v, 1000))

	v.TotalReserves = 2000
	_, err = TotalAssets(v, 1000)
	assert.Equal(t, core.ErrMathOverflow, err)
	assert.Zero(t, Liquidity(v, 1000))
}
