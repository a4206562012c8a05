package vault

import (
	"lendvault/core"
)

// TransferPosition moves all shares of the state's position to target. The
// source record is kept with nothing in it. A source with open debt cannot
// move its collateral.
func (e *Engine) TransferPosition(s State, target core.Position, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	src := &o.Position
	if src.Shares == 0 {
		return nil, core.ErrInsufficientShares
	}

	if target.VaultID != src.VaultID || target.Identity == src.Identity {
		return nil, core.ErrOperationForbidden
	}

	if target.Shares > 0 && target.LockTier != src.LockTier {
		return nil, core.ErrTierMismatch
	}

	debt, err := Debt(&o.Borrow, o.Vault.BorrowIndex)
	if err != nil {
		return nil, err
	}

	if debt > 0 {
		return nil, core.ErrInsufficientCollateral
	}

	if target.Shares, err = add(target.Shares, src.Shares); err != nil {
		return nil, err
	}

	if target.DepositedAmount, err = add(target.DepositedAmount, src.DepositedAmount); err != nil {
		return nil, err
	}

	if target.DepositTime == 0 || (src.DepositTime > 0 && src.DepositTime < target.DepositTime) {
		target.DepositTime = src.DepositTime
	}

	target.LockTier = src.LockTier
	if src.LockedUntil > target.LockedUntil {
		target.LockedUntil = src.LockedUntil
	}

	target.LastUpdate = now

	shares := src.Shares
	src.Shares = 0
	src.DepositedAmount = 0
	src.LockTier = core.LockTierUnlocked
	src.LockedUntil = 0
	src.DepositTime = 0
	src.LastUpdate = now

	o.Shares = shares
	o.Target = &target
	o.emit(core.EventActionTransferPosition, func(ev *core.Event) {
		ev.Target = target.Identity
		ev.Shares = shares
	})

	return o, nil
}
