package vault

import (
	"lendvault/core"
	"lendvault/pkg/interest"
	"lendvault/pkg/number"
)

// Debt debt = borrowed * current_index / snapshot_index
func Debt(b *core.BorrowPosition, borrowIndex uint64) (uint64, error) {
	if b.Borrowed == 0 {
		return 0, nil
	}

	return mulDiv(b.Borrowed, borrowIndex, b.BorrowIndex)
}

// AssetValue asset value of the position's shares
func AssetValue(p *core.Position, v *core.Vault, balance uint64) (uint64, error) {
	if p.Shares == 0 || v.TotalShares == 0 {
		return 0, nil
	}

	totalAssets, err := TotalAssets(v, balance)
	if err != nil {
		return 0, err
	}

	return mulDiv(p.Shares, totalAssets, v.TotalShares)
}

// DefaultCollateralCheck debt may reach factor of the position's asset value
func DefaultCollateralCheck(factor uint64) CollateralCheck {
	return func(s *State, debt, totalAssets uint64) error {
		if s.Vault.TotalShares == 0 || s.Position.Shares == 0 {
			return core.ErrInsufficientCollateral
		}

		value, err := mulDiv(s.Position.Shares, totalAssets, s.Vault.TotalShares)
		if err != nil {
			return err
		}

		limit, err := mulDiv(value, factor, interest.Precision)
		if err != nil {
			return err
		}

		if debt > limit {
			return core.ErrInsufficientCollateral
		}

		return nil
	}
}

// NoCollateralCheck accepts any debt, liquidity still bounds the loan
func NoCollateralCheck(*State, uint64, uint64) error {
	return nil
}

// checkPool only the vault's pool borrows and repays, a vault without one lends to nobody
func checkPool(v *core.Vault, pool string) error {
	if v.Pool == "" || v.Pool != pool {
		return core.ErrUnauthorizedPool
	}

	return nil
}

// Borrow lends amount from custody to receiver against the position
func (e *Engine) Borrow(s State, capability *core.Capability, pool, receiver string, amount uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	v, b := &o.Vault, &o.Borrow
	if err := authorized(capability, v); err != nil {
		return nil, err
	}

	if err := checkPool(v, pool); err != nil {
		return nil, err
	}

	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	debt, err := Debt(b, v.BorrowIndex)
	if err != nil {
		return nil, err
	}

	newDebt, err := add(debt, amount)
	if err != nil {
		return nil, err
	}

	// collateral is valued before the loan leaves custody, total assets do not change
	totalAssets, err := TotalAssets(v, o.Balance)
	if err != nil {
		return nil, err
	}

	if err := e.params.Collateral(&o.State, newDebt, totalAssets); err != nil {
		return nil, err
	}

	if amount > Liquidity(v, o.Balance) {
		return nil, core.ErrInsufficientLiquidity
	}

	if v.TotalBorrowed, err = add(v.TotalBorrowed, amount); err != nil {
		return nil, err
	}

	b.VaultID = v.ID
	b.Identity = o.Position.Identity
	b.Borrowed = newDebt
	b.BorrowIndex = v.BorrowIndex
	if err := o.transferOut(receiver, amount); err != nil {
		return nil, err
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.Assets = amount
	o.Debt = newDebt
	o.emit(core.EventActionBorrow, func(ev *core.Event) {
		ev.Amount = amount
	})

	return o, nil
}

// Repay pays back up to the outstanding debt from payer
func (e *Engine) Repay(s State, pool, payer string, amount uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	v, b := &o.Vault, &o.Borrow
	if err := checkPool(v, pool); err != nil {
		return nil, err
	}

	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	debt, err := Debt(b, v.BorrowIndex)
	if err != nil {
		return nil, err
	}

	if debt == 0 {
		return nil, core.ErrNoDebtToRepay
	}

	repaid := number.Min(amount, debt)
	b.Borrowed = debt - repaid
	b.BorrowIndex = v.BorrowIndex
	// the aggregate and individual debts round separately
	v.TotalBorrowed = number.SaturatingSub(v.TotalBorrowed, repaid)
	if err := o.transferIn(payer, repaid); err != nil {
		return nil, err
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.Repaid = repaid
	o.Debt = b.Borrowed
	o.emit(core.EventActionRepay, func(ev *core.Event) {
		ev.Amount = repaid
	})

	return o, nil
}
