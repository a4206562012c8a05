package vault

import (
	"lendvault/core"
	"lendvault/pkg/number"
)

// DepositShares shares minted for amount.
// The first deposit and deposits into a vault with no assets mint 1:1.
//
//	shares = amount * total_shares / total_assets
func DepositShares(amount, totalShares, totalAssets uint64) (uint64, error) {
	if amount == 0 {
		return 0, core.ErrInvalidAmount
	}

	if totalShares == 0 || totalAssets == 0 {
		return amount, nil
	}

	return mulDiv(amount, totalShares, totalAssets)
}

// WithdrawAssets assets redeemed by shares
//
//	assets = shares * total_assets / total_shares
func WithdrawAssets(shares, totalShares, totalAssets uint64) (uint64, error) {
	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	if shares > totalShares {
		return 0, core.ErrInsufficientShares
	}

	return mulDiv(shares, totalAssets, totalShares)
}

// Deposit mints unlocked shares for amount transferred in from depositor
func (e *Engine) Deposit(s State, depositor string, amount uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	p := &o.Position
	if p.Shares > 0 && p.LockTier != core.LockTierUnlocked {
		return nil, core.ErrTierMismatch
	}

	shares, err := e.mint(o, depositor, amount, now)
	if err != nil {
		return nil, err
	}

	p.LockTier = core.LockTierUnlocked
	p.LockedUntil = 0
	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.emit(core.EventActionDeposit, func(ev *core.Event) {
		ev.Amount = amount
		ev.Shares = shares
	})

	return o, nil
}

// mint prices amount, transfers it in and credits the shares to the position
func (e *Engine) mint(o *Outcome, depositor string, amount uint64, now int64) (uint64, error) {
	if amount == 0 {
		return 0, core.ErrInvalidAmount
	}

	totalAssets, err := TotalAssets(&o.Vault, o.Balance)
	if err != nil {
		return 0, err
	}

	if e.params.PricingPolicy == PricingAfter {
		if totalAssets, err = add(totalAssets, amount); err != nil {
			return 0, err
		}
	}

	shares, err := DepositShares(amount, o.Vault.TotalShares, totalAssets)
	if err != nil {
		return 0, err
	}

	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	if err := o.transferIn(depositor, amount); err != nil {
		return 0, err
	}

	v, p := &o.Vault, &o.Position
	if p.Shares == 0 {
		p.DepositTime = now
	}

	if v.TotalShares, err = add(v.TotalShares, shares); err != nil {
		return 0, err
	}

	if p.Shares, err = add(p.Shares, shares); err != nil {
		return 0, err
	}

	if p.DepositedAmount, err = add(p.DepositedAmount, amount); err != nil {
		return 0, err
	}

	p.LastUpdate = now
	o.Shares = shares
	o.Assets = amount
	return shares, nil
}

// Withdraw burns shares and transfers the redeemed assets to receiver
func (e *Engine) Withdraw(s State, capability *core.Capability, receiver string, shares uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	if err := authorized(capability, &o.Vault); err != nil {
		return nil, err
	}

	if o.Position.IsLocked(now) {
		return nil, core.ErrStillLocked
	}

	assets, err := e.burn(o, shares)
	if err != nil {
		return nil, err
	}

	if err := o.transferOut(receiver, assets); err != nil {
		return nil, err
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.emit(core.EventActionWithdraw, func(ev *core.Event) {
		ev.Amount = assets
		ev.Shares = shares
	})

	return o, nil
}

// burn removes shares from the position and the vault and returns their asset
// value. Liquidity is checked against the full value.
func (e *Engine) burn(o *Outcome, shares uint64) (uint64, error) {
	v, p := &o.Vault, &o.Position
	if shares == 0 {
		return 0, core.ErrInvalidAmount
	}

	if p.Shares < shares {
		return 0, core.ErrInsufficientShares
	}

	totalAssets, err := TotalAssets(v, o.Balance)
	if err != nil {
		return 0, err
	}

	assets, err := WithdrawAssets(shares, v.TotalShares, totalAssets)
	if err != nil {
		return 0, err
	}

	if assets == 0 {
		return 0, core.ErrInvalidAmount
	}

	if assets > Liquidity(v, o.Balance) {
		return 0, core.ErrInsufficientLiquidity
	}

	if p.LockTier != core.LockTierUnlocked {
		v.TotalLockedShares = number.SaturatingSub(v.TotalLockedShares, shares)
	}

	v.TotalShares -= shares
	p.Shares -= shares
	p.DepositedAmount = number.SaturatingSub(p.DepositedAmount, assets)
	p.LastUpdate = v.LastUpdateTime

	o.Shares = shares
	o.Assets = assets
	return assets, nil
}
