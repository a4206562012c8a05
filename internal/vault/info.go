package vault

import (
	"lendvault/core"
	"lendvault/pkg/interest"
)

// preview accrues a copy of the state to now, paused vaults included
func (e *Engine) preview(s State, now int64) (*Outcome, error) {
	o := &Outcome{State: s}
	if now < o.Vault.LastUpdateTime {
		now = o.Vault.LastUpdateTime
	}

	if err := e.accrue(o, now); err != nil {
		return nil, err
	}

	return o, nil
}

// ExchangeRate assets per share scaled by interest.Precision, 1.0 for an empty vault
func ExchangeRate(v *core.Vault, balance uint64) (uint64, error) {
	if v.TotalShares == 0 {
		return interest.Precision, nil
	}

	totalAssets, err := TotalAssets(v, balance)
	if err != nil {
		return 0, err
	}

	return mulDiv(totalAssets, interest.Precision, v.TotalShares)
}

// VaultInfo vault state virtually accrued to now
func (e *Engine) VaultInfo(s State, now int64) (*core.VaultInfo, error) {
	o, err := e.preview(s, now)
	if err != nil {
		return nil, err
	}

	v := o.Vault
	totalAssets, err := TotalAssets(&v, o.Balance)
	if err != nil {
		return nil, err
	}

	utilization, err := interest.Utilization(v.TotalBorrowed, totalAssets)
	if err != nil {
		return nil, core.ErrMathOverflow
	}

	supplyRate, err := e.supplyRate(&v, o.Balance, core.LockTierUnlocked)
	if err != nil {
		return nil, err
	}

	exchangeRate, err := ExchangeRate(&v, o.Balance)
	if err != nil {
		return nil, err
	}

	return &core.VaultInfo{
		Vault:        &v,
		Balance:      o.Balance,
		TotalAssets:  totalAssets,
		Utilization:  utilization,
		BorrowRate:   v.BorrowRate,
		SupplyRate:   supplyRate,
		ExchangeRate: exchangeRate,
	}, nil
}

// PositionInfo position valued at the vault state virtually accrued to now
func (e *Engine) PositionInfo(s State, now int64) (*core.PositionInfo, error) {
	o, err := e.preview(s, now)
	if err != nil {
		return nil, err
	}

	p := o.Position
	value, err := AssetValue(&p, &o.Vault, o.Balance)
	if err != nil {
		return nil, err
	}

	debt, err := Debt(&o.Borrow, o.Vault.BorrowIndex)
	if err != nil {
		return nil, err
	}

	tier := p.LockTier
	if !p.IsLocked(now) {
		tier = core.LockTierUnlocked
	}

	supplyRate, err := e.supplyRate(&o.Vault, o.Balance, tier)
	if err != nil {
		return nil, err
	}

	return &core.PositionInfo{
		Position:   &p,
		AssetValue: value,
		Debt:       debt,
		SupplyRate: supplyRate,
	}, nil
}
