package vault

import (
	"lendvault/core"
	"lendvault/pkg/interest"
	"lendvault/pkg/number"
)

// CalculateExtension seconds a top-up of newDeposit onto existingDeposit adds
// to a lock with timeRemaining of fullDuration left.
//
//	deposit_ratio = new / existing
//	time_ratio = remaining / full
//	extension_ratio = deposit_ratio * sqrt(time_ratio) * (0.6 + 0.4 * time_ratio)
//
// The ratio is clamped to [MinExtensionRatio, MaxExtensionRatio] of fullDuration.
func CalculateExtension(newDeposit, existingDeposit, timeRemaining, fullDuration uint64) (uint64, error) {
	if existingDeposit == 0 || fullDuration == 0 {
		return 0, core.ErrInvalidAmount
	}

	depositRatio, err := mulDiv(newDeposit, Scale, existingDeposit)
	if err != nil {
		return 0, err
	}

	timeRatio, err := mulDiv(timeRemaining, Scale, fullDuration)
	if err != nil {
		return 0, err
	}

	var extensionRatio uint64
	if timeRatio == 0 {
		if extensionRatio, err = mulDiv(depositRatio, MinExtensionRatio, Scale); err != nil {
			return 0, err
		}
	} else {
		scaled, err := mul(timeRatio, Scale)
		if err != nil {
			return 0, err
		}

		sqrtRatio := number.Sqrt(scaled)
		linearPart, err := mulDiv(400_000, timeRatio, Scale)
		if err != nil {
			return 0, err
		}

		timeFactor, err := mulDiv(sqrtRatio, linearPart+600_000, Scale)
		if err != nil {
			return 0, err
		}

		if extensionRatio, err = mulDiv(depositRatio, timeFactor, Scale); err != nil {
			return 0, err
		}
	}

	extensionRatio = number.Clamp(extensionRatio, MinExtensionRatio, MaxExtensionRatio)
	return mulDiv(fullDuration, extensionRatio, Scale)
}

// lockedUntil lock expiry after a top-up. Fresh locks and default top-ups run
// the full tier duration from now; weighted top-ups extend the running lock,
// never past now + duration.
func lockedUntil(v *core.Vault, p *core.Position, tier core.LockTier, amount uint64, now int64) (int64, error) {
	duration := tier.Duration()
	full := now + duration
	if !v.WeightedExtension || p.Shares == 0 || duration == 0 || p.LockedUntil <= now || p.DepositedAmount == 0 {
		return full, nil
	}

	if p.LockedUntil >= full {
		return p.LockedUntil, nil
	}

	ext, err := CalculateExtension(amount, p.DepositedAmount, uint64(p.LockedUntil-now), uint64(duration))
	if err != nil {
		return 0, err
	}

	return p.LockedUntil + int64(number.Min(ext, uint64(full-p.LockedUntil))), nil
}

// Lock mints shares for amount under the tier's withdrawal restriction.
// Topping up a position requires the tier it already holds.
func (e *Engine) Lock(s State, depositor string, amount uint64, tierCode uint8, now int64) (*Outcome, error) {
	tier, err := core.ParseLockTier(tierCode)
	if err != nil {
		return nil, err
	}

	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	v, p := &o.Vault, &o.Position
	if p.Shares > 0 && p.LockTier != tier {
		return nil, core.ErrTierMismatch
	}

	until, err := lockedUntil(v, p, tier, amount, now)
	if err != nil {
		return nil, err
	}

	shares, err := e.mint(o, depositor, amount, now)
	if err != nil {
		return nil, err
	}

	p.LockTier = tier
	p.LockedUntil = until
	if tier != core.LockTierUnlocked {
		if v.TotalLockedShares, err = add(v.TotalLockedShares, shares); err != nil {
			return nil, err
		}
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.emit(core.EventActionLock, func(ev *core.Event) {
		ev.Amount = amount
		ev.Shares = shares
	})

	return o, nil
}

// PreviewLock quotes a lock without touching custody. The tier fee is
// informational and never charged.
func (e *Engine) PreviewLock(s State, amount uint64, tierCode uint8, now int64) (*core.LockQuote, error) {
	tier, err := core.ParseLockTier(tierCode)
	if err != nil {
		return nil, err
	}

	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	v, p := &o.Vault, &o.Position
	if p.Shares > 0 && p.LockTier != tier {
		return nil, core.ErrTierMismatch
	}

	until, err := lockedUntil(v, p, tier, amount, now)
	if err != nil {
		return nil, err
	}

	totalAssets, err := TotalAssets(v, o.Balance)
	if err != nil {
		return nil, err
	}

	if e.params.PricingPolicy == PricingAfter {
		if totalAssets, err = add(totalAssets, amount); err != nil {
			return nil, err
		}
	}

	shares, err := DepositShares(amount, v.TotalShares, totalAssets)
	if err != nil {
		return nil, err
	}

	fee, err := mulDiv(amount, tier.FeeBps(), BpsDenominator)
	if err != nil {
		return nil, err
	}

	supplyRate, err := e.supplyRate(v, o.Balance, tier)
	if err != nil {
		return nil, err
	}

	return &core.LockQuote{
		Tier:        tier,
		Shares:      shares,
		LockedUntil: until,
		FeeBps:      tier.FeeBps(),
		Fee:         fee,
		SupplyRate:  supplyRate,
	}, nil
}

// supplyRate supply rate for a position of tier, locked tiers earn
// LockedYieldMultiplier more per tier step
func (e *Engine) supplyRate(v *core.Vault, balance uint64, tier core.LockTier) (uint64, error) {
	totalAssets, err := TotalAssets(v, balance)
	if err != nil {
		return 0, err
	}

	utilization, err := interest.Utilization(v.TotalBorrowed, totalAssets)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	rate, err := interest.SupplyRate(v.BorrowRate, utilization, v.ReserveFactor)
	if err != nil {
		return 0, core.ErrMathOverflow
	}

	bonus, err := mulDiv(rate, LockedYieldMultiplier*uint64(tier), interest.Precision)
	if err != nil {
		return 0, err
	}

	return add(rate, bonus)
}
