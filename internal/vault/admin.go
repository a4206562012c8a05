package vault

import (
	"lendvault/core"
)

// Initialize new vault state at now
func (e *Engine) Initialize(req *core.InitializeRequest, now int64) (*core.Vault, error) {
	if req.ReserveFactor > MaxReserveFactor {
		return nil, core.ErrReserveFactorTooHigh
	}

	rate, err := e.params.Curve.BorrowRateOf(0, 0)
	if err != nil {
		return nil, core.ErrMathOverflow
	}

	return &core.Vault{
		AssetID:           req.AssetID,
		Owner:             req.Owner,
		Pool:              req.Pool,
		BorrowIndex:       InitialBorrowIndex,
		BorrowRate:        rate,
		ReserveFactor:     req.ReserveFactor,
		LastUpdateTime:    now,
		WeightedExtension: req.WeightedExtension,
	}, nil
}

// SetReserveFactor interest accrued so far is split with the old factor
func (e *Engine) SetReserveFactor(s State, factor uint64, now int64) (*Outcome, error) {
	if factor > MaxReserveFactor {
		return nil, core.ErrReserveFactorTooHigh
	}

	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	o.Vault.ReserveFactor = factor
	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.emit(core.EventActionReserveFactor, func(ev *core.Event) {
		ev.Amount = factor
	})

	return o, nil
}

// WithdrawReserves transfers amount of reserves to the vault owner
func (e *Engine) WithdrawReserves(s State, capability *core.Capability, amount uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	v := &o.Vault
	if err := authorized(capability, v); err != nil {
		return nil, err
	}

	if amount == 0 {
		return nil, core.ErrInvalidAmount
	}

	if amount > v.TotalReserves {
		return nil, core.ErrInsufficientReserves
	}

	v.TotalReserves -= amount
	if err := o.transferOut(v.Owner, amount); err != nil {
		return nil, err
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.Assets = amount
	o.emit(core.EventActionWithdrawReserves, func(ev *core.Event) {
		ev.Identity = v.Owner
		ev.Amount = amount
	})

	return o, nil
}

// Pause blocks every mutating operation but Unpause
func (e *Engine) Pause(s State) *Outcome {
	o := &Outcome{State: s}
	o.Vault.IsPaused = true
	o.emit(core.EventActionPause, nil)

	return o
}

// Unpause accrual resumes from the last update, interest covers the paused period
func (e *Engine) Unpause(s State) *Outcome {
	o := &Outcome{State: s}
	o.Vault.IsPaused = false
	o.emit(core.EventActionUnpause, nil)

	return o
}
