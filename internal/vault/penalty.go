package vault

import (
	"lendvault/core"
)

// Penalty penalty = assets * penalty_bps / 10000
func Penalty(assets, penaltyBps uint64) (uint64, error) {
	return mulDiv(assets, penaltyBps, BpsDenominator)
}

// WithdrawEarly burns locked shares before the lock expires. The penalty stays
// in custody as reserves and only the payout is transferred to receiver.
func (e *Engine) WithdrawEarly(s State, capability *core.Capability, receiver string, shares uint64, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	if err := authorized(capability, &o.Vault); err != nil {
		return nil, err
	}

	if now >= o.Position.LockedUntil {
		return nil, core.ErrNotLockedForEarlyWithdrawal
	}

	assets, err := e.burn(o, shares)
	if err != nil {
		return nil, err
	}

	penalty, err := Penalty(assets, e.params.PenaltyBps)
	if err != nil {
		return nil, err
	}

	v := &o.Vault
	if v.TotalReserves, err = add(v.TotalReserves, penalty); err != nil {
		return nil, err
	}

	payout := assets - penalty
	if payout > 0 {
		if err := o.transferOut(receiver, payout); err != nil {
			return nil, err
		}
	}

	if err := e.refreshRate(o); err != nil {
		return nil, err
	}

	o.Assets = payout
	o.Penalty = penalty
	o.emit(core.EventActionPenalty, func(ev *core.Event) {
		ev.Amount = payout
		ev.Shares = shares
		ev.Penalty = penalty
	})

	return o, nil
}
