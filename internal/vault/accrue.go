package vault

import (
	"fmt"

	"lendvault/core"
	"lendvault/pkg/interest"
)

// Accrue brings the borrow index up to now. Calling it twice with the same now
// is a no-op.
func (e *Engine) Accrue(s State, now int64) (*Outcome, error) {
	o, err := e.begin(s, now)
	if err != nil {
		return nil, err
	}

	return o, nil
}

// accrue
//
//	interest_factor = borrow_rate * elapsed / seconds_per_year
//	new_index = borrow_index + borrow_index * interest_factor
//	new_total_borrowed = total_borrowed * new_index / borrow_index
//	reserves += (new_total_borrowed - total_borrowed) * reserve_factor
func (e *Engine) accrue(o *Outcome, now int64) error {
	v := &o.Vault
	if now == v.LastUpdateTime {
		return nil
	}

	if now < v.LastUpdateTime {
		return fmt.Errorf("vault %d: now %d before last update %d: %w", v.ID, now, v.LastUpdateTime, core.ErrClockRegression)
	}

	elapsed := uint64(now - v.LastUpdateTime)
	factor, err := interest.Factor(v.BorrowRate, elapsed)
	if err != nil {
		return core.ErrMathOverflow
	}

	growth, err := mulDiv(v.BorrowIndex, factor, interest.Precision)
	if err != nil {
		return err
	}

	newIndex, err := add(v.BorrowIndex, growth)
	if err != nil {
		return err
	}

	var accrued uint64
	if v.TotalBorrowed > 0 {
		newBorrowed, err := mulDiv(v.TotalBorrowed, newIndex, v.BorrowIndex)
		if err != nil {
			return err
		}

		accrued = newBorrowed - v.TotalBorrowed
		reserveDelta, err := mulDiv(accrued, v.ReserveFactor, interest.Precision)
		if err != nil {
			return err
		}

		if v.TotalReserves, err = add(v.TotalReserves, reserveDelta); err != nil {
			return err
		}

		v.TotalBorrowed = newBorrowed
	}

	v.BorrowIndex = newIndex
	v.LastUpdateTime = now
	o.Interest = accrued

	if accrued > 0 {
		o.emit(core.EventActionAccrue, func(ev *core.Event) {
			ev.Identity = ""
			ev.Amount = accrued
			ev.BorrowIndex = newIndex
		})
	}

	return e.refreshRate(o)
}
