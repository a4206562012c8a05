package vault

import (
	"lendvault/core"
	"lendvault/pkg/number"
)

// State consistent snapshot of one vault and one identity's records.
// Operations take it by value and return the new snapshot in an Outcome, the
// input is never modified.
type State struct {
	Vault    core.Vault
	Position core.Position
	Borrow   core.BorrowPosition
	// custodied balance of the vault's asset
	Balance uint64
}

// Outcome new state of a successful operation, the asset movements the custody
// collaborator must perform and the notifications to emit
type Outcome struct {
	State

	Shares   uint64
	Assets   uint64
	Penalty  uint64
	Repaid   uint64
	Debt     uint64
	Interest uint64

	// set by TransferPosition
	Target *core.Position

	Transfers []core.Instruction
	Events    []*core.Event
}

func (o *Outcome) transferIn(from string, amount uint64) error {
	balance, err := add(o.Balance, amount)
	if err != nil {
		return err
	}

	o.Balance = balance
	o.Transfers = append(o.Transfers, core.Instruction{
		Direction:    core.DirectionIn,
		Counterparty: from,
		Amount:       amount,
	})
	return nil
}

func (o *Outcome) transferOut(to string, amount uint64) error {
	balance, err := sub(o.Balance, amount)
	if err != nil {
		return core.ErrInsufficientLiquidity
	}

	o.Balance = balance
	o.Transfers = append(o.Transfers, core.Instruction{
		Direction:    core.DirectionOut,
		Counterparty: to,
		Amount:       amount,
	})
	return nil
}

func (o *Outcome) emit(action core.EventAction, fn func(e *core.Event)) {
	event := &core.Event{
		VaultID:  o.Vault.ID,
		Action:   action,
		Identity: o.Position.Identity,
	}

	if fn != nil {
		fn(event)
	}

	o.Events = append(o.Events, event)
}

// Engine vault accounting engine. It is pure: time comes in as an argument and
// asset movements go out as instructions.
type Engine struct {
	params Params
}

// New new engine
func New(params Params) *Engine {
	if params.PenaltyBps == 0 {
		params.PenaltyBps = EarlyWithdrawalPenaltyBps
	}

	if params.CollateralFactor == 0 {
		params.CollateralFactor = DefaultCollateralFactor
	}

	if params.PricingPolicy == "" {
		params.PricingPolicy = PricingBefore
	}

	if params.CollateralMode == "" {
		params.CollateralMode = CollateralPosition
	}

	if params.Collateral == nil {
		switch params.CollateralMode {
		case CollateralNone:
			params.Collateral = NoCollateralCheck
		default:
			params.Collateral = DefaultCollateralCheck(params.CollateralFactor)
		}
	}

	return &Engine{params: params}
}

// Params engine parameters
func (e *Engine) Params() Params {
	return e.params
}

func (e *Engine) begin(s State, now int64) (*Outcome, error) {
	o := &Outcome{State: s}
	if o.Vault.IsPaused {
		return nil, core.ErrVaultPaused
	}

	if err := e.accrue(o, now); err != nil {
		return nil, err
	}

	return o, nil
}

// TotalAssets total_assets = balance + total_borrowed - total_reserves
func TotalAssets(v *core.Vault, balance uint64) (uint64, error) {
	total, err := add(balance, v.TotalBorrowed)
	if err != nil {
		return 0, err
	}

	return sub(total, v.TotalReserves)
}

// Liquidity custodied balance not held back as reserves
func Liquidity(v *core.Vault, balance uint64) uint64 {
	return number.SaturatingSub(balance, v.TotalReserves)
}

func (e *Engine) refreshRate(o *Outcome) error {
	totalAssets, err := TotalAssets(&o.Vault, o.Balance)
	if err != nil {
		return err
	}

	rate, err := e.params.Curve.BorrowRateOf(o.Vault.TotalBorrowed, totalAssets)
	if err != nil {
		return core.ErrMathOverflow
	}

	o.Vault.BorrowRate = rate
	return nil
}

func authorized(capability *core.Capability, v *core.Vault) error {
	if capability == nil || capability.VaultID != v.ID {
		return core.ErrInvalidOwnership
	}

	return nil
}
