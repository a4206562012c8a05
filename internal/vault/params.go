package vault

import (
	"lendvault/pkg/interest"
)

const (
	// InitialBorrowIndex borrow index of a new vault
	InitialBorrowIndex = interest.Precision
	// MaxReserveFactor reserve factor cap, 50%
	MaxReserveFactor uint64 = 500_000_000

	// Scale scale of the extension ratios
	Scale uint64 = 1_000_000
	// MinExtensionRatio an extension is at least 10% of the tier duration
	MinExtensionRatio uint64 = 100_000
	// MaxExtensionRatio an extension is at most the full tier duration
	MaxExtensionRatio uint64 = 1_000_000

	// EarlyWithdrawalPenaltyBps 10%
	EarlyWithdrawalPenaltyBps uint64 = 1000
	// BpsDenominator basis points per unit
	BpsDenominator uint64 = 10_000

	// LockedYieldMultiplier supply rate bonus per tier step, 5%
	LockedYieldMultiplier uint64 = 50_000_000
	// DefaultCollateralFactor debt may reach half of the position's asset value
	DefaultCollateralFactor uint64 = 500_000_000
)

// PricingPolicy which total assets deposits are priced against
type PricingPolicy string

const (
	// PricingBefore price against total assets before the incoming transfer
	PricingBefore PricingPolicy = "before"
	// PricingAfter price against total assets including the incoming transfer
	PricingAfter PricingPolicy = "after"
)

// CollateralMode how borrows are backed
type CollateralMode string

const (
	// CollateralPosition debt is limited by the borrowing position's asset value
	CollateralPosition CollateralMode = "position"
	// CollateralNone the authorized pool borrows unsecured
	CollateralNone CollateralMode = "none"
)

// CollateralCheck rejects a borrow that would leave debt unbacked
type CollateralCheck func(s *State, debt, totalAssets uint64) error

// Params engine parameters
type Params struct {
	Curve            interest.Curve
	PenaltyBps       uint64
	CollateralFactor uint64
	PricingPolicy    PricingPolicy
	CollateralMode   CollateralMode
	// nil selects the check of CollateralMode
	Collateral CollateralCheck
}

// DefaultParams default engine parameters
func DefaultParams() Params {
	return Params{
		Curve:            interest.DefaultCurve,
		PenaltyBps:       EarlyWithdrawalPenaltyBps,
		CollateralFactor: DefaultCollateralFactor,
		PricingPolicy:    PricingBefore,
		CollateralMode:   CollateralPosition,
	}
}
