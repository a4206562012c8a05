package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

const secondsPerDay int64 = 86400

// LockTier lock duration bucket
type LockTier uint8

const (
	// LockTierUnlocked no lock
	LockTierUnlocked LockTier = iota
	// LockTierShort 30 days
	LockTierShort
	// LockTierLong 180 days
	LockTierLong
	// LockTierVeryLong 360 days
	LockTierVeryLong
)

// ParseLockTier converts a raw tier code, rejecting codes outside the enumeration
func ParseLockTier(code uint8) (LockTier, error) {
	switch t := LockTier(code); t {
	case LockTierUnlocked, LockTierShort, LockTierLong, LockTierVeryLong:
		return t, nil
	default:
		return LockTierUnlocked, ErrInvalidLockTier
	}
}

// Duration lock duration in seconds
func (t LockTier) Duration() int64 {
	switch t {
	case LockTierShort:
		return 30 * secondsPerDay
	case LockTierLong:
		return 180 * secondsPerDay
	case LockTierVeryLong:
		return 360 * secondsPerDay
	default:
		return 0
	}
}

// FeeBps fee quoted for the tier in basis points; longer locks quote lower fees
func (t LockTier) FeeBps() uint64 {
	switch t {
	case LockTierShort:
		return 30
	case LockTierLong:
		return 20
	case LockTierVeryLong:
		return 10
	default:
		return 50
	}
}

func (t LockTier) String() string {
	switch t {
	case LockTierShort:
		return "short"
	case LockTierLong:
		return "long"
	case LockTierVeryLong:
		return "very_long"
	default:
		return "unlocked"
	}
}

// Position depositor's shares in a vault, keyed by an opaque identity
type Position struct {
	ID       uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	VaultID  uint64 `sql:"unique_index:position_idx" json:"vault_id"`
	Identity string `sql:"size:128;unique_index:position_idx" json:"identity"`
	// last holder that operated the position
	Owner  string `sql:"size:64" json:"owner"`
	Shares uint64 `json:"shares"`
	// informational
	DepositedAmount uint64    `json:"deposited_amount"`
	LastUpdate      int64     `json:"last_update"`
	LockedUntil     int64     `json:"locked_until"`
	LockTier        LockTier  `json:"lock_tier"`
	DepositTime     int64     `json:"deposit_time"`
	Version         int64     `sql:"default:0" json:"version"`
	CreatedAt       time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsLocked the lock has not expired at now
func (p *Position) IsLocked(now int64) bool {
	return p.LockTier != LockTierUnlocked && now < p.LockedUntil
}

// PositionStore position store interface
type PositionStore interface {
	// Find returns an empty position with the given keys when none is stored
	Find(ctx context.Context, vaultID uint64, identity string) (*Position, error)
	Save(ctx context.Context, tx *db.DB, position *Position) error
	ListByVault(ctx context.Context, vaultID uint64) ([]*Position, error)
}

// PositionInfo position with its current valuation
type PositionInfo struct {
	Position *Position `json:"position"`
	// asset value of the shares at the current borrow index
	AssetValue uint64 `json:"asset_value"`
	// debt at the current borrow index
	Debt uint64 `json:"debt"`
	// supply rate including the lock bonus, scale 1e9
	SupplyRate uint64 `json:"supply_rate"`
}

// LockQuote terms a lock would get, nothing is charged
type LockQuote struct {
	Tier        LockTier `json:"tier"`
	Shares      uint64   `json:"shares"`
	LockedUntil int64    `json:"locked_until"`
	// informational tier fee in basis points
	FeeBps uint64 `json:"fee_bps"`
	Fee    uint64 `json:"fee"`
	// supply rate including the lock bonus, scale 1e9
	SupplyRate uint64 `json:"supply_rate"`
}
