package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Vault single-asset lending vault state
type Vault struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:vault_idx" json:"asset_id"`
	// owner claims reserves and administers the vault
	Owner string `sql:"size:64;unique_index:vault_idx" json:"owner"`
	// the only pool allowed to borrow and repay
	Pool string `sql:"size:64" json:"pool"`
	// outstanding shares
	TotalShares uint64 `json:"total_shares"`
	// shares minted through lock
	TotalLockedShares uint64 `json:"total_locked_shares"`
	// borrows with accrued interest
	TotalBorrowed uint64 `json:"total_borrowed"`
	// cumulative interest index, scale 1e9, never decreases
	BorrowIndex uint64 `json:"borrow_index"`
	// borrow rate per year, scale 1e9
	BorrowRate uint64 `json:"borrow_rate"`
	// fraction of interest kept as reserves, scale 1e9
	ReserveFactor uint64 `json:"reserve_factor"`
	TotalReserves uint64 `json:"total_reserves"`
	// unix seconds of the last accrual
	LastUpdateTime int64 `json:"last_update_time"`
	// top-ups extend locks by the weighted extension formula instead of a full duration
	WeightedExtension bool      `json:"weighted_extension"`
	IsPaused          bool      `json:"is_paused"`
	Version           int64     `sql:"default:0" json:"version"`
	CreatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt         time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// VaultStore vault store interface
type VaultStore interface {
	Save(ctx context.Context, tx *db.DB, vault *Vault) error
	Find(ctx context.Context, id uint64) (*Vault, error)
	FindByAsset(ctx context.Context, assetID, owner string) (*Vault, error)
	All(ctx context.Context) ([]*Vault, error)
	Update(ctx context.Context, tx *db.DB, vault *Vault) error
}

// InitializeRequest vault creation parameters
type InitializeRequest struct {
	AssetID       string `json:"asset_id"`
	Owner         string `json:"owner"`
	Pool          string `json:"pool"`
	ReserveFactor uint64 `json:"reserve_factor"`
	// top-ups use the weighted extension formula
	WeightedExtension bool `json:"weighted_extension"`
}

// Request position scoped request
type Request struct {
	VaultID uint64 `json:"vault_id"`
	// caller presenting the credential
	Holder string `json:"holder"`
	// position identity: a wallet or a credential such as an nft
	Identity string `json:"identity"`
	Amount   uint64 `json:"amount"`
	Tier     uint8  `json:"tier,omitempty"`
	TraceID  string `json:"trace_id,omitempty"`
}

// Receipt result of a vault operation
type Receipt struct {
	Shares  uint64 `json:"shares,omitempty"`
	Assets  uint64 `json:"assets,omitempty"`
	Penalty uint64 `json:"penalty,omitempty"`
	Repaid  uint64 `json:"repaid,omitempty"`
	// debt after a borrow or repay
	Debt  uint64 `json:"debt,omitempty"`
	Vault *Vault `json:"vault"`
}

// VaultInfo vault state with derived rates
type VaultInfo struct {
	Vault        *Vault `json:"vault"`
	Balance      uint64 `json:"balance"`
	TotalAssets  uint64 `json:"total_assets"`
	Utilization  uint64 `json:"utilization"`
	BorrowRate   uint64 `json:"borrow_rate"`
	SupplyRate   uint64 `json:"supply_rate"`
	ExchangeRate uint64 `json:"exchange_rate"`
}

// VaultService vault operations
type VaultService interface {
	Initialize(ctx context.Context, operator string, req *InitializeRequest) (*Vault, error)
	Deposit(ctx context.Context, req *Request) (*Receipt, error)
	Withdraw(ctx context.Context, req *Request) (*Receipt, error)
	Lock(ctx context.Context, req *Request) (*Receipt, error)
	WithdrawEarly(ctx context.Context, req *Request) (*Receipt, error)
	Borrow(ctx context.Context, req *Request) (*Receipt, error)
	Repay(ctx context.Context, req *Request) (*Receipt, error)
	TransferPosition(ctx context.Context, req *Request, target string) (*Receipt, error)
	PreviewLock(ctx context.Context, req *Request) (*LockQuote, error)
	SetReserveFactor(ctx context.Context, operator string, vaultID, factor uint64) (*Vault, error)
	WithdrawReserves(ctx context.Context, operator string, vaultID, amount uint64) (*Receipt, error)
	Pause(ctx context.Context, operator string, vaultID uint64) (*Vault, error)
	Unpause(ctx context.Context, operator string, vaultID uint64) (*Vault, error)
	Accrue(ctx context.Context, vaultID uint64) (*Vault, error)
	VaultInfo(ctx context.Context, vaultID uint64) (*VaultInfo, error)
	PositionInfo(ctx context.Context, vaultID uint64, identity string) (*PositionInfo, error)
}
