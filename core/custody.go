package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Direction of an asset movement relative to the vault
type Direction int

const (
	// DirectionIn counterparty -> vault
	DirectionIn Direction = iota + 1
	// DirectionOut vault -> counterparty
	DirectionOut
)

func (d Direction) String() string {
	if d == DirectionIn {
		return "in"
	}

	return "out"
}

// Instruction asset movement the custody collaborator must perform
type Instruction struct {
	Direction    Direction `json:"direction"`
	Counterparty string    `json:"counterparty"`
	Amount       uint64    `json:"amount"`
}

// Capability authorization to move vault-custodied funds, issued by custody
type Capability struct {
	VaultID  uint64 `json:"vault_id"`
	Operator string `json:"operator"`
}

// CustodyAccount the vault's custodied token balance
type CustodyAccount struct {
	VaultID   uint64    `sql:"PRIMARY_KEY" json:"vault_id"`
	Balance   uint64    `json:"balance"`
	Version   int64     `sql:"default:0" json:"version"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// CustodyStore custody account store interface
type CustodyStore interface {
	// Find returns an empty account when none is stored
	Find(ctx context.Context, vaultID uint64) (*CustodyAccount, error)
	Save(ctx context.Context, tx *db.DB, account *CustodyAccount) error
}

// Custody moves assets in and out of vault custody. Transfers join the caller's
// database transaction so they commit or roll back with the vault state.
type Custody interface {
	Authorize(ctx context.Context, vault *Vault, operator string) (*Capability, error)
	Balance(ctx context.Context, vault *Vault) (uint64, error)
	TransferIn(ctx context.Context, tx *db.DB, vault *Vault, from string, amount uint64, traceID string) error
	TransferOut(ctx context.Context, tx *db.DB, capability *Capability, vault *Vault, to string, amount uint64, traceID string) error
}
