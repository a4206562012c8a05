package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// BorrowPosition debt of an identity, valued at the borrow index snapshot
type BorrowPosition struct {
	ID       uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	VaultID  uint64 `sql:"unique_index:borrow_idx" json:"vault_id"`
	Identity string `sql:"size:128;unique_index:borrow_idx" json:"identity"`
	// debt at BorrowIndex
	Borrowed    uint64    `json:"borrowed"`
	BorrowIndex uint64    `json:"borrow_index"`
	Version     int64     `sql:"default:0" json:"version"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BorrowStore borrow store interface
type BorrowStore interface {
	// Find returns an empty borrow position when none is stored
	Find(ctx context.Context, vaultID uint64, identity string) (*BorrowPosition, error)
	Save(ctx context.Context, tx *db.DB, borrow *BorrowPosition) error
	ListByVault(ctx context.Context, vaultID uint64) ([]*BorrowPosition, error)
}
