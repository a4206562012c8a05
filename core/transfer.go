package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// Transfer queued outbound transfer, executed by the transfer worker
type Transfer struct {
	ID         uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	TraceID    string    `sql:"size:36;unique_index:trace_idx" json:"trace_id,omitempty"`
	VaultID    uint64    `json:"vault_id,omitempty"`
	OpponentID string    `sql:"size:64" json:"opponent_id,omitempty"`
	AssetID    string    `sql:"size:36" json:"asset_id,omitempty"`
	// base units of the asset
	Amount uint64 `json:"amount,omitempty"`
	Memo   string `sql:"size:140" json:"memo,omitempty"`
}

// TransferStore transfer store interface
type TransferStore interface {
	Create(ctx context.Context, tx *db.DB, transfer *Transfer) error
	Delete(ctx context.Context, tx *db.DB, id ...uint64) error
	Top(ctx context.Context, limit int) ([]*Transfer, error)
}

// WalletService executes transfers on the settlement network
type WalletService interface {
	HandleTransfer(ctx context.Context, transfer *Transfer) error
	// VerifyPayment reports whether the inbound transfer with the trace id was paid to the wallet
	VerifyPayment(ctx context.Context, transfer *Transfer) (bool, error)
	PaySchemaURL(amount uint64, asset, trace, memo string) (string, error)
}
