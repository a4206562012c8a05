package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
)

// EventAction vault event kind
type EventAction string

const (
	EventActionInitialize       EventAction = "initialize"
	EventActionAccrue           EventAction = "accrue"
	EventActionDeposit          EventAction = "deposit"
	EventActionWithdraw         EventAction = "withdraw"
	EventActionLock             EventAction = "lock"
	EventActionPenalty          EventAction = "penalty"
	EventActionBorrow           EventAction = "borrow"
	EventActionRepay            EventAction = "repay"
	EventActionReserveFactor    EventAction = "reserve_factor"
	EventActionWithdrawReserves EventAction = "withdraw_reserves"
	EventActionPause            EventAction = "pause"
	EventActionUnpause          EventAction = "unpause"
	EventActionTransferPosition EventAction = "transfer_position"
)

// Event vault notification
type Event struct {
	ID       uint64      `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	VaultID  uint64      `sql:"index:event_vault_idx" json:"vault_id"`
	Action   EventAction `sql:"size:32" json:"action"`
	Identity string      `sql:"size:128" json:"identity,omitempty"`
	Target   string      `sql:"size:128" json:"target,omitempty"`
	Amount   uint64      `json:"amount,omitempty"`
	Shares   uint64      `json:"shares,omitempty"`
	Penalty  uint64      `json:"penalty,omitempty"`
	// borrow index after accrual
	BorrowIndex uint64    `json:"borrow_index,omitempty"`
	TraceID     string    `sql:"size:36" json:"trace_id,omitempty"`
	CreatedAt   time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// EventStore event store interface
type EventStore interface {
	Create(ctx context.Context, tx *db.DB, events ...*Event) error
	ListByVault(ctx context.Context, vaultID uint64, limit int) ([]*Event, error)
}

// Notifier observability sink; notifications are fire-and-forget
type Notifier interface {
	Notify(ctx context.Context, events ...*Event)
}
