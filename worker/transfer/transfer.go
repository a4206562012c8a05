package transfer

import (
	"context"

	"lendvault/core"
	"lendvault/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

const batch = 100

// Database runs fn in one database transaction
type Database interface {
	Tx(fn func(tx *db.DB) error) error
}

// Worker pays the queued outbound transfers
type Worker struct {
	worker.BaseJob
	db            Database
	transferStore core.TransferStore
	walletService core.WalletService
}

// New new transfer worker
func New(location string, database Database, transferStore core.TransferStore, walletService core.WalletService) (*Worker, error) {
	w := &Worker{
		db:            database,
		transferStore: transferStore,
		walletService: walletService,
	}

	if err := w.Init("transfer", location, "@every 1s", w.onWork); err != nil {
		return nil, err
	}

	return w, nil
}

func (w *Worker) onWork(ctx context.Context) error {
	transfers, err := w.transferStore.Top(ctx, batch)
	if err != nil {
		return err
	}

	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			// retried on the next round with the same trace id
			return err
		}
	}

	return nil
}

func (w *Worker) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	return w.db.Tx(func(tx *db.DB) error {
		if err := w.walletService.HandleTransfer(ctx, transfer); err != nil {
			log.WithError(err).Errorln("transfer")
			return err
		}

		return w.transferStore.Delete(ctx, tx, transfer.ID)
	})
}
