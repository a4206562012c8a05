package custody

import (
	"context"

	"lendvault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Config custody config
type Config struct {
	// service operator allowed to move funds besides the vault owner
	Operator string
	// require inbound transfers to be paid to the wallet
	VerifyPayments bool
}

// New ledger custody. Balances live in the custody store, outbound transfers
// are queued in the transfer outbox and paid by the transfer worker.
func New(cfg Config, custodyStore core.CustodyStore, transferStore core.TransferStore, walletService core.WalletService) core.Custody {
	return &custodyService{
		config:        cfg,
		custodyStore:  custodyStore,
		transferStore: transferStore,
		walletService: walletService,
	}
}

type custodyService struct {
	config        Config
	custodyStore  core.CustodyStore
	transferStore core.TransferStore
	walletService core.WalletService
}

func (s *custodyService) Authorize(ctx context.Context, vault *core.Vault, operator string) (*core.Capability, error) {
	if operator == "" || (operator != vault.Owner && operator != s.config.Operator) {
		return nil, core.ErrInvalidOwnership
	}

	return &core.Capability{VaultID: vault.ID, Operator: operator}, nil
}

func (s *custodyService) Balance(ctx context.Context, vault *core.Vault) (uint64, error) {
	account, err := s.custodyStore.Find(ctx, vault.ID)
	if err != nil {
		return 0, err
	}

	return account.Balance, nil
}

func (s *custodyService) TransferIn(ctx context.Context, tx *db.DB, vault *core.Vault, from string, amount uint64, traceID string) error {
	log := logger.FromContext(ctx).WithField("service", "custody")

	if s.config.VerifyPayments {
		paid, err := s.walletService.VerifyPayment(ctx, &core.Transfer{
			TraceID:    traceID,
			VaultID:    vault.ID,
			OpponentID: from,
			AssetID:    vault.AssetID,
			Amount:     amount,
		})
		if err != nil {
			log.WithError(err).Errorln("verify payment")
			return err
		}

		if !paid {
			return core.ErrPaymentNotFound
		}
	}

	account, err := s.custodyStore.Find(ctx, vault.ID)
	if err != nil {
		return err
	}

	balance := account.Balance + amount
	if balance < account.Balance {
		return core.ErrMathOverflow
	}

	account.Balance = balance
	return s.custodyStore.Save(ctx, tx, account)
}

func (s *custodyService) TransferOut(ctx context.Context, tx *db.DB, capability *core.Capability, vault *core.Vault, to string, amount uint64, traceID string) error {
	if capability == nil || capability.VaultID != vault.ID {
		return core.ErrInvalidOwnership
	}

	account, err := s.custodyStore.Find(ctx, vault.ID)
	if err != nil {
		return err
	}

	if account.Balance < amount {
		return core.ErrInsufficientLiquidity
	}

	account.Balance -= amount
	if err := s.custodyStore.Save(ctx, tx, account); err != nil {
		return err
	}

	return s.transferStore.Create(ctx, tx, &core.Transfer{
		TraceID:    traceID,
		VaultID:    vault.ID,
		OpponentID: to,
		AssetID:    vault.AssetID,
		Amount:     amount,
		Memo:       "lendvault",
	})
}
