package wallet

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"lendvault/core"
	"lendvault/pkg/number"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
)

// New new wallet service. Vault amounts are base units with decimals places.
func New(wallet *core.Wallet, decimals int32) core.WalletService {
	return &walletService{
		wallet:   wallet,
		decimals: decimals,
	}
}

type walletService struct {
	wallet   *core.Wallet
	decimals int32
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     number.FromScaled(transfer.Amount, s.decimals),
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	if _, err := s.wallet.Client.Transfer(ctx, input, s.wallet.Pin); err != nil {
		return err
	}

	return nil
}

// VerifyPayment the payer must have used the trace id in its payment to the wallet
func (s *walletService) VerifyPayment(ctx context.Context, transfer *core.Transfer) (bool, error) {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	payment, err := s.wallet.Client.VerifyPayment(ctx, mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: s.wallet.Client.ClientID,
		Amount:     number.FromScaled(transfer.Amount, s.decimals),
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	})
	if err != nil {
		log.WithError(err).Errorln("verify payment")
		return false, err
	}

	return payment.Status == "paid", nil
}

// PaySchemaURL build pay schema url to the wallet
func (s *walletService) PaySchemaURL(amount uint64, asset, trace, memo string) (string, error) {
	if amount == 0 || asset == "" || trace == "" {
		return "", errors.New("invalid paramaters")
	}

	return fmt.Sprintf("mixin://pay?amount=%s&asset=%s&recipient=%s&trace=%s&memo=%s",
		number.FromScaled(amount, s.decimals).String(),
		asset,
		s.wallet.Client.ClientID,
		trace,
		url.QueryEscape(memo),
	), nil
}
