package cmd

import (
	"time"

	"lendvault/config"
	"lendvault/core"
	engine "lendvault/internal/vault"
	"lendvault/service/clock"
	custodyservice "lendvault/service/custody"
	"lendvault/service/identity"
	"lendvault/service/notifier"
	"lendvault/service/session"
	vaultservice "lendvault/service/vault"
	"lendvault/service/wallet"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideMixinClient() *mixin.Client {
	c, err := mixin.NewFromKeystore(&cfg.Mixin.Keystore)
	if err != nil {
		panic(err)
	}

	return c
}

func provideWallet() *core.Wallet {
	return &core.Wallet{
		Client: provideMixinClient(),
		Pin:    cfg.Mixin.Pin,
	}
}

// provideOperator the custody wallet moves funds for every vault
func provideOperator() string {
	return cfg.Mixin.ClientID
}

func provideWalletService(w *core.Wallet) core.WalletService {
	return wallet.New(w, cfg.App.Decimals)
}

func provideSession() core.Session {
	return session.New(1024, 10*time.Minute)
}

func provideEngine() *engine.Engine {
	return engine.New(config.EngineParams(&cfg))
}

func provideCustody(db *db.DB, walletService core.WalletService) core.Custody {
	return custodyservice.New(
		custodyservice.Config{
			Operator:       provideOperator(),
			VerifyPayments: cfg.Mixin.VerifyPayments,
		},
		provideCustodyStore(db),
		provideTransferStore(db),
		walletService,
	)
}

// provideNotifier logs every event and publishes it when redis is configured
func provideNotifier() core.Notifier {
	if cfg.Redis.Addr == "" {
		return notifier.New()
	}

	return notifier.Multi(notifier.New(), notifier.Redis(provideRedis()))
}

func provideVaultService(db *db.DB, custody core.Custody) core.VaultService {
	return vaultservice.New(
		vaultservice.Config{
			Operator: provideOperator(),
			Admins:   cfg.Admins,
		},
		db,
		provideEngine(),
		provideVaultStore(db),
		providePositionStore(db),
		provideBorrowStore(db),
		provideEventStore(db),
		custody,
		identity.New(provideCredentialStore(db)),
		provideLocker(),
		clock.System(),
		provideNotifier(),
	)
}
