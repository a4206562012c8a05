package cmd

import (
	"time"

	"lendvault/core"
	"lendvault/store/borrow"
	"lendvault/store/credential"
	"lendvault/store/custody"
	"lendvault/store/event"
	"lendvault/store/locker"
	"lendvault/store/position"
	"lendvault/store/transfer"
	"lendvault/store/vault"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	"github.com/go-redis/redis"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideRedis() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
}

// provideLocker redis lock shared by every process, in-process without redis
func provideLocker() core.Locker {
	if cfg.Redis.Addr == "" {
		return locker.Local()
	}

	return locker.Redis(provideRedis(), 30*time.Second)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideVaultStore(db *db.DB) core.VaultStore {
	return vault.New(db)
}

func providePositionStore(db *db.DB) core.PositionStore {
	return position.New(db)
}

func provideBorrowStore(db *db.DB) core.BorrowStore {
	return borrow.New(db)
}

func provideEventStore(db *db.DB) core.EventStore {
	return event.New(db)
}

func provideCustodyStore(db *db.DB) core.CustodyStore {
	return custody.New(db)
}

func provideTransferStore(db *db.DB) core.TransferStore {
	return transfer.New(db)
}

func provideCredentialStore(db *db.DB) core.CredentialStore {
	return credential.Cache(credential.New(db), 10*time.Second)
}
