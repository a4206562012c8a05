package custody

import (
	"context"
	"time"

	"lendvault/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type custodyStore struct {
	db *db.DB
}

// New new custody account store
func New(db *db.DB) core.CustodyStore {
	return &custodyStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.CustodyAccount{})
		if err := tx.AutoMigrate(core.CustodyAccount{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *custodyStore) Find(ctx context.Context, vaultID uint64) (*core.CustodyAccount, error) {
	var account core.CustodyAccount
	err := s.db.View().Where("vault_id = ?", vaultID).First(&account).Error
	if store.IsErrNotFound(err) {
		return &core.CustodyAccount{VaultID: vaultID}, nil
	}

	if err != nil {
		return nil, err
	}

	return &account, nil
}

// Save creates the account at version 0, later saves require the version read
func (s *custodyStore) Save(ctx context.Context, tx *db.DB, account *core.CustodyAccount) error {
	version := account.Version
	if version == 0 {
		account.Version = 1
		return tx.Update().Create(account).Error
	}

	r := tx.Update().Model(core.CustodyAccount{}).Where("vault_id = ? AND version = ?", account.VaultID, version).Updates(map[string]interface{}{
		"balance":    account.Balance,
		"version":    gorm.Expr("version + 1"),
		"updated_at": time.Now(),
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	account.Version = version + 1
	return nil
}
