package borrow

import (
	"context"
	"time"

	"lendvault/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type borrowStore struct {
	db *db.DB
}

// New new borrow store
func New(db *db.DB) core.BorrowStore {
	return &borrowStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.BorrowPosition{})
		if err := tx.AutoMigrate(core.BorrowPosition{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *borrowStore) Find(ctx context.Context, vaultID uint64, identity string) (*core.BorrowPosition, error) {
	var borrow core.BorrowPosition
	err := s.db.View().Where("vault_id = ? AND identity = ?", vaultID, identity).First(&borrow).Error
	if store.IsErrNotFound(err) {
		return &core.BorrowPosition{VaultID: vaultID, Identity: identity}, nil
	}

	if err != nil {
		return nil, err
	}

	return &borrow, nil
}

// Save creates the record on first borrow, a fully repaid record is kept with zero debt
func (s *borrowStore) Save(ctx context.Context, tx *db.DB, borrow *core.BorrowPosition) error {
	if borrow.ID == 0 {
		return tx.Update().Create(borrow).Error
	}

	version := borrow.Version
	r := tx.Update().Model(core.BorrowPosition{}).Where("id = ? AND version = ?", borrow.ID, version).Updates(map[string]interface{}{
		"borrowed":     borrow.Borrowed,
		"borrow_index": borrow.BorrowIndex,
		"version":      gorm.Expr("version + 1"),
		"updated_at":   time.Now(),
	})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	borrow.Version = version + 1
	return nil
}

func (s *borrowStore) ListByVault(ctx context.Context, vaultID uint64) ([]*core.BorrowPosition, error) {
	var borrows []*core.BorrowPosition
	if err := s.db.View().Where("vault_id = ? AND borrowed > 0", vaultID).Order("id").Find(&borrows).Error; err != nil {
		return nil, err
	}

	return borrows, nil
}
