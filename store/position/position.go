package position

import (
	"context"
	"time"

	"lendvault/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.PositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Position{})
		if err := tx.AutoMigrate(core.Position{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Find(ctx context.Context, vaultID uint64, identity string) (*core.Position, error) {
	var position core.Position
	err := s.db.View().Where("vault_id = ? AND identity = ?", vaultID, identity).First(&position).Error
	if store.IsErrNotFound(err) {
		return &core.Position{VaultID: vaultID, Identity: identity}, nil
	}

	if err != nil {
		return nil, err
	}

	return &position, nil
}

func (s *positionStore) Save(ctx context.Context, tx *db.DB, position *core.Position) error {
	if position.ID == 0 {
		return tx.Update().Create(position).Error
	}

	version := position.Version
	updates := map[string]interface{}{
		"owner":            position.Owner,
		"shares":           position.Shares,
		"deposited_amount": position.DepositedAmount,
		"last_update":      position.LastUpdate,
		"locked_until":     position.LockedUntil,
		"lock_tier":        position.LockTier,
		"deposit_time":     position.DepositTime,
		"version":          gorm.Expr("version + 1"),
		"updated_at":       time.Now(),
	}

	r := tx.Update().Model(core.Position{}).Where("id = ? AND version = ?", position.ID, version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	position.Version = version + 1
	return nil
}

func (s *positionStore) ListByVault(ctx context.Context, vaultID uint64) ([]*core.Position, error) {
	var positions []*core.Position
	if err := s.db.View().Where("vault_id = ? AND shares > 0", vaultID).Order("id").Find(&positions).Error; err != nil {
		return nil, err
	}

	return positions, nil
}
