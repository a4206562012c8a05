package vault

import (
	"context"
	"time"

	"lendvault/core"

	"github.com/fox-one/pkg/store"
	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type vaultStore struct {
	db *db.DB
}

// New new vault store
func New(db *db.DB) core.VaultStore {
	return &vaultStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Vault{})
		if err := tx.AutoMigrate(core.Vault{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *vaultStore) Save(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	return tx.Update().Create(vault).Error
}

func (s *vaultStore) Find(ctx context.Context, id uint64) (*core.Vault, error) {
	var vault core.Vault
	if err := s.db.View().Where("id = ?", id).First(&vault).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) FindByAsset(ctx context.Context, assetID, owner string) (*core.Vault, error) {
	var vault core.Vault
	if err := s.db.View().Where("asset_id = ? AND owner = ?", assetID, owner).First(&vault).Error; err != nil {
		if store.IsErrNotFound(err) {
			return nil, core.ErrVaultNotFound
		}

		return nil, err
	}

	return &vault, nil
}

func (s *vaultStore) All(ctx context.Context) ([]*core.Vault, error) {
	var vaults []*core.Vault
	if err := s.db.View().Order("id").Find(&vaults).Error; err != nil {
		return nil, err
	}

	return vaults, nil
}

// Update writes the vault if nobody else did since it was read
func (s *vaultStore) Update(ctx context.Context, tx *db.DB, vault *core.Vault) error {
	version := vault.Version
	updates := map[string]interface{}{
		"pool":                vault.Pool,
		"total_shares":        vault.TotalShares,
		"total_locked_shares": vault.TotalLockedShares,
		"total_borrowed":      vault.TotalBorrowed,
		"borrow_index":        vault.BorrowIndex,
		"borrow_rate":         vault.BorrowRate,
		"reserve_factor":      vault.ReserveFactor,
		"total_reserves":      vault.TotalReserves,
		"last_update_time":    vault.LastUpdateTime,
		"weighted_extension":  vault.WeightedExtension,
		"is_paused":           vault.IsPaused,
		"version":             gorm.Expr("version + 1"),
		"updated_at":          time.Now(),
	}

	r := tx.Update().Model(core.Vault{}).Where("id = ? AND version = ?", vault.ID, version).Updates(updates)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	vault.Version = version + 1
	return nil
}
