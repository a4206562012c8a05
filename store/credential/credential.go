package credential

import (
	"context"

	"lendvault/core"

	"github.com/fox-one/pkg/store/db"
)

type credentialStore struct {
	db *db.DB
}

// New new credential store
func New(db *db.DB) core.CredentialStore {
	return &credentialStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Credential{})
		if err := tx.AutoMigrate(core.Credential{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *credentialStore) Save(ctx context.Context, credential *core.Credential) error {
	return s.db.Update().Where("holder = ? AND identity = ?", credential.Holder, credential.Identity).FirstOrCreate(credential).Error
}

func (s *credentialStore) Delete(ctx context.Context, holder, identity string) error {
	return s.db.Update().Where("holder = ? AND identity = ?", holder, identity).Delete(core.Credential{}).Error
}

func (s *credentialStore) Has(ctx context.Context, holder, identity string) (bool, error) {
	var count int
	if err := s.db.View().Model(core.Credential{}).Where("holder = ? AND identity = ?", holder, identity).Count(&count).Error; err != nil {
		return false, err
	}

	return count > 0, nil
}
