package event

import (
	"context"

	"lendvault/core"

	"github.com/fox-one/pkg/store/db"
)

type eventStore struct {
	db *db.DB
}

// New new event store
func New(db *db.DB) core.EventStore {
	return &eventStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Event{})
		if err := tx.AutoMigrate(core.Event{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *eventStore) Create(ctx context.Context, tx *db.DB, events ...*core.Event) error {
	for _, event := range events {
		if err := tx.Update().Create(event).Error; err != nil {
			return err
		}
	}

	return nil
}

// ListByVault latest events first
func (s *eventStore) ListByVault(ctx context.Context, vaultID uint64, limit int) ([]*core.Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}

	var events []*core.Event
	if err := s.db.View().Where("vault_id = ?", vaultID).Order("id DESC").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}

	return events, nil
}
