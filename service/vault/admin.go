package vault

import (
	"context"
	"errors"

	"lendvault/core"
	engine "lendvault/internal/vault"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func (s *vaultService) Initialize(ctx context.Context, operator string, req *core.InitializeRequest) (*core.Vault, error) {
	log := logger.FromContext(ctx).WithField("service", "vault").WithField("op", "initialize")

	if !s.isAdmin(&core.Vault{Owner: req.Owner}, operator) {
		return nil, core.ErrInvalidOwnership
	}

	unlock, err := s.locker.Lock(ctx, "lendvault:vault:init:"+req.AssetID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if _, err := s.vaultStore.FindByAsset(ctx, req.AssetID, req.Owner); err == nil {
		return nil, core.ErrVaultExists
	} else if !errors.Is(err, core.ErrVaultNotFound) {
		return nil, err
	}

	v, err := s.engine.Initialize(req, s.clock.Now().Unix())
	if err != nil {
		return nil, err
	}

	event := &core.Event{
		Action:   core.EventActionInitialize,
		Identity: v.Owner,
		Amount:   v.ReserveFactor,
	}

	if err := s.db.Tx(func(tx *db.DB) error {
		if err := s.vaultStore.Save(ctx, tx, v); err != nil {
			return err
		}

		event.VaultID = v.ID
		return s.eventStore.Create(ctx, tx, event)
	}); err != nil {
		log.WithError(err).Errorln("save vault")
		return nil, err
	}

	s.notifier.Notify(ctx, event)
	return v, nil
}

type adminOp func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error)

// admin runs an owner operation under the vault lock
func (s *vaultService) admin(ctx context.Context, name, operator string, vaultID uint64, op adminOp) (*engine.Outcome, error) {
	log := logger.FromContext(ctx).WithField("service", "vault").WithField("op", name)

	unlock, err := s.locker.Lock(ctx, lockKey(vaultID))
	if err != nil {
		log.WithError(err).Errorln("lock vault")
		return nil, err
	}
	defer unlock()

	st, err := s.snapshot(ctx, vaultID, "")
	if err != nil {
		return nil, err
	}

	var capability *core.Capability
	if operator != "" {
		if !s.isAdmin(&st.Vault, operator) {
			return nil, core.ErrInvalidOwnership
		}

		if capability, err = s.custody.Authorize(ctx, &st.Vault, operator); err != nil {
			return nil, err
		}
	}

	o, err := op(*st, capability, s.clock.Now().Unix())
	if err != nil {
		return nil, err
	}

	if err := s.commit(ctx, st, o, capability, ""); err != nil {
		log.WithError(err).Errorln("commit")
		return nil, err
	}

	return o, nil
}

func (s *vaultService) SetReserveFactor(ctx context.Context, operator string, vaultID, factor uint64) (*core.Vault, error) {
	if operator == "" {
		return nil, core.ErrInvalidOwnership
	}

	o, err := s.admin(ctx, "reserve_factor", operator, vaultID, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.SetReserveFactor(st, factor, now)
	})
	if err != nil {
		return nil, err
	}

	return &o.Vault, nil
}

func (s *vaultService) WithdrawReserves(ctx context.Context, operator string, vaultID, amount uint64) (*core.Receipt, error) {
	if operator == "" {
		return nil, core.ErrInvalidOwnership
	}

	o, err := s.admin(ctx, "withdraw_reserves", operator, vaultID, func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.WithdrawReserves(st, capability, amount, now)
	})
	if err != nil {
		return nil, err
	}

	return &core.Receipt{Assets: o.Assets, Vault: &o.Vault}, nil
}

func (s *vaultService) Pause(ctx context.Context, operator string, vaultID uint64) (*core.Vault, error) {
	if operator == "" {
		return nil, core.ErrInvalidOwnership
	}

	o, err := s.admin(ctx, "pause", operator, vaultID, func(st engine.State, _ *core.Capability, _ int64) (*engine.Outcome, error) {
		return s.engine.Pause(st), nil
	})
	if err != nil {
		return nil, err
	}

	return &o.Vault, nil
}

func (s *vaultService) Unpause(ctx context.Context, operator string, vaultID uint64) (*core.Vault, error) {
	if operator == "" {
		return nil, core.ErrInvalidOwnership
	}

	o, err := s.admin(ctx, "unpause", operator, vaultID, func(st engine.State, _ *core.Capability, _ int64) (*engine.Outcome, error) {
		return s.engine.Unpause(st), nil
	})
	if err != nil {
		return nil, err
	}

	return &o.Vault, nil
}

// Accrue needs no operator, anyone may bring the index up to date
func (s *vaultService) Accrue(ctx context.Context, vaultID uint64) (*core.Vault, error) {
	o, err := s.admin(ctx, "accrue", "", vaultID, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Accrue(st, now)
	})
	if err != nil {
		return nil, err
	}

	return &o.Vault, nil
}
