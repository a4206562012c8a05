package vault

import (
	"context"
	"fmt"

	"lendvault/core"
	engine "lendvault/internal/vault"
	"lendvault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// Database runs fn in one database transaction
type Database interface {
	Tx(fn func(tx *db.DB) error) error
}

// Config vault service config
type Config struct {
	// operator moving funds on behalf of position holders
	Operator string
	Admins   []string
}

type vaultService struct {
	config        Config
	db            Database
	engine        *engine.Engine
	vaultStore    core.VaultStore
	positionStore core.PositionStore
	borrowStore   core.BorrowStore
	eventStore    core.EventStore
	custody       core.Custody
	ownership     core.OwnershipChecker
	locker        core.Locker
	clock         core.Clock
	notifier      core.Notifier
}

// New new vault service
func New(cfg Config,
	database Database,
	e *engine.Engine,
	vaultStore core.VaultStore,
	positionStore core.PositionStore,
	borrowStore core.BorrowStore,
	eventStore core.EventStore,
	custody core.Custody,
	ownership core.OwnershipChecker,
	locker core.Locker,
	clock core.Clock,
	notifier core.Notifier) core.VaultService {
	return &vaultService{
		config:        cfg,
		db:            database,
		engine:        e,
		vaultStore:    vaultStore,
		positionStore: positionStore,
		borrowStore:   borrowStore,
		eventStore:    eventStore,
		custody:       custody,
		ownership:     ownership,
		locker:        locker,
		clock:         clock,
		notifier:      notifier,
	}
}

func lockKey(vaultID uint64) string {
	return fmt.Sprintf("lendvault:vault:%d", vaultID)
}

func (s *vaultService) isAdmin(v *core.Vault, operator string) bool {
	if operator == "" {
		return false
	}

	if operator == v.Owner {
		return true
	}

	for _, admin := range s.config.Admins {
		if admin == operator {
			return true
		}
	}

	return false
}

// snapshot loads the vault, the identity's records and the custodied balance
func (s *vaultService) snapshot(ctx context.Context, vaultID uint64, identity string) (*engine.State, error) {
	v, err := s.vaultStore.Find(ctx, vaultID)
	if err != nil {
		return nil, err
	}

	st := &engine.State{Vault: *v}
	if identity != "" {
		p, err := s.positionStore.Find(ctx, vaultID, identity)
		if err != nil {
			return nil, err
		}

		b, err := s.borrowStore.Find(ctx, vaultID, identity)
		if err != nil {
			return nil, err
		}

		st.Position = *p
		st.Borrow = *b
	}

	if st.Balance, err = s.custody.Balance(ctx, v); err != nil {
		return nil, err
	}

	return st, nil
}

// commit writes everything the outcome changed in one transaction, custody
// transfers included, then notifies
func (s *vaultService) commit(ctx context.Context, before *engine.State, o *engine.Outcome, capability *core.Capability, traceID string) error {
	if traceID == "" {
		traceID = id.GenTraceID()
	}

	for _, event := range o.Events {
		event.TraceID = traceID
	}

	err := s.db.Tx(func(tx *db.DB) error {
		if err := s.vaultStore.Update(ctx, tx, &o.Vault); err != nil {
			return err
		}

		if o.Position.Identity != "" && o.Position != before.Position {
			if err := s.positionStore.Save(ctx, tx, &o.Position); err != nil {
				return err
			}
		}

		if o.Target != nil {
			if err := s.positionStore.Save(ctx, tx, o.Target); err != nil {
				return err
			}
		}

		if o.Borrow.Identity != "" && o.Borrow != before.Borrow {
			if err := s.borrowStore.Save(ctx, tx, &o.Borrow); err != nil {
				return err
			}
		}

		for idx, ins := range o.Transfers {
			trace := id.TransferTraceID(traceID, idx)
			switch ins.Direction {
			case core.DirectionIn:
				if err := s.custody.TransferIn(ctx, tx, &o.Vault, ins.Counterparty, ins.Amount, trace); err != nil {
					return err
				}
			case core.DirectionOut:
				if err := s.custody.TransferOut(ctx, tx, capability, &o.Vault, ins.Counterparty, ins.Amount, trace); err != nil {
					return err
				}
			}
		}

		return s.eventStore.Create(ctx, tx, o.Events...)
	})
	if err != nil {
		return err
	}

	s.notifier.Notify(ctx, o.Events...)
	return nil
}

type positionOp func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error)

// position runs a position scoped operation under the vault lock
func (s *vaultService) position(ctx context.Context, name string, req *core.Request, op positionOp) (*core.Receipt, error) {
	log := logger.FromContext(ctx).WithField("service", "vault").WithField("op", name)

	unlock, err := s.locker.Lock(ctx, lockKey(req.VaultID))
	if err != nil {
		log.WithError(err).Errorln("lock vault")
		return nil, err
	}
	defer unlock()

	owns, err := s.ownership.Owns(ctx, req.Holder, req.Identity)
	if err != nil {
		log.WithError(err).Errorln("ownership")
		return nil, err
	}

	if !owns {
		return nil, core.ErrInvalidOwnership
	}

	st, err := s.snapshot(ctx, req.VaultID, req.Identity)
	if err != nil {
		return nil, err
	}

	capability, err := s.custody.Authorize(ctx, &st.Vault, s.config.Operator)
	if err != nil {
		log.WithError(err).Errorln("authorize custody")
		return nil, err
	}

	o, err := op(*st, capability, s.clock.Now().Unix())
	if err != nil {
		return nil, err
	}

	if o.Position != st.Position {
		o.Position.Owner = req.Holder
	}

	if err := s.commit(ctx, st, o, capability, req.TraceID); err != nil {
		log.WithError(err).Errorln("commit")
		return nil, err
	}

	return &core.Receipt{
		Shares:  o.Shares,
		Assets:  o.Assets,
		Penalty: o.Penalty,
		Repaid:  o.Repaid,
		Debt:    o.Debt,
		Vault:   &o.Vault,
	}, nil
}

func (s *vaultService) Deposit(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "deposit", req, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Deposit(st, req.Holder, req.Amount, now)
	})
}

func (s *vaultService) Withdraw(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "withdraw", req, func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Withdraw(st, capability, req.Holder, req.Amount, now)
	})
}

func (s *vaultService) Lock(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "lock", req, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Lock(st, req.Holder, req.Amount, req.Tier, now)
	})
}

func (s *vaultService) WithdrawEarly(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "withdraw_early", req, func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.WithdrawEarly(st, capability, req.Holder, req.Amount, now)
	})
}

// Borrow the authenticated holder must be the vault's pool
func (s *vaultService) Borrow(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "borrow", req, func(st engine.State, capability *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Borrow(st, capability, req.Holder, req.Holder, req.Amount, now)
	})
}

func (s *vaultService) Repay(ctx context.Context, req *core.Request) (*core.Receipt, error) {
	return s.position(ctx, "repay", req, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		return s.engine.Repay(st, req.Holder, req.Holder, req.Amount, now)
	})
}

func (s *vaultService) TransferPosition(ctx context.Context, req *core.Request, target string) (*core.Receipt, error) {
	return s.position(ctx, "transfer_position", req, func(st engine.State, _ *core.Capability, now int64) (*engine.Outcome, error) {
		dst, err := s.positionStore.Find(ctx, req.VaultID, target)
		if err != nil {
			return nil, err
		}

		return s.engine.TransferPosition(st, *dst, now)
	})
}

func (s *vaultService) PreviewLock(ctx context.Context, req *core.Request) (*core.LockQuote, error) {
	st, err := s.snapshot(ctx, req.VaultID, req.Identity)
	if err != nil {
		return nil, err
	}

	return s.engine.PreviewLock(*st, req.Amount, req.Tier, s.clock.Now().Unix())
}

func (s *vaultService) VaultInfo(ctx context.Context, vaultID uint64) (*core.VaultInfo, error) {
	st, err := s.snapshot(ctx, vaultID, "")
	if err != nil {
		return nil, err
	}

	return s.engine.VaultInfo(*st, s.clock.Now().Unix())
}

func (s *vaultService) PositionInfo(ctx context.Context, vaultID uint64, identity string) (*core.PositionInfo, error) {
	st, err := s.snapshot(ctx, vaultID, identity)
	if err != nil {
		return nil, err
	}

	return s.engine.PositionInfo(*st, s.clock.Now().Unix())
}
