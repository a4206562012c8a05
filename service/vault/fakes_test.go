package vault

import (
	"context"
	"fmt"
	"testing"
	"time"

	"lendvault/core"
	engine "lendvault/internal/vault"
	"lendvault/service/clock"
	"lendvault/service/custody"
	"lendvault/service/identity"
	"lendvault/store/locker"

	"github.com/fox-one/pkg/store/db"
)

const genesis int64 = 1_600_000_000

// world in-memory tables, restored when a transaction fails
type world struct {
	vaults      map[uint64]core.Vault
	positions   map[string]core.Position
	borrows     map[string]core.BorrowPosition
	accounts    map[uint64]core.CustodyAccount
	credentials map[core.Credential]bool
	transfers   []core.Transfer
	events      []core.Event
	seq         uint64
}

func newWorld() *world {
	return &world{
		vaults:      map[uint64]core.Vault{},
		positions:   map[string]core.Position{},
		borrows:     map[string]core.BorrowPosition{},
		accounts:    map[uint64]core.CustodyAccount{},
		credentials: map[core.Credential]bool{},
	}
}

func (w *world) clone() *world {
	c := *w
	c.vaults = map[uint64]core.Vault{}
	for k, v := range w.vaults {
		c.vaults[k] = v
	}

	c.positions = map[string]core.Position{}
	for k, v := range w.positions {
		c.positions[k] = v
	}

	c.borrows = map[string]core.BorrowPosition{}
	for k, v := range w.borrows {
		c.borrows[k] = v
	}

	c.accounts = map[uint64]core.CustodyAccount{}
	for k, v := range w.accounts {
		c.accounts[k] = v
	}

	c.transfers = append([]core.Transfer(nil), w.transfers...)
	c.events = append([]core.Event(nil), w.events...)
	return &c
}

func (w *world) nextID() uint64 {
	w.seq++
	return w.seq
}

func (w *world) Tx(fn func(tx *db.DB) error) error {
	saved := w.clone()
	if err := fn(nil); err != nil {
		*w = *saved
		return err
	}

	return nil
}

func key(vaultID uint64, identity string) string {
	return fmt.Sprintf("%d/%s", vaultID, identity)
}

type vaultTable struct{ *world }

func (t vaultTable) Save(_ context.Context, _ *db.DB, vault *core.Vault) error {
	vault.ID = t.nextID()
	t.vaults[vault.ID] = *vault
	return nil
}

func (t vaultTable) Find(_ context.Context, id uint64) (*core.Vault, error) {
	v, ok := t.vaults[id]
	if !ok {
		return nil, core.ErrVaultNotFound
	}

	return &v, nil
}

func (t vaultTable) FindByAsset(_ context.Context, assetID, owner string) (*core.Vault, error) {
	for _, v := range t.vaults {
		if v.AssetID == assetID && v.Owner == owner {
			v := v
			return &v, nil
		}
	}

	return nil, core.ErrVaultNotFound
}

func (t vaultTable) All(_ context.Context) ([]*core.Vault, error) {
	var vaults []*core.Vault
	for _, v := range t.vaults {
		v := v
		vaults = append(vaults, &v)
	}

	return vaults, nil
}

func (t vaultTable) Update(_ context.Context, _ *db.DB, vault *core.Vault) error {
	if t.vaults[vault.ID].Version != vault.Version {
		return db.ErrOptimisticLock
	}

	vault.Version++
	t.vaults[vault.ID] = *vault
	return nil
}

type positionTable struct{ *world }

func (t positionTable) Find(_ context.Context, vaultID uint64, identity string) (*core.Position, error) {
	p, ok := t.positions[key(vaultID, identity)]
	if !ok {
		p = core.Position{VaultID: vaultID, Identity: identity}
	}

	return &p, nil
}

func (t positionTable) Save(_ context.Context, _ *db.DB, position *core.Position) error {
	if position.ID == 0 {
		position.ID = t.nextID()
	}

	t.positions[key(position.VaultID, position.Identity)] = *position
	return nil
}

func (t positionTable) ListByVault(_ context.Context, vaultID uint64) ([]*core.Position, error) {
	var positions []*core.Position
	for _, p := range t.positions {
		if p.VaultID == vaultID && p.Shares > 0 {
			p := p
			positions = append(positions, &p)
		}
	}

	return positions, nil
}

type borrowTable struct{ *world }

func (t borrowTable) Find(_ context.Context, vaultID uint64, identity string) (*core.BorrowPosition, error) {
	b, ok := t.borrows[key(vaultID, identity)]
	if !ok {
		b = core.BorrowPosition{VaultID: vaultID, Identity: identity}
	}

	return &b, nil
}

func (t borrowTable) Save(_ context.Context, _ *db.DB, borrow *core.BorrowPosition) error {
	if borrow.ID == 0 {
		borrow.ID = t.nextID()
	}

	t.borrows[key(borrow.VaultID, borrow.Identity)] = *borrow
	return nil
}

func (t borrowTable) ListByVault(_ context.Context, vaultID uint64) ([]*core.BorrowPosition, error) {
	var borrows []*core.BorrowPosition
	for _, b := range t.borrows {
		if b.VaultID == vaultID && b.Borrowed > 0 {
			b := b
			borrows = append(borrows, &b)
		}
	}

	return borrows, nil
}

type eventTable struct{ *world }

func (t eventTable) Create(_ context.Context, _ *db.DB, events ...*core.Event) error {
	for _, event := range events {
		event.ID = t.nextID()
		t.events = append(t.events, *event)
	}

	return nil
}

func (t eventTable) ListByVault(_ context.Context, vaultID uint64, limit int) ([]*core.Event, error) {
	var events []*core.Event
	for idx := len(t.events) - 1; idx >= 0 && len(events) < limit; idx-- {
		if e := t.events[idx]; e.VaultID == vaultID {
			events = append(events, &e)
		}
	}

	return events, nil
}

type accountTable struct{ *world }

func (t accountTable) Find(_ context.Context, vaultID uint64) (*core.CustodyAccount, error) {
	acct, ok := t.accounts[vaultID]
	if !ok {
		acct = core.CustodyAccount{VaultID: vaultID}
	}

	return &acct, nil
}

func (t accountTable) Save(_ context.Context, _ *db.DB, account *core.CustodyAccount) error {
	t.accounts[account.VaultID] = *account
	return nil
}

type transferTable struct{ *world }

func (t transferTable) Create(_ context.Context, _ *db.DB, transfer *core.Transfer) error {
	transfer.ID = t.nextID()
	t.transfers = append(t.transfers, *transfer)
	return nil
}

func (t transferTable) Delete(context.Context, *db.DB, ...uint64) error { return nil }

func (t transferTable) Top(context.Context, int) ([]*core.Transfer, error) { return nil, nil }

type credentialTable struct{ *world }

func (t credentialTable) Save(_ context.Context, credential *core.Credential) error {
	t.credentials[core.Credential{Holder: credential.Holder, Identity: credential.Identity}] = true
	return nil
}

func (t credentialTable) Delete(_ context.Context, holder, identity string) error {
	delete(t.credentials, core.Credential{Holder: holder, Identity: identity})
	return nil
}

func (t credentialTable) Has(_ context.Context, holder, identity string) (bool, error) {
	return t.credentials[core.Credential{Holder: holder, Identity: identity}], nil
}

type recorder struct {
	events []*core.Event
}

func (r *recorder) Notify(_ context.Context, events ...*core.Event) {
	r.events = append(r.events, events...)
}

type payments struct {
	paid bool
}

func (p *payments) HandleTransfer(context.Context, *core.Transfer) error { return nil }

func (p *payments) VerifyPayment(context.Context, *core.Transfer) (bool, error) { return p.paid, nil }

func (p *payments) PaySchemaURL(uint64, string, string, string) (string, error) { return "", nil }

type fixture struct {
	*world
	service  core.VaultService
	clock    *clock.Fixed
	notifier *recorder
	wallet   *payments
}

func setup(t *testing.T, verifyPayments bool, opts ...func(*engine.Params)) *fixture {
	t.Helper()

	w := newWorld()
	f := &fixture{
		world:    w,
		clock:    &clock.Fixed{T: time.Unix(genesis, 0)},
		notifier: &recorder{},
		wallet:   &payments{paid: true},
	}

	params := engine.DefaultParams()
	for _, opt := range opts {
		opt(&params)
	}

	c := custody.New(custody.Config{Operator: "operator", VerifyPayments: verifyPayments}, accountTable{w}, transferTable{w}, f.wallet)
	f.service = New(
		Config{Operator: "operator", Admins: []string{"admin"}},
		w,
		engine.New(params),
		vaultTable{w},
		positionTable{w},
		borrowTable{w},
		eventTable{w},
		c,
		identity.New(credentialTable{w}),
		locker.Local(),
		f.clock,
		f.notifier,
	)

	return f
}

func (f *fixture) initialize(t *testing.T) *core.Vault {
	t.Helper()

	v, err := f.service.Initialize(context.Background(), "owner", &core.InitializeRequest{
		AssetID:       "965e5c6e-434c-3fa9-b780-c50f43cd955c",
		Owner:         "owner",
		Pool:          "pool",
		ReserveFactor: 100_000_000,
	})
	if err != nil {
		t.Fatal(err)
	}

	return v
}
