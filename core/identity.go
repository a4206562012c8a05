package core

import (
	"context"
	"time"
)

// Credential links a holder to an identity it currently controls, e.g. an nft
type Credential struct {
	Holder    string    `sql:"size:64;PRIMARY_KEY" json:"holder"`
	Identity  string    `sql:"size:128;PRIMARY_KEY" json:"identity"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// CredentialStore credential store interface
type CredentialStore interface {
	Save(ctx context.Context, credential *Credential) error
	Delete(ctx context.Context, holder, identity string) error
	Has(ctx context.Context, holder, identity string) (bool, error)
}

// OwnershipChecker reports whether holder currently owns identity
type OwnershipChecker interface {
	Owns(ctx context.Context, holder, identity string) (bool, error)
}

// Locker serializes writers per key
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// Clock current time source
type Clock interface {
	Now() time.Time
}
