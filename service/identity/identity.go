package identity

import (
	"context"

	"lendvault/core"
)

// New ownership checker. A holder owns its own wallet identity and any
// identity a credential links it to.
func New(credentials core.CredentialStore) core.OwnershipChecker {
	return &ownershipChecker{credentials: credentials}
}

type ownershipChecker struct {
	credentials core.CredentialStore
}

func (c *ownershipChecker) Owns(ctx context.Context, holder, identity string) (bool, error) {
	if holder == "" || identity == "" {
		return false, nil
	}

	if holder == identity {
		return true, nil
	}

	return c.credentials.Has(ctx, holder, identity)
}

// Seed saves static credentials
func Seed(ctx context.Context, credentials core.CredentialStore, grants []core.Credential) error {
	for idx := range grants {
		if err := credentials.Save(ctx, &grants[idx]); err != nil {
			return err
		}
	}

	return nil
}
