package credential

import (
	"context"
	"fmt"
	"time"

	"lendvault/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache caches ownership lookups for exp. Deletes evict the pair immediately.
func Cache(store core.CredentialStore, exp time.Duration) core.CredentialStore {
	return &cacheCredentialStore{
		CredentialStore: store,
		cache:           gcache.New(4096).LRU().Expiration(exp).Build(),
		sf:              &singleflight.Group{},
	}
}

type cacheCredentialStore struct {
	core.CredentialStore
	cache gcache.Cache
	sf    *singleflight.Group
}

func (s *cacheCredentialStore) Save(ctx context.Context, credential *core.Credential) error {
	if err := s.CredentialStore.Save(ctx, credential); err != nil {
		return err
	}

	_ = s.cache.Set(s.key(credential.Holder, credential.Identity), true)
	return nil
}

func (s *cacheCredentialStore) Delete(ctx context.Context, holder, identity string) error {
	s.cache.Remove(s.key(holder, identity))
	return s.CredentialStore.Delete(ctx, holder, identity)
}

func (s *cacheCredentialStore) Has(ctx context.Context, holder, identity string) (bool, error) {
	key := s.key(holder, identity)
	if v, err := s.cache.Get(key); err == nil {
		if ok, is := v.(bool); is {
			return ok, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		ok, err := s.CredentialStore.Has(ctx, holder, identity)
		if err != nil {
			return false, err
		}

		_ = s.cache.Set(key, ok)
		return ok, nil
	})
	if err != nil {
		return false, err
	}

	return v.(bool), nil
}

func (s *cacheCredentialStore) key(holder, identity string) string {
	return fmt.Sprintf("credential:%s:%s", holder, identity)
}
