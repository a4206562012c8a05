package locker

import (
	"context"
	"sync"

	"lendvault/core"
)

// Local in-process locker, for single node deployments without redis
func Local() core.Locker {
	return &localLocker{keys: map[string]chan struct{}{}}
}

type localLocker struct {
	mux  sync.Mutex
	keys map[string]chan struct{}
}

func (l *localLocker) slot(key string) chan struct{} {
	l.mux.Lock()
	defer l.mux.Unlock()

	ch, ok := l.keys[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.keys[key] = ch
	}

	return ch
}

func (l *localLocker) Lock(ctx context.Context, key string) (func(), error) {
	ch := l.slot(key)

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() { <-ch })
	}, nil
}
