package locker

import (
	"context"
	"fmt"
	"time"

	"lendvault/core"
	"lendvault/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
)

// deletes the key only while it still holds the caller's token
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

const (
	defaultTTL   = 30 * time.Second
	retryBackoff = 50 * time.Millisecond
)

type redisLocker struct {
	Redis *redis.Client
	ttl   time.Duration
}

// Redis locker shared by every server and worker process on the same redis
func Redis(client *redis.Client, ttl time.Duration) core.Locker {
	if ttl <= 0 {
		ttl = defaultTTL
	}

	return &redisLocker{
		Redis: client,
		ttl:   ttl,
	}
}

func (l *redisLocker) Lock(ctx context.Context, key string) (func(), error) {
	k := l.lockKey(key)
	token := id.GenUUIDString()

	for {
		ok, err := l.Redis.SetNX(k, token, l.ttl).Result()
		if err != nil {
			return nil, err
		}

		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryBackoff):
		}
	}

	return func() {
		if err := unlockScript.Run(l.Redis, []string{k}, token).Err(); err != nil && err != redis.Nil {
			logger.FromContext(ctx).WithError(err).WithField("key", k).Errorln("unlock")
		}
	}, nil
}

func (l *redisLocker) lockKey(key string) string {
	return fmt.Sprintf("lendvault:lock:%s", key)
}
