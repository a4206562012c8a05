package notifier

import (
	"context"
	"errors"
	"testing"

	"lendvault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	n int
}

func (c *counter) Notify(_ context.Context, events ...*core.Event) {
	c.n += len(events)
}

func TestNotify(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx := logger.WithContext(context.Background(), logrus.NewEntry(log))

	c := &counter{}
	n := Multi(New(), c)
	n.Notify(ctx,
		&core.Event{VaultID: 1, Action: core.EventActionDeposit, Identity: "alice", Amount: 1000, Shares: 1000},
		&core.Event{VaultID: 1, Action: core.EventActionAccrue, Amount: 20},
	)

	assert.Equal(t, 2, c.n)
	require.Len(t, hook.AllEntries(), 2)

	entry := hook.AllEntries()[0]
	assert.Equal(t, "deposit", entry.Message)
	assert.Equal(t, "alice", entry.Data["identity"])
	assert.Equal(t, "vault", entry.Data["notifier"])
}

type publisher struct {
	fail     bool
	messages []string
}

func (p *publisher) Publish(channel string, message interface{}) *redis.IntCmd {
	if p.fail {
		return redis.NewIntResult(0, errors.New("connection refused"))
	}

	p.messages = append(p.messages, channel+" "+string(message.([]byte)))
	return redis.NewIntResult(1, nil)
}

func TestRedisNotify(t *testing.T) {
	log, hook := test.NewNullLogger()
	ctx := logger.WithContext(context.Background(), logrus.NewEntry(log))

	p := &publisher{}
	c := &counter{}
	n := Multi(Redis(p), c)
	n.Notify(ctx, &core.Event{VaultID: 1, Action: core.EventActionBorrow, Identity: "pool", Amount: 400})

	require.Len(t, p.messages, 1)
	assert.Contains(t, p.messages[0], Channel+" {")
	assert.Contains(t, p.messages[0], `"identity":"pool"`)
	assert.Equal(t, 1, c.n)
	assert.Empty(t, hook.AllEntries())

	// failures are logged, the next notifier still runs
	p.fail = true
	n.Notify(ctx, &core.Event{VaultID: 1, Action: core.EventActionRepay})
	assert.Equal(t, 2, c.n)
	require.Len(t, hook.AllEntries(), 1)
	assert.Equal(t, "publish event", hook.LastEntry().Message)
}
