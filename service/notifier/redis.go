package notifier

import (
	"context"
	"encoding/json"

	"lendvault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/go-redis/redis"
)

// Channel redis channel vault events are published on
const Channel = "lendvault:events"

// Publisher redis client subset publishing messages
type Publisher interface {
	Publish(channel string, message interface{}) *redis.IntCmd
}

// Redis publishes every vault event as a json message on Channel
func Redis(client Publisher) core.Notifier {
	return &redisNotifier{client: client}
}

type redisNotifier struct {
	client Publisher
}

func (n *redisNotifier) Notify(ctx context.Context, events ...*core.Event) {
	log := logger.FromContext(ctx).WithField("notifier", "redis")
	for _, event := range events {
		data, err := json.Marshal(event)
		if err != nil {
			log.WithError(err).Errorln("marshal event")
			continue
		}

		if err := n.client.Publish(Channel, data).Err(); err != nil {
			log.WithError(err).WithField("action", event.Action).Errorln("publish event")
		}
	}
}
