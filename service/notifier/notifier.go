package notifier

import (
	"context"

	"lendvault/core"

	"github.com/fox-one/pkg/logger"
	"github.com/sirupsen/logrus"
	"github.com/yiplee/structs"
)

// New logrus notifier writing one line per vault event
func New() core.Notifier {
	return &logNotifier{}
}

type logNotifier struct{}

func (n *logNotifier) Notify(ctx context.Context, events ...*core.Event) {
	log := logger.FromContext(ctx).WithField("notifier", "vault")
	for _, event := range events {
		st := structs.New(event)
		st.TagName = "json"
		fields := logrus.Fields(st.Map())
		delete(fields, "created_at")
		log.WithFields(fields).Infoln(event.Action)
	}
}

// Multi notifies every notifier in order
func Multi(notifiers ...core.Notifier) core.Notifier {
	return multiNotifier(notifiers)
}

type multiNotifier []core.Notifier

func (m multiNotifier) Notify(ctx context.Context, events ...*core.Event) {
	for _, n := range m {
		n.Notify(ctx, events...)
	}
}
