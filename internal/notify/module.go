package notify

import (
	"context"
	"fmt"
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/metrics"
)

// Module provides the configured notification sender and dispatcher.
var Module = fx.Options(
	fx.Provide(newSender, newDispatcher),
)

type senderParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    *config.Config
	Logger    *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	switch p.Config.Notifier {
	case config.NotifierNone:
		return NewNopSender(p.Logger), nil
	case config.NotifierAMQP:
		sender, err := NewAMQPSender(p.Config.AMQPURL, p.Logger)
		if err != nil {
			return nil, err
		}
		p.Lifecycle.Append(fx.Hook{
			OnStop: func(context.Context) error { return sender.Close() },
		})
		return sender, nil
	case config.NotifierHTTP, "":
		return NewHTTPSender(p.Config.NotificationsBase, p.Logger)
	default:
		return nil, fmt.Errorf("unknown notifier %q", p.Config.Notifier)
	}
}

type dispatcherParams struct {
	fx.In

	Sender  Sender
	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newDispatcher(p dispatcherParams) *Dispatcher {
	return NewDispatcher(p.Sender, p.Config.NotifyWorkers, p.Config.NotifyQueueSize, p.Config.NotifyRate, p.Logger, p.Metrics)
}
