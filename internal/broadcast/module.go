package broadcast

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/metrics"
)

// Module provides the in-process live update broadcaster. Closing it on
// shutdown is owned by the application lifecycle.
var Module = fx.Provide(newBroadcaster)

type broadcasterParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics `optional:"true"`
}

func newBroadcaster(p broadcasterParams) *Broadcaster {
	b := New(p.Config.StreamBuffer, p.Logger, p.Metrics)
	p.Metrics.RegisterSubscribers(b.Subscribers)
	return b
}
