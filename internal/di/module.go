package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/app"
	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/logger"
	"github.com/polkiloo/foodorders/internal/metrics"
	"github.com/polkiloo/foodorders/internal/notify"
	"github.com/polkiloo/foodorders/internal/pkg/auth"
	"github.com/polkiloo/foodorders/internal/server/http/handlers"
	"github.com/polkiloo/foodorders/internal/server/http/router"
	"github.com/polkiloo/foodorders/internal/storage/postgres"
	"github.com/polkiloo/foodorders/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		auth.Module,
		postgres.Module,
		broadcast.Module,
		notify.Module,
		usecase.Module,
		fx.Provide(func(f *app.OrdersFacade) handlers.OrdersFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
