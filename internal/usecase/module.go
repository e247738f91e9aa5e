package usecase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/domain/repository"
	"github.com/polkiloo/foodorders/internal/metrics"
	"github.com/polkiloo/foodorders/internal/notify"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	newPaymentUseCase,
)

type orderParams struct {
	fx.In

	Orders      repository.OrderRepository
	Broadcaster *broadcast.Broadcaster
	Dispatcher  *notify.Dispatcher
	Config      *config.Config
	Logger      *slog.Logger
	Metrics     *metrics.Metrics `optional:"true"`
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Broadcaster, p.Dispatcher, p.Config.OrdersListLimit, p.Logger, p.Metrics)
}

type paymentParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Config.PaymentsEnabled, p.Config.PaymentsBaseURL, p.Config.WebhookSecrets, p.Logger)
}
