package usecase

import (
	"io"
	"log/slog"
	"testing"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/config"
	"github.com/polkiloo/foodorders/internal/notify"
	"github.com/polkiloo/foodorders/internal/test"
)

func TestModuleConstructors(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	cfg := &config.Config{OrdersListLimit: 10, PaymentsEnabled: true, PaymentsBaseURL: "https://pay.test"}

	orders := newOrderUseCase(orderParams{
		Orders:      test.NewOrderRepositoryStub(),
		Broadcaster: broadcast.New(1, logger, nil),
		Dispatcher:  notify.NewDispatcher(notify.NewNopSender(nil), 1, 1, 0, logger, nil),
		Config:      cfg,
		Logger:      logger,
	})
	if orders.listLimit != 10 {
		t.Fatalf("unexpected list limit %d", orders.listLimit)
	}

	payments := newPaymentUseCase(paymentParams{Config: cfg, Logger: logger})
	if !payments.enabled || payments.baseURL != "https://pay.test" {
		t.Fatalf("unexpected payment use case %+v", payments)
	}
}
