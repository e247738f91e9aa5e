package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/polkiloo/foodorders/internal/broadcast"
	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	testhelpers "github.com/polkiloo/foodorders/internal/test"
	"github.com/polkiloo/foodorders/internal/usecase"
)

type healthStub struct {
	err error
}

func (h healthStub) HealthCheck(context.Context) error { return h.err }

var (
	owner    = usecase.Caller{Identity: "ana@example.com"}
	stranger = usecase.Caller{Identity: "bob@example.com"}
)

func newFacade(health HealthChecker) (*OrdersFacade, *testhelpers.OrderRepositoryStub, *testhelpers.NotifierStub) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	repo := testhelpers.NewOrderRepositoryStub()
	notifier := &testhelpers.NotifierStub{}
	streams := broadcast.New(4, logger, nil)
	orders := usecase.NewOrderUseCase(repo, streams, notifier, 50, logger, nil)
	payments := usecase.NewPaymentUseCase(true, "https://payments.example", nil, logger)
	return NewOrdersFacade(orders, payments, streams, health), repo, notifier
}

func nextEvent(t *testing.T, sub *broadcast.Subscription) model.Event {
	t.Helper()
	select {
	case ev := <-sub.Events():
		return ev
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}
	return model.Event{}
}

func TestOrdersFacadeLifecycle(t *testing.T) {
	facade, _, notifier := newFacade(nil)
	ctx := context.Background()

	order, err := facade.PlaceOrder(ctx, owner, usecase.PlaceOrderInput{
		RestaurantID: 1,
		Items:        []usecase.ItemInput{{Name: "Burger", PriceCents: 900, Qty: 1}},
	})
	if err != nil {
		t.Fatalf("place returned error: %v", err)
	}

	sub, err := facade.Subscribe(ctx, owner, order.ID)
	if err != nil {
		t.Fatalf("subscribe returned error: %v", err)
	}
	defer facade.Unsubscribe(sub)

	if err := facade.SetOrderStatus(ctx, order.ID, model.OrderStatusAccepted); err != nil {
		t.Fatalf("set status returned error: %v", err)
	}
	if ev := nextEvent(t, sub); ev.Status != model.OrderStatusAccepted {
		t.Fatalf("unexpected event %+v", ev)
	}

	cancelled, err := facade.CancelOrder(ctx, owner, order.ID)
	if err != nil || cancelled.Status != model.OrderStatusCancelled {
		t.Fatalf("cancel returned %+v err=%v", cancelled, err)
	}
	if ev := nextEvent(t, sub); ev.Status != model.OrderStatusCancelled {
		t.Fatalf("unexpected event %+v", ev)
	}

	if _, err := facade.PayOrder(ctx, owner, order.ID); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}

	copyOrder, err := facade.Reorder(ctx, owner, order.ID)
	if err != nil || copyOrder.Status != model.OrderStatusNew {
		t.Fatalf("reorder returned %+v err=%v", copyOrder, err)
	}
	paid, err := facade.PayOrder(ctx, owner, copyOrder.ID)
	if err != nil || paid.Status != model.OrderStatusPaid {
		t.Fatalf("pay returned %+v err=%v", paid, err)
	}

	details, err := facade.Order(ctx, owner, copyOrder.ID)
	if err != nil || len(details.Items) != 1 {
		t.Fatalf("order returned %+v err=%v", details, err)
	}

	mine, err := facade.Orders(ctx, owner)
	if err != nil || len(mine) != 2 {
		t.Fatalf("orders returned %d err=%v", len(mine), err)
	}
	recent, err := facade.RecentOrders(ctx)
	if err != nil || len(recent) != 2 {
		t.Fatalf("recent returned %d err=%v", len(recent), err)
	}

	if len(notifier.Sent()) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(notifier.Sent()))
	}
}

func TestOrdersFacadeSubscribeChecksAccess(t *testing.T) {
	facade, repo, _ := newFacade(nil)
	repo.Seed(model.Order{ID: 1, Owner: owner.Identity, Status: model.OrderStatusNew})

	if _, err := facade.Subscribe(context.Background(), stranger, 1); !errors.Is(err, domainErrors.ErrForbidden) {
		t.Fatalf("expected forbidden, got %v", err)
	}
	if _, err := facade.Subscribe(context.Background(), owner, 2); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if facade.streams.Subscribers() != 0 {
		t.Fatal("rejected subscriptions must not register")
	}
}

func TestOrdersFacadePayments(t *testing.T) {
	facade, _, _ := newFacade(nil)

	redirect, err := facade.InitiatePayment(context.Background(), "paypal", 9)
	if err != nil {
		t.Fatalf("initiate returned error: %v", err)
	}
	if redirect.RedirectURL != "https://payments.example/paypal/checkout?order=9" {
		t.Fatalf("unexpected redirect %q", redirect.RedirectURL)
	}
	if err := facade.PaymentWebhook(context.Background(), "stripe", []byte(`{}`), ""); err != nil {
		t.Fatalf("webhook returned error: %v", err)
	}
}

func TestOrdersFacadeHealth(t *testing.T) {
	facade, _, _ := newFacade(nil)
	if err := facade.Health(context.Background()); err != nil {
		t.Fatalf("nil checker should be healthy: %v", err)
	}

	facade, _, _ = newFacade(healthStub{err: errors.New("db down")})
	if err := facade.Health(context.Background()); err == nil {
		t.Fatal("expected health error")
	}
}
