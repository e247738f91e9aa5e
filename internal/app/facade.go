package app

import (
	"context"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/usecase"
)

// HealthChecker reports backing store availability.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

// OrdersFacade is the single entry point the transport layer talks to.
type OrdersFacade struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	streams  *broadcast.Broadcaster
	health   HealthChecker
}

func NewOrdersFacade(orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, streams *broadcast.Broadcaster, health HealthChecker) *OrdersFacade {
	return &OrdersFacade{orders: orders, payments: payments, streams: streams, health: health}
}

func (f *OrdersFacade) PlaceOrder(ctx context.Context, caller usecase.Caller, in usecase.PlaceOrderInput) (*model.Order, error) {
	return f.orders.Place(ctx, caller, in)
}

func (f *OrdersFacade) Orders(ctx context.Context, caller usecase.Caller) ([]model.Order, error) {
	return f.orders.List(ctx, caller)
}

func (f *OrdersFacade) Order(ctx context.Context, caller usecase.Caller, id int64) (*model.OrderDetails, error) {
	return f.orders.Get(ctx, caller, id)
}

func (f *OrdersFacade) Reorder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	return f.orders.Reorder(ctx, caller, id)
}

func (f *OrdersFacade) CancelOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	return f.orders.Cancel(ctx, caller, id)
}

func (f *OrdersFacade) PayOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	return f.orders.Pay(ctx, caller, id)
}

func (f *OrdersFacade) RecentOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListRecent(ctx)
}

func (f *OrdersFacade) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	return f.orders.SetStatus(ctx, id, status)
}

// Subscribe attaches a live stream to the order after an access check.
// The caller must release it with Unsubscribe.
func (f *OrdersFacade) Subscribe(ctx context.Context, caller usecase.Caller, id int64) (*broadcast.Subscription, error) {
	if err := f.orders.Authorize(ctx, caller, id); err != nil {
		return nil, err
	}
	return f.streams.Subscribe(id), nil
}

func (f *OrdersFacade) Unsubscribe(sub *broadcast.Subscription) {
	f.streams.Unsubscribe(sub)
}

func (f *OrdersFacade) InitiatePayment(_ context.Context, provider model.PaymentProvider, orderID int64) (*model.PaymentRedirect, error) {
	return f.payments.Initiate(provider, orderID)
}

func (f *OrdersFacade) PaymentWebhook(_ context.Context, provider model.PaymentProvider, payload []byte, signature string) error {
	return f.payments.Webhook(provider, payload, signature)
}

func (f *OrdersFacade) Health(ctx context.Context) error {
	if f.health == nil {
		return nil
	}
	return f.health.HealthCheck(ctx)
}
