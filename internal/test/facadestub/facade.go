// Package facadestub provides a configurable double of the HTTP facade.
package facadestub

import (
	"context"
	"time"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/usecase"
)

// OrdersFacadeStub implements the HTTP facade with overridable behaviour.
// Unset functions return canned successful results.
type OrdersFacadeStub struct {
	PlaceFn     func(context.Context, usecase.Caller, usecase.PlaceOrderInput) (*model.Order, error)
	OrdersFn    func(context.Context, usecase.Caller) ([]model.Order, error)
	OrderFn     func(context.Context, usecase.Caller, int64) (*model.OrderDetails, error)
	ReorderFn   func(context.Context, usecase.Caller, int64) (*model.Order, error)
	CancelFn    func(context.Context, usecase.Caller, int64) (*model.Order, error)
	PayFn       func(context.Context, usecase.Caller, int64) (*model.Order, error)
	RecentFn    func(context.Context) ([]model.Order, error)
	SetStatusFn func(context.Context, int64, model.OrderStatus) error
	SubscribeFn func(context.Context, usecase.Caller, int64) (*broadcast.Subscription, error)
	InitiateFn  func(context.Context, model.PaymentProvider, int64) (*model.PaymentRedirect, error)
	WebhookFn   func(context.Context, model.PaymentProvider, []byte, string) error
	HealthFn    func(context.Context) error

	// Streams backs Subscribe and Unsubscribe when SubscribeFn is nil.
	Streams *broadcast.Broadcaster
}

func sampleOrder(id int64, status model.OrderStatus) *model.Order {
	return &model.Order{
		ID:           id,
		RestaurantID: 1,
		Owner:        "ana@example.com",
		Status:       status,
		TotalCents:   3000,
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func (s OrdersFacadeStub) PlaceOrder(ctx context.Context, caller usecase.Caller, in usecase.PlaceOrderInput) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, caller, in)
	}
	return sampleOrder(1, model.OrderStatusNew), nil
}

func (s OrdersFacadeStub) Orders(ctx context.Context, caller usecase.Caller) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, caller)
	}
	return []model.Order{*sampleOrder(1, model.OrderStatusNew)}, nil
}

func (s OrdersFacadeStub) Order(ctx context.Context, caller usecase.Caller, id int64) (*model.OrderDetails, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, caller, id)
	}
	return &model.OrderDetails{
		Order: *sampleOrder(id, model.OrderStatusNew),
		Items: []model.LineItem{{ID: 1, OrderID: id, Name: "Pizza", PriceCents: 1500, Qty: 2}},
	}, nil
}

func (s OrdersFacadeStub) Reorder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	if s.ReorderFn != nil {
		return s.ReorderFn(ctx, caller, id)
	}
	return sampleOrder(id+1, model.OrderStatusNew), nil
}

func (s OrdersFacadeStub) CancelOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	if s.CancelFn != nil {
		return s.CancelFn(ctx, caller, id)
	}
	return sampleOrder(id, model.OrderStatusCancelled), nil
}

func (s OrdersFacadeStub) PayOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error) {
	if s.PayFn != nil {
		return s.PayFn(ctx, caller, id)
	}
	return sampleOrder(id, model.OrderStatusPaid), nil
}

func (s OrdersFacadeStub) RecentOrders(ctx context.Context) ([]model.Order, error) {
	if s.RecentFn != nil {
		return s.RecentFn(ctx)
	}
	return []model.Order{*sampleOrder(2, model.OrderStatusNew), *sampleOrder(1, model.OrderStatusPaid)}, nil
}

func (s OrdersFacadeStub) SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if s.SetStatusFn != nil {
		return s.SetStatusFn(ctx, id, status)
	}
	return nil
}

func (s OrdersFacadeStub) Subscribe(ctx context.Context, caller usecase.Caller, id int64) (*broadcast.Subscription, error) {
	if s.SubscribeFn != nil {
		return s.SubscribeFn(ctx, caller, id)
	}
	if s.Streams == nil {
		return broadcast.New(0, nil, nil).Subscribe(id), nil
	}
	return s.Streams.Subscribe(id), nil
}

func (s OrdersFacadeStub) Unsubscribe(sub *broadcast.Subscription) {
	if s.Streams != nil {
		s.Streams.Unsubscribe(sub)
	}
}

func (s OrdersFacadeStub) InitiatePayment(ctx context.Context, provider model.PaymentProvider, orderID int64) (*model.PaymentRedirect, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, provider, orderID)
	}
	return &model.PaymentRedirect{Provider: provider, OrderID: orderID, RedirectURL: "https://pay.example.com/" + string(provider)}, nil
}

func (s OrdersFacadeStub) PaymentWebhook(ctx context.Context, provider model.PaymentProvider, payload []byte, signature string) error {
	if s.WebhookFn != nil {
		return s.WebhookFn(ctx, provider, payload, signature)
	}
	return nil
}

func (s OrdersFacadeStub) Health(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
