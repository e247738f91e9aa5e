package handlers

import (
	"context"

	"github.com/polkiloo/foodorders/internal/broadcast"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/usecase"
)

// OrderFacade encapsulates customer order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, caller usecase.Caller, in usecase.PlaceOrderInput) (*model.Order, error)
	Orders(ctx context.Context, caller usecase.Caller) ([]model.Order, error)
	Order(ctx context.Context, caller usecase.Caller, id int64) (*model.OrderDetails, error)
	Reorder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error)
	CancelOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error)
	PayOrder(ctx context.Context, caller usecase.Caller, id int64) (*model.Order, error)
}

// PartnerFacade covers restaurant partner operations.
type PartnerFacade interface {
	RecentOrders(ctx context.Context) ([]model.Order, error)
	SetOrderStatus(ctx context.Context, id int64, status model.OrderStatus) error
}

// StreamFacade attaches callers to live order updates.
type StreamFacade interface {
	Subscribe(ctx context.Context, caller usecase.Caller, id int64) (*broadcast.Subscription, error)
	Unsubscribe(sub *broadcast.Subscription)
}

// PaymentFacade provides payment initiation and provider callbacks.
type PaymentFacade interface {
	InitiatePayment(ctx context.Context, provider model.PaymentProvider, orderID int64) (*model.PaymentRedirect, error)
	PaymentWebhook(ctx context.Context, provider model.PaymentProvider, payload []byte, signature string) error
}

// HealthFacade reports service readiness.
type HealthFacade interface {
	Health(ctx context.Context) error
}

// OrdersFacade aggregates the full set of operations used across handlers.
type OrdersFacade interface {
	OrderFacade
	PartnerFacade
	StreamFacade
	PaymentFacade
	HealthFacade
}
