package usecase

import (
	"context"
	"log/slog"
	"math"
	"strings"

	domainErrors "github.com/polkiloo/foodorders/internal/domain/errors"
	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/domain/repository"
	"github.com/polkiloo/foodorders/internal/metrics"
)

const (
	defaultListLimit = 50
	// maxItemQty matches the INTEGER order_items.qty column.
	maxItemQty = math.MaxInt32
)

// Publisher fans out live order events.
type Publisher interface {
	Publish(orderID int64, event model.Event)
}

// Notifier hands notifications off for background delivery.
type Notifier interface {
	Dispatch(n model.Notification) bool
}

// Caller identifies who performs an operation.
type Caller struct {
	Identity string
	Partner  bool
}

func (c Caller) canAccess(order model.Order) bool {
	return c.Partner || order.AccessibleBy(c.Identity)
}

// ItemInput is a requested line item before validation.
type ItemInput struct {
	Name       string
	PriceCents int64
	Qty        int
}

// PlaceOrderInput is the payload for placing an order.
type PlaceOrderInput struct {
	RestaurantID int64
	Items        []ItemInput
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders    repository.OrderRepository
	events    Publisher
	notifier  Notifier
	metrics   *metrics.Metrics
	logger    *slog.Logger
	listLimit int
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, events Publisher, notifier Notifier, listLimit int, logger *slog.Logger, m *metrics.Metrics) *OrderUseCase {
	if listLimit <= 0 {
		listLimit = defaultListLimit
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &OrderUseCase{
		orders:    orders,
		events:    events,
		notifier:  notifier,
		metrics:   m,
		logger:    logger,
		listLimit: listLimit,
	}
}

// Place validates the payload and stores a NEW order with its items.
func (u *OrderUseCase) Place(ctx context.Context, caller Caller, in PlaceOrderInput) (*model.Order, error) {
	items, err := validatePlaceOrder(in)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.Create(ctx, in.RestaurantID, caller.Identity, items)
	if err != nil {
		return nil, err
	}

	u.metrics.OrderPlaced()
	u.publish(order.ID, model.CreatedEvent(*order))
	return order, nil
}

func validatePlaceOrder(in PlaceOrderInput) ([]model.LineItem, error) {
	if in.RestaurantID <= 0 || len(in.Items) == 0 {
		return nil, domainErrors.ErrInvalidPayload
	}

	items := make([]model.LineItem, 0, len(in.Items))
	var total int64
	for _, it := range in.Items {
		name := strings.TrimSpace(it.Name)
		if name == "" || it.PriceCents < 0 || it.Qty < 0 || it.Qty > maxItemQty {
			return nil, domainErrors.ErrInvalidPayload
		}
		qty := it.Qty
		if qty == 0 {
			qty = 1
		}
		// The stored total must equal the exact sum of subtotals.
		if it.PriceCents > math.MaxInt64/int64(qty) {
			return nil, domainErrors.ErrInvalidPayload
		}
		subtotal := it.PriceCents * int64(qty)
		if subtotal > math.MaxInt64-total {
			return nil, domainErrors.ErrInvalidPayload
		}
		total += subtotal
		items = append(items, model.LineItem{Name: name, PriceCents: it.PriceCents, Qty: qty})
	}
	return items, nil
}

// List returns the caller's most recent orders, newest first.
func (u *OrderUseCase) List(ctx context.Context, caller Caller) ([]model.Order, error) {
	return u.orders.ListByOwner(ctx, caller.Identity, u.listLimit)
}

// ListRecent returns the most recent orders across all owners.
func (u *OrderUseCase) ListRecent(ctx context.Context) ([]model.Order, error) {
	return u.orders.ListRecent(ctx, u.listLimit)
}

// Get returns the order with its line items.
func (u *OrderUseCase) Get(ctx context.Context, caller Caller, id int64) (*model.OrderDetails, error) {
	order, err := u.authorize(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	items, err := u.orders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.OrderDetails{Order: *order, Items: items}, nil
}

// Authorize loads the order and verifies the caller may access it.
func (u *OrderUseCase) Authorize(ctx context.Context, caller Caller, id int64) error {
	_, err := u.authorize(ctx, caller, id)
	return err
}

func (u *OrderUseCase) authorize(ctx context.Context, caller Caller, id int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !caller.canAccess(*order) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// Reorder copies the source order's items into a fresh NEW order owned by the caller.
func (u *OrderUseCase) Reorder(ctx context.Context, caller Caller, sourceID int64) (*model.Order, error) {
	if _, err := u.authorize(ctx, caller, sourceID); err != nil {
		return nil, err
	}

	order, err := u.orders.Duplicate(ctx, sourceID, caller.Identity)
	if err != nil {
		return nil, err
	}

	u.metrics.OrderPlaced()
	u.publish(order.ID, model.CreatedEvent(*order))
	return order, nil
}

// Cancel moves a NEW or ACCEPTED order to CANCELLED.
func (u *OrderUseCase) Cancel(ctx context.Context, caller Caller, id int64) (*model.Order, error) {
	order, err := u.orders.Transition(ctx, id, func(current model.Order) (model.OrderStatus, error) {
		if !caller.canAccess(current) {
			return current.Status, domainErrors.ErrForbidden
		}
		return current.Status.Cancel()
	})
	if err != nil {
		return nil, err
	}

	u.afterStatusChange(order.ID, order.Status, "customer", model.CancelledNotification(order.ID))
	return order, nil
}

// Pay marks a NEW order as PAID. No money moves here.
func (u *OrderUseCase) Pay(ctx context.Context, caller Caller, id int64) (*model.Order, error) {
	order, err := u.orders.Transition(ctx, id, func(current model.Order) (model.OrderStatus, error) {
		if !caller.canAccess(current) {
			return current.Status, domainErrors.ErrForbidden
		}
		return current.Status.Pay()
	})
	if err != nil {
		return nil, err
	}

	u.afterStatusChange(order.ID, order.Status, "customer", model.PaidNotification(order.ID))
	return order, nil
}

// SetStatus applies a partner status override. Any known status is accepted
// regardless of the current one.
func (u *OrderUseCase) SetStatus(ctx context.Context, id int64, status model.OrderStatus) error {
	if !status.Valid() {
		return domainErrors.ErrInvalidStatus
	}
	if err := u.orders.UpdateStatus(ctx, id, status); err != nil {
		return err
	}

	u.afterStatusChange(id, status, "partner", model.StatusNotification(id, status))
	return nil
}

func (u *OrderUseCase) afterStatusChange(id int64, status model.OrderStatus, source string, n model.Notification) {
	u.metrics.StatusChanged(string(status), source)
	u.publish(id, model.StatusEvent(status))
	if u.notifier != nil && !u.notifier.Dispatch(n) {
		u.logger.Warn("notification not queued", slog.Int64("order_id", id))
	}
}

func (u *OrderUseCase) publish(id int64, event model.Event) {
	if u.events != nil {
		u.events.Publish(id, event)
	}
}
