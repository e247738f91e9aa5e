package repository

import (
	"context"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

// TransitionFunc computes the next status from the locked current order.
type TransitionFunc func(current model.Order) (model.OrderStatus, error)

// OrderRepository describes persistence operations with orders and their items.
type OrderRepository interface {
	Create(ctx context.Context, restaurantID int64, owner string, items []model.LineItem) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	ListByOwner(ctx context.Context, owner string, limit int) ([]model.Order, error)
	ListRecent(ctx context.Context, limit int) ([]model.Order, error)
	ListItems(ctx context.Context, orderID int64) ([]model.LineItem, error)
	UpdateStatus(ctx context.Context, id int64, status model.OrderStatus) error
	Transition(ctx context.Context, id int64, fn TransitionFunc) (*model.Order, error)
	Duplicate(ctx context.Context, sourceID int64, owner string) (*model.Order, error)
}
