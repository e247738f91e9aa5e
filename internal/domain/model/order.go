package model

import "time"

// OrderStatus describes the order lifecycle.
type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "NEW"
	OrderStatusAccepted  OrderStatus = "ACCEPTED"
	OrderStatusPreparing OrderStatus = "PREPARING"
	OrderStatusReady     OrderStatus = "READY"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Order is a purchase from a single restaurant.
type Order struct {
	ID           int64
	RestaurantID int64
	Owner        string
	Status       OrderStatus
	TotalCents   int64
	CreatedAt    time.Time
}

// LineItem is one immutable purchased entry of an order.
type LineItem struct {
	ID         int64
	OrderID    int64
	Name       string
	PriceCents int64
	Qty        int
}

// OrderDetails combines an order with its line items.
type OrderDetails struct {
	Order
	Items []LineItem
}

// Subtotal returns price × quantity for the item.
func (i LineItem) Subtotal() int64 {
	return i.PriceCents * int64(i.Qty)
}

// TotalCents sums subtotals of all items.
func TotalCents(items []LineItem) int64 {
	var total int64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

// AccessibleBy reports whether identity may read or mutate the order.
// Orders placed without a recorded owner are visible to every caller.
func (o Order) AccessibleBy(identity string) bool {
	return o.Owner == "" || o.Owner == identity
}
