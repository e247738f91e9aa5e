package dto

import "time"

// OrderItemRequest is one requested line item.
type OrderItemRequest struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Qty        int    `json:"qty"`
}

// PlaceOrderRequest describes POST /orders payload.
type PlaceOrderRequest struct {
	RestaurantID int64              `json:"restaurant_id"`
	Items        []OrderItemRequest `json:"items"`
}

// OrderResponse is the order header row.
type OrderResponse struct {
	ID           int64     `json:"id"`
	RestaurantID int64     `json:"restaurant_id"`
	UserEmail    *string   `json:"user_email"`
	Status       string    `json:"status"`
	TotalCents   int64     `json:"total_cents"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderItemResponse is a stored line item.
type OrderItemResponse struct {
	ID         int64  `json:"id"`
	OrderID    int64  `json:"order_id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Qty        int    `json:"qty"`
}

// OrderDetailsResponse is an order with its items inlined.
type OrderDetailsResponse struct {
	OrderResponse
	Items []OrderItemResponse `json:"items"`
}

// StatusRequest describes partner status update payload.
type StatusRequest struct {
	Status string `json:"status"`
}

// StatusResponse acknowledges a partner status update.
type StatusResponse struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// EventResponse is one live update frame.
type EventResponse struct {
	Type   string         `json:"type"`
	Order  *OrderResponse `json:"order,omitempty"`
	Status string         `json:"status,omitempty"`
}
