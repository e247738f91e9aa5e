package model

// EventType names the kind of live order update.
type EventType string

const (
	EventCreated EventType = "created"
	EventStatus  EventType = "status"
)

// Event is a live update pushed to order subscribers.
type Event struct {
	Type   EventType
	Order  *Order
	Status OrderStatus
}

// CreatedEvent announces a freshly persisted order.
func CreatedEvent(order Order) Event {
	return Event{Type: EventCreated, Order: &order}
}

// StatusEvent announces a status change.
func StatusEvent(status OrderStatus) Event {
	return Event{Type: EventStatus, Status: status}
}
