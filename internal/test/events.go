package test

import (
	"sync"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

// PublishedEvent is one recorded Publish call.
type PublishedEvent struct {
	OrderID int64
	Event   model.Event
}

// PublisherStub records live events.
type PublisherStub struct {
	mu     sync.Mutex
	events []PublishedEvent
}

// Publish records the event.
func (p *PublisherStub) Publish(orderID int64, event model.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, PublishedEvent{OrderID: orderID, Event: event})
}

// Events returns a copy of recorded events.
func (p *PublisherStub) Events() []PublishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]PublishedEvent, len(p.events))
	copy(out, p.events)
	return out
}

// NotifierStub records dispatched notifications. Full makes Dispatch report a drop.
type NotifierStub struct {
	mu   sync.Mutex
	sent []model.Notification
	Full bool
}

// Dispatch records n unless the stub is full.
func (n *NotifierStub) Dispatch(notification model.Notification) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.Full {
		return false
	}
	n.sent = append(n.sent, notification)
	return true
}

// Sent returns a copy of recorded notifications.
func (n *NotifierStub) Sent() []model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Notification, len(n.sent))
	copy(out, n.sent)
	return out
}
