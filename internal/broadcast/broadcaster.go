package broadcast

import (
	"log/slog"
	"sync"

	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/metrics"
)

const defaultBuffer = 16

// Subscription is a single live stream attached to one order.
type Subscription struct {
	orderID int64
	events  chan model.Event
	closed  bool
}

// Events yields published events until the subscription is removed.
func (s *Subscription) Events() <-chan model.Event {
	return s.events
}

// OrderID returns the order the subscription is attached to.
func (s *Subscription) OrderID() int64 {
	return s.orderID
}

// Broadcaster fans out order events to live subscribers of this process.
// Publishing never blocks: an event that does not fit a subscriber's buffer
// is dropped for that subscriber.
type Broadcaster struct {
	mu      sync.RWMutex
	subs    map[int64]map[*Subscription]struct{}
	buffer  int
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// New creates a broadcaster whose subscriptions buffer up to buffer events.
func New(buffer int, logger *slog.Logger, m *metrics.Metrics) *Broadcaster {
	if buffer <= 0 {
		buffer = defaultBuffer
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Broadcaster{
		subs:    make(map[int64]map[*Subscription]struct{}),
		buffer:  buffer,
		logger:  logger,
		metrics: m,
	}
}

// Subscribe registers a new stream for orderID.
func (b *Broadcaster) Subscribe(orderID int64) *Subscription {
	sub := &Subscription{orderID: orderID, events: make(chan model.Event, b.buffer)}

	b.mu.Lock()
	defer b.mu.Unlock()

	set, ok := b.subs[orderID]
	if !ok {
		set = make(map[*Subscription]struct{})
		b.subs[orderID] = set
	}
	set[sub] = struct{}{}
	return sub
}

// Unsubscribe removes sub and closes its channel. The order's entry is
// dropped once its last subscriber leaves. Calling it twice is a no-op.
func (b *Broadcaster) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if sub.closed {
		return
	}
	if set, ok := b.subs[sub.orderID]; ok {
		delete(set, sub)
		if len(set) == 0 {
			delete(b.subs, sub.orderID)
		}
	}
	sub.closed = true
	close(sub.events)
}

// Publish delivers event to every current subscriber of orderID.
func (b *Broadcaster) Publish(orderID int64, event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.subs[orderID] {
		select {
		case sub.events <- event:
		default:
			b.metrics.EventDropped()
			b.logger.Warn("dropping event for slow subscriber",
				slog.Int64("order_id", orderID),
				slog.String("type", string(event.Type)))
		}
	}
}

// Subscribers returns the number of active subscriptions across all orders.
func (b *Broadcaster) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	total := 0
	for _, set := range b.subs {
		total += len(set)
	}
	return total
}

// Close ends every active subscription.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for orderID, set := range b.subs {
		for sub := range set {
			sub.closed = true
			close(sub.events)
		}
		delete(b.subs, orderID)
	}
}
