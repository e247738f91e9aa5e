package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

// Sender delivers one notification to the notifications backend.
type Sender interface {
	Send(ctx context.Context, n model.Notification) error
}

// RateLimitedError is returned when the backend asks the caller to slow down.
type RateLimitedError struct {
	RetryAfter time.Duration
}

func (e RateLimitedError) Error() string {
	return fmt.Sprintf("notifications rate limited, retry after %s", e.RetryAfter)
}

// NopSender discards notifications.
type NopSender struct {
	logger *slog.Logger
}

// NewNopSender returns a sender used when notifications are disabled.
func NewNopSender(logger *slog.Logger) *NopSender {
	return &NopSender{logger: logger}
}

func (s *NopSender) Send(_ context.Context, n model.Notification) error {
	if s.logger != nil {
		s.logger.Debug("notification discarded", slog.Int64("order_id", n.OrderID), slog.String("title", n.Title))
	}
	return nil
}

// payload is the wire shape shared by every sender.
type payload struct {
	OrderID int64  `json:"order_id,omitempty"`
	Title   string `json:"title"`
	Body    string `json:"body"`
}

func newPayload(n model.Notification) payload {
	return payload{OrderID: n.OrderID, Title: n.Title, Body: n.Body}
}
