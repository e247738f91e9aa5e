package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/polkiloo/foodorders/internal/domain/model"
	"github.com/polkiloo/foodorders/internal/metrics"
)

const sendTimeout = 10 * time.Second

// Dispatcher delivers notifications in the background. Enqueueing never
// blocks the caller and delivery failures never surface to it.
type Dispatcher struct {
	sender  Sender
	limiter *rate.Limiter
	workers int
	logger  *slog.Logger
	metrics *metrics.Metrics

	jobs   chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewDispatcher constructs a notification worker pool. A non-positive
// ratePerSecond disables rate limiting.
func NewDispatcher(sender Sender, workers, queueSize int, ratePerSecond float64, logger *slog.Logger, m *metrics.Metrics) *Dispatcher {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	limit := rate.Inf
	if ratePerSecond > 0 {
		limit = rate.Limit(ratePerSecond)
	}
	return &Dispatcher{
		sender:  sender,
		limiter: rate.NewLimiter(limit, workers),
		workers: workers,
		logger:  logger,
		metrics: m,
		jobs:    make(chan model.Notification, queueSize),
	}
}

// Dispatch queues n for delivery. It reports false when the queue is full and
// the notification was dropped.
func (d *Dispatcher) Dispatch(n model.Notification) bool {
	select {
	case d.jobs <- n:
		return true
	default:
		d.metrics.Notification("dropped")
		d.logger.Warn("notification queue full, dropping", slog.Int64("order_id", n.OrderID), slog.String("title", n.Title))
		return false
	}
}

// Start launches background delivery.
func (d *Dispatcher) Start(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.cancel != nil {
		return
	}
	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	d.cancel = cancel

	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go d.worker(runCtx)
	}
}

// Stop cancels in-flight deliveries and waits for all workers to finish.
// Notifications still queued are discarded.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.mu.Unlock()

	d.wg.Wait()

	if pending := len(d.jobs); pending > 0 {
		d.logger.Warn("discarding queued notifications", slog.Int("count", pending))
	}
}

func (d *Dispatcher) worker(ctx context.Context) {
	defer d.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case n := <-d.jobs:
			d.deliver(ctx, n)
		}
	}
}

func (d *Dispatcher) deliver(ctx context.Context, n model.Notification) {
	if err := d.limiter.Wait(ctx); err != nil {
		return
	}

	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	err := d.sender.Send(sendCtx, n)
	if err == nil {
		d.metrics.Notification("sent")
		return
	}

	d.metrics.Notification("failed")
	var limited RateLimitedError
	if errors.As(err, &limited) {
		d.logger.Warn("notifications rate limited", slog.Duration("retry_after", limited.RetryAfter))
		sleep(ctx, limited.RetryAfter)
		return
	}
	d.logger.Error("notification delivery failed",
		slog.Int64("order_id", n.OrderID),
		slog.String("title", n.Title),
		slog.String("error", err.Error()))
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
