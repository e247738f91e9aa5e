package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"github.com/polkiloo/foodorders/internal/domain/model"
)

// NotificationsExchange is the fanout exchange notifications are published to.
const NotificationsExchange = "notifications_fanout"

type amqpChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

type amqpConnection interface {
	Close() error
}

// AMQPSender publishes notifications to a RabbitMQ fanout exchange.
type AMQPSender struct {
	conn    amqpConnection
	channel amqpChannel
	logger  *slog.Logger
}

var dialAMQP = func(url string) (amqpConnection, amqpChannel, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// NewAMQPSender connects to the broker and declares the notifications exchange.
func NewAMQPSender(url string, logger *slog.Logger) (*AMQPSender, error) {
	conn, ch, err := dialAMQP(url)
	if err != nil {
		return nil, fmt.Errorf("connect amqp: %w", err)
	}
	return newAMQPSender(conn, ch, logger)
}

func newAMQPSender(conn amqpConnection, ch amqpChannel, logger *slog.Logger) (*AMQPSender, error) {
	err := ch.ExchangeDeclare(
		NotificationsExchange,
		"fanout",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s exchange: %w", NotificationsExchange, err)
	}
	return &AMQPSender{conn: conn, channel: ch, logger: logger}, nil
}

// Send publishes the notification as a JSON message.
func (s *AMQPSender) Send(ctx context.Context, n model.Notification) error {
	body, err := json.Marshal(newPayload(n))
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}

	err = s.channel.PublishWithContext(ctx, NotificationsExchange, "", false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Transient,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish notification: %w", err)
	}
	s.logger.Debug("notification published", slog.Int64("order_id", n.OrderID), slog.Int("size", len(body)))
	return nil
}

// Close releases the channel and connection.
func (s *AMQPSender) Close() error {
	chErr := s.channel.Close()
	connErr := s.conn.Close()
	if chErr != nil {
		return chErr
	}
	return connErr
}
