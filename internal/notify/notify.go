// Package notify publishes order lifecycle events to RabbitMQ for the
// email worker. Publishing is fire-and-forget: a broker failure is logged
// and never blocks the order or status mutation that triggered it.
package notify

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

const (
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"

	// OrderQueue is the durable queue shared by the API publisher and
	// the email worker.
	OrderQueue = "order_notifications"
)

// OrderEvent is the JSON payload put on the queue for each notification.
type OrderEvent struct {
	Event    string `json:"event"`
	OrderID  string `json:"orderId"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	Status   string `json:"status"`
	Total    int64  `json:"total,omitempty"`
	Currency string `json:"currency,omitempty"`
}

// Publisher wraps an AMQP channel and durable queue.
type Publisher struct {
	conn   *amqp.Connection
	ch     *amqp.Channel
	queue  string
	logger logrus.FieldLogger
}

// NewPublisher dials the broker and declares the queue. An empty URL
// returns a nil publisher; all methods are nil-safe so notifications are
// simply skipped when no broker is configured.
func NewPublisher(url, queue string, logger logrus.FieldLogger) (*Publisher, error) {
	if url == "" {
		return nil, nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Publisher{conn: conn, ch: ch, queue: queue, logger: logger}, nil
}

// Close releases the channel and connection.
func (p *Publisher) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

// Consumer receives order events from the queue.
type Consumer struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewConsumer dials the broker and declares the queue for consumption.
func NewConsumer(url, queue string) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &Consumer{conn: conn, ch: ch}, nil
}

// Deliveries starts consuming the queue with manual acks.
func (c *Consumer) Deliveries(queue string) (<-chan amqp.Delivery, error) {
	return c.ch.Consume(queue, "", false, false, false, false, nil)
}

// Close releases the channel and connection.
func (c *Consumer) Close() {
	if c == nil {
		return
	}
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Publish enqueues an event. Errors are logged, not returned.
func (p *Publisher) Publish(ctx context.Context, ev OrderEvent) {
	if p == nil {
		return
	}
	b, err := json.Marshal(ev)
	if err != nil {
		p.logger.WithError(err).Warn("notify: marshal event")
		return
	}
	err = p.ch.PublishWithContext(ctx,
		"", p.queue, false, false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
	if err != nil {
		p.logger.WithError(err).WithField("order_id", ev.OrderID).Warn("notify: publish event")
	}
}
