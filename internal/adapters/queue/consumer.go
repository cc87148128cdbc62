package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"

	"planpact/internal/domain"
)

const (
	retryHeader       = "x-retry-count"
	defaultMaxRetries = 3
	prefetchCount     = 8
)

// ErrDeliveriesClosed is returned by Run when the broker closes the delivery channel.
var ErrDeliveriesClosed = errors.New("delivery channel closed")

// Consumer reads notifications from the queue and hands them to the email service.
// A failed delivery is re-published with an incremented retry header until maxRetries is reached.
type Consumer struct {
	ch         Channel
	queue      string
	email      domain.EmailService
	retry      *Publisher
	maxRetries int32
	logger     *slog.Logger
}

// NewConsumer returns a Consumer. A non-positive maxRetries uses the default.
func NewConsumer(ch Channel, queue string, email domain.EmailService, maxRetries int, logger *slog.Logger) *Consumer {
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Consumer{
		ch:         ch,
		queue:      queue,
		email:      email,
		retry:      NewPublisher(ch, queue, logger),
		maxRetries: int32(maxRetries),
		logger:     logger,
	}
}

// Run consumes until ctx is done (returning nil) or the delivery channel closes.
func (c *Consumer) Run(ctx context.Context) error {
	if err := c.ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.queue, err)
	}
	c.logger.Info("notification consumer started", "queue", c.queue)

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("notification consumer stopped")
			return nil
		case d, ok := <-msgs:
			if !ok {
				return ErrDeliveriesClosed
			}
			c.handle(ctx, d)
		}
	}
}

func (c *Consumer) handle(ctx context.Context, d amqp.Delivery) {
	var n domain.Notification
	if err := json.Unmarshal(d.Body, &n); err != nil {
		c.logger.Error("dropping malformed notification", "error", err)
		_ = d.Reject(false)
		return
	}

	err := c.email.Deliver(ctx, &n)
	if err == nil {
		_ = d.Ack(false)
		return
	}

	attempt := retryCount(d.Headers) + 1
	if attempt > c.maxRetries {
		c.logger.Error("giving up on notification",
			"kind", n.Kind,
			"to", n.To,
			"attempts", attempt,
			"error", err,
		)
		_ = d.Nack(false, false)
		return
	}
	if perr := c.retry.publish(ctx, &n, attempt); perr != nil {
		c.logger.Error("failed to requeue notification", "to", n.To, "error", perr)
		_ = d.Nack(false, true)
		return
	}
	c.logger.Warn("notification delivery failed, retrying",
		"kind", n.Kind,
		"to", n.To,
		"attempt", attempt,
		"error", err,
	)
	_ = d.Ack(false)
}

func retryCount(h amqp.Table) int32 {
	switch v := h[retryHeader].(type) {
	case int32:
		return v
	case int64:
		return int32(v)
	case int:
		return int32(v)
	default:
		return 0
	}
}
