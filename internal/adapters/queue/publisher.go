package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"planpact/internal/domain"
)

const publishTimeout = 5 * time.Second

// Publisher implements domain.NotificationDispatcher by publishing one message per notification.
type Publisher struct {
	ch     Channel
	queue  string
	logger *slog.Logger
}

// NewPublisher returns a Publisher writing to queue through ch (the default exchange routes by queue name).
func NewPublisher(ch Channel, queue string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{ch: ch, queue: queue, logger: logger}
}

// Dispatch publishes every notification; a failed publish is logged and does not stop the others.
func (p *Publisher) Dispatch(ctx context.Context, notes ...*domain.Notification) {
	ctx = context.WithoutCancel(ctx)
	for _, n := range notes {
		if err := p.publish(ctx, n, 0); err != nil {
			p.logger.Error("failed to publish notification",
				"kind", n.Kind,
				"to", n.To,
				"error", err,
			)
		}
	}
}

func (p *Publisher) publish(ctx context.Context, n *domain.Notification, attempt int32) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         string(n.Kind),
		Body:         body,
	}
	if attempt > 0 {
		msg.Headers = amqp.Table{retryHeader: attempt}
	}
	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, msg); err != nil {
		return fmt.Errorf("publish to %s: %w", p.queue, err)
	}
	return nil
}
