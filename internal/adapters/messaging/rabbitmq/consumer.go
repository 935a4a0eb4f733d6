package rabbitmq

import (
	"context"
	"fmt"
	"log/slog"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Handler processes one message body. A non-nil error means the message
// could not be processed; the consumer logs it and discards the message
// rather than crashing the loop, because downstream state self-heals (a
// missing profile surfaces as a 404 until a replay fills it in).
type Handler func(ctx context.Context, body []byte) error

// Consumer reads from a durable queue bound to a topic exchange with manual
// acknowledgment.
type Consumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   string
	log     *slog.Logger
}

func NewConsumer(url, exchange, queue, routingKey string, log *slog.Logger) (*Consumer, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to broker: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := channel.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}
	if err := channel.QueueBind(queue, routingKey, exchange, false, nil); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return &Consumer{
		conn:    conn,
		channel: channel,
		queue:   queue,
		log:     log,
	}, nil
}

// Consume processes messages one at a time until ctx is cancelled or the
// delivery channel closes.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	deliveries, err := c.channel.ConsumeWithContext(ctx, c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			if err := handler(ctx, delivery.Body); err != nil {
				c.log.Error("failed to process message, discarding", "queue", c.queue, "error", err)
			}
			if err := delivery.Ack(false); err != nil {
				c.log.Error("failed to ack message", "queue", c.queue, "error", err)
			}
		}
	}
}

func (c *Consumer) Close() error {
	if err := c.channel.Close(); err != nil {
		c.conn.Close()
		return err
	}
	return c.conn.Close()
}
