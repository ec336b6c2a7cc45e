package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel used by the consumer.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type Consumer struct {
	ch             Channel
	queue          string
	dispatcher     *Dispatcher
	logger         *log.Logger
	commandTimeout time.Duration
}

func NewConsumer(ch Channel, queue string, dispatcher *Dispatcher, logger *log.Logger) *Consumer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Consumer{
		ch:             ch,
		queue:          queue,
		dispatcher:     dispatcher,
		logger:         logger,
		commandTimeout: 5 * time.Second,
	}
}

// Run consumes commands until ctx is cancelled or the delivery channel closes.
// Deliveries are acked after the reply is published, even when the command
// failed, so bad messages are not redelivered forever.
func (c *Consumer) Run(ctx context.Context) error {
	if _, err := c.ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := c.ch.Qos(1, 0, false); err != nil {
		return fmt.Errorf("set qos: %w", err)
	}
	msgs, err := c.ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("register consumer: %w", err)
	}

	c.logger.Printf("mq worker listening queue=%s", c.queue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			c.handleDelivery(ctx, d)
		}
	}
}

func (c *Consumer) handleDelivery(parent context.Context, d amqp.Delivery) {
	defer func() {
		if err := d.Ack(false); err != nil {
			c.logger.Printf("failed to ack message: %v", err)
		}
	}()

	ctx, cancel := context.WithTimeout(parent, c.commandTimeout)
	defer cancel()

	resp := c.dispatcher.Handle(ctx, d.Body)
	if !resp.OK {
		c.logger.Printf("command rejected correlation_id=%s code=%s", d.CorrelationId, resp.Code)
	}
	c.reply(ctx, d, resp)
}

func (c *Consumer) reply(ctx context.Context, d amqp.Delivery, resp Response) {
	if d.ReplyTo == "" {
		return
	}
	body, err := json.Marshal(resp)
	if err != nil {
		c.logger.Printf("failed to marshal response: %v", err)
		return
	}
	err = c.ch.PublishWithContext(ctx, "", d.ReplyTo, false, false, amqp.Publishing{
		ContentType:   "application/json",
		CorrelationId: d.CorrelationId,
		Body:          body,
	})
	if err != nil {
		c.logger.Printf("failed to publish response: %v", err)
	}
}
