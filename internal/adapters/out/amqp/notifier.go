// Package amqp implements the Notifier port on top of RabbitMQ. Status
// change events are published to a durable queue consumed by the platform's
// notification service, which enriches them with user and email data; the
// reconciliation core never touches email concerns directly.
package amqp

import (
	"context"
	"encoding/json"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	amqp "github.com/rabbitmq/amqp091-go"
)

// StatusChangedMessage is the wire form of a status change event.
type StatusChangedMessage struct {
	OrderID        string  `json:"orderId"`
	OldStatus      string  `json:"oldStatus"`
	NewStatus      string  `json:"newStatus"`
	TrackingNumber *string `json:"trackingNumber,omitempty"`
}

// Client wraps one AMQP connection and channel.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to RabbitMQ at the given URL and opens a channel.
func Dial(amqpURL string) (*Client, error) {
	if amqpURL == "" {
		return nil, errs.NewValueIsRequiredError("amqpURL")
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}

	return &Client{conn: conn, ch: ch}, nil
}

// Close releases the channel and connection.
func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Notifier publishes status-changed events to a durable RabbitMQ queue.
// Implements ports.Notifier.
type Notifier struct {
	ch    *amqp.Channel
	queue string
}

// NewNotifier declares the durable notification queue and returns a
// publisher bound to it.
func NewNotifier(client *Client, queue string) (*Notifier, error) {
	if queue == "" {
		return nil, errs.NewValueIsRequiredError("queue")
	}

	_, err := client.ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	if err != nil {
		return nil, err
	}

	return &Notifier{ch: client.ch, queue: queue}, nil
}

// PublishStatusChanged publishes one event as a persistent JSON message.
// Delivery failures are returned to the caller, who logs and moves on: the
// notification side channel must never fail the reconciliation write.
func (n *Notifier) PublishStatusChanged(ctx context.Context, event ports.StatusChangedEvent) error {
	body, err := json.Marshal(MessageFromEvent(event))
	if err != nil {
		return err
	}

	return n.ch.PublishWithContext(ctx,
		"",      // default exchange
		n.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
}

// MessageFromEvent converts a domain event to its wire representation.
// Exported for tests that assert the published payload shape.
func MessageFromEvent(event ports.StatusChangedEvent) StatusChangedMessage {
	return StatusChangedMessage{
		OrderID:        event.OrderID.String(),
		OldStatus:      event.OldStatus.String(),
		NewStatus:      event.NewStatus.String(),
		TrackingNumber: event.TrackingNumber,
	}
}
