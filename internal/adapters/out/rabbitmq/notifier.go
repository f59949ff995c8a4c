// Package rabbitmq publishes shipment notifications to a RabbitMQ broker.
// Notification sits outside the fulfillment consistency boundary: a failed
// publish is reported to the caller for logging but never unwinds a
// committed shipment.
package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/jpirumvaa/fulfillment-system/internal/core/domain/model/shipment"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	// ShipmentExchange is the topic exchange shipment events publish to.
	ShipmentExchange = "fulfillment_exchange"

	// ShipmentDispatchedQueue is the queue carrier integrations consume.
	ShipmentDispatchedQueue = "shipment_dispatched_queue"

	// ShipmentDispatchedRoutingKey routes dispatch events to the queue.
	ShipmentDispatchedRoutingKey = "shipment.dispatched"

	dialAttempts = 5
)

// shipmentDispatchedEvent is the JSON wire shape of one dispatch event.
type shipmentDispatchedEvent struct {
	ShipmentID     string      `json:"shipmentId"`
	OrderID        int         `json:"orderId"`
	Lines          []eventLine `json:"lines"`
	TotalMassGrams int         `json:"totalMassGrams"`
	ShippedAt      time.Time   `json:"shippedAt"`
}

type eventLine struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// ShipmentNotifier publishes dispatch events over a long-lived AMQP
// connection. It implements ports.ShipmentNotifier.
type ShipmentNotifier struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
}

// NewShipmentNotifier dials the broker, retrying with backoff, and declares
// the exchange, queue and binding so events are never published into the
// void.
func NewShipmentNotifier(url string, logger *slog.Logger) (*ShipmentNotifier, error) {
	var conn *amqp.Connection
	var err error

	for i := 0; i < dialAttempts; i++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		retryIn := time.Duration(i*i)*time.Second + time.Second
		logger.Warn("Failed to connect to RabbitMQ, retrying", "in", retryIn, "error", err)
		time.Sleep(retryIn)
	}
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = channel.ExchangeDeclare(
		ShipmentExchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", ShipmentExchange, err)
	}

	queue, err := channel.QueueDeclare(
		ShipmentDispatchedQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare queue %s: %w", ShipmentDispatchedQueue, err)
	}

	if err = channel.QueueBind(
		queue.Name,
		ShipmentDispatchedRoutingKey,
		ShipmentExchange,
		false, // no-wait
		nil,
	); err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("bind queue %s: %w", queue.Name, err)
	}

	return &ShipmentNotifier{
		conn:    conn,
		channel: channel,
		logger:  logger.With("component", "rabbitmq"),
	}, nil
}

// ShipmentDispatched publishes one dispatch event as a persistent JSON
// message.
func (n *ShipmentNotifier) ShipmentDispatched(ctx context.Context, s *shipment.Shipment) error {
	if err := s.Validate(); err != nil {
		return err
	}

	lines := make([]eventLine, 0, len(s.Lines()))
	for _, line := range s.Lines() {
		lines = append(lines, eventLine{ProductID: line.ProductID(), Quantity: line.Quantity()})
	}

	body, err := json.Marshal(shipmentDispatchedEvent{
		ShipmentID:     s.ID().String(),
		OrderID:        s.OrderID(),
		Lines:          lines,
		TotalMassGrams: s.TotalMassGrams(),
		ShippedAt:      s.ShippedAt(),
	})
	if err != nil {
		return fmt.Errorf("marshal dispatch event: %w", err)
	}

	if err = n.channel.PublishWithContext(
		ctx,
		ShipmentExchange,
		ShipmentDispatchedRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		return fmt.Errorf("publish dispatch event for shipment %s: %w", s.ID(), err)
	}

	n.logger.DebugContext(ctx, "Shipment dispatch event published",
		"shipmentId", s.ID(), "orderId", s.OrderID())
	return nil
}

// Close closes the channel and connection.
func (n *ShipmentNotifier) Close() error {
	if n.channel != nil {
		if err := n.channel.Close(); err != nil {
			return err
		}
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
