// Package queue_publisher publishes booking lifecycle events to
// RabbitMQ. Failures are logged and returned so callers can ignore them
// without interrupting the request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cineseat/movie-hall-booking/internal/booking"
	q "github.com/cineseat/movie-hall-booking/internal/queue"
)

// Publisher implements booking.Publisher over RabbitMQ. A fresh
// connection per publish keeps the implementation robust against broker
// restarts at the cost of throughput, which is fine at booking volume.
type Publisher struct {
	URL string
}

// New builds a Publisher against the configured broker.
func New() *Publisher {
	return &Publisher{URL: q.BrokerURL()}
}

// BookingConfirmed publishes a BookingConfirmedEvent to the durable
// booking.confirmed queue.
func (p *Publisher) BookingConfirmed(ctx context.Context, rec booking.Record) error {
	return p.publish(ctx, "booking.confirmed", q.BookingConfirmedEvent{
		BookingID:   rec.ID,
		UserID:      rec.UserID,
		MovieID:     rec.MovieID,
		MovieTitle:  rec.MovieTitle,
		GroupSize:   rec.GroupSize,
		SeatIDs:     rec.SeatIDs,
		ConfirmedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

// BookingCancelled publishes a BookingCancelledEvent to the durable
// booking.cancelled queue.
func (p *Publisher) BookingCancelled(ctx context.Context, rec booking.Record) error {
	return p.publish(ctx, "booking.cancelled", q.BookingCancelledEvent{
		BookingID:   rec.ID,
		UserID:      rec.UserID,
		MovieID:     rec.MovieID,
		MovieTitle:  rec.MovieTitle,
		SeatIDs:     rec.SeatIDs,
		CancelledAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (p *Publisher) publish(ctx context.Context, queueName string, event interface{}) error {
	conn, err := amqp.Dial(p.URL)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Durable queue so messages survive broker restarts; declare is
	// idempotent.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
