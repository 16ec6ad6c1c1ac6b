package queue

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// Publisher sends booking events to a durable RabbitMQ queue.  It dials
// per message; booking batches are infrequent enough that a long-lived
// channel is not worth the reconnect handling.
type Publisher struct {
	url   string
	queue string
}

// NewPublisher returns a publisher for the given broker URL and queue.
func NewPublisher(url, queue string) *Publisher {
	return &Publisher{url: url, queue: queue}
}

// PublishBookingCommitted publishes ev as a persistent JSON message whose
// MessageId is the event id.
func (p *Publisher) PublishBookingCommitted(ctx context.Context, ev BookingCommittedEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return errs.Wrap(err, "marshal booking event")
	}

	conn, err := amqp.Dial(p.url)
	if err != nil {
		return errs.Wrap(err, "rabbitmq dial")
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "rabbitmq channel open")
	}
	defer func() { _ = ch.Close() }()

	// Idempotent; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(p.queue, true, false, false, false, nil); err != nil {
		return errs.Wrapf(err, "rabbitmq declare %s", p.queue)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.EventID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return errs.Wrapf(err, "rabbitmq publish %s", p.queue)
	}
	return nil
}
