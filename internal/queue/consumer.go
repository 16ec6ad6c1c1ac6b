package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/cinema-seat-booking/internal/pkg/errs"
)

// Consumer reads booking events and appends one line per event to
// <logDir>/booking.log.
type Consumer struct {
	url    string
	queue  string
	logDir string
	log    *slog.Logger
}

func NewConsumer(url, queue, logDir string, log *slog.Logger) *Consumer {
	return &Consumer{url: url, queue: queue, logDir: logDir, log: log}
}

// Run connects, consumes and reconnects with exponential backoff (capped
// at 30s) until ctx is cancelled.  Malformed messages are rejected
// without requeue so they cannot loop.
func (c *Consumer) Run(ctx context.Context) error {
	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Warn("booking-consumer: dial failed", slog.String("error", err.Error()), slog.Duration("retry_in", backoff))
			if !sleep(ctx, backoff) {
				return ctx.Err()
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second

		err = c.consumeLoop(ctx, conn)
		_ = conn.Close()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		c.log.Warn("booking-consumer: consume loop ended, reconnecting", slog.String("error", err.Error()))
		if !sleep(ctx, 2*time.Second) {
			return ctx.Err()
		}
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *Consumer) consumeLoop(ctx context.Context, conn *amqp.Connection) error {
	ch, err := conn.Channel()
	if err != nil {
		return errs.Wrap(err, "channel open")
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		c.log.Warn("booking-consumer: set QoS failed", slog.String("error", err.Error()))
	}
	if _, err := ch.QueueDeclare(c.queue, true, false, false, false, nil); err != nil {
		return errs.Wrap(err, "queue declare")
	}
	msgs, err := ch.Consume(c.queue, "", false, false, false, false, nil)
	if err != nil {
		return errs.Wrap(err, "queue consume")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errs.New("deliveries channel closed")
			}
			if err := c.HandleMessage(d.Body); err != nil {
				c.log.Error("booking-consumer: handle message failed", slog.String("error", err.Error()))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// HandleMessage decodes one event body and appends it to the booking log.
func (c *Consumer) HandleMessage(body []byte) error {
	var ev BookingCommittedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return errs.Wrap(err, "unmarshal")
	}
	if err := os.MkdirAll(c.logDir, 0o755); err != nil {
		return errs.Wrapf(err, "mkdir %s", c.logDir)
	}
	f, err := os.OpenFile(filepath.Join(c.logDir, "booking.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return errs.Wrap(err, "open log file")
	}
	defer f.Close()

	if _, err := f.WriteString(FormatLogLine(ev)); err != nil {
		return errs.Wrap(err, "write log")
	}
	return nil
}

// FormatLogLine renders ev as a single human-readable line.
func FormatLogLine(ev BookingCommittedEvent) string {
	who := fmt.Sprintf("user_id=%d", ev.UserID)
	if ev.UserID == 0 {
		who = fmt.Sprintf("guest=%q email=%q", ev.GuestName, ev.GuestEmail)
	}
	line := fmt.Sprintf("[%s] Booking committed | event_id=%s | screening_id=%d | %s | seats=[%s]",
		ev.CommittedAt, ev.EventID, ev.ScreeningID, who, strings.Join(ev.SeatLabels, ","))
	if len(ev.Failed) > 0 {
		line += fmt.Sprintf(" | failed=[%s]", strings.Join(ev.Failed, ","))
	}
	return line + "\n"
}
