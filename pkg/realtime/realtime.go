// Package realtime is the change-notification feed. Mutating services
// publish a "something changed" event per write; clients subscribe, filter
// by table and list, and refetch. Events are signals, not diffs.
package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	amqp "github.com/streadway/amqp"
)

const changeQueue = "change_feed"

// EventKind mirrors the row-store operation that triggered the event.
type EventKind string

const (
	EventInsert EventKind = "INSERT"
	EventUpdate EventKind = "UPDATE"
	EventDelete EventKind = "DELETE"
)

// ChangeEvent identifies which row of which table changed. ListID is set for
// item events so subscribers can filter on a single open list.
type ChangeEvent struct {
	Table  string    `json:"table"`
	Kind   EventKind `json:"kind"`
	RowID  string    `json:"row_id"`
	ListID string    `json:"list_id,omitempty"`
	At     time.Time `json:"at"`
}

// Matches reports whether the event concerns the given table and, when
// listID is non-empty, the given list.
func (e ChangeEvent) Matches(table, listID string) bool {
	if e.Table != table {
		return false
	}
	return listID == "" || e.ListID == listID
}

// Client holds the AMQP connection and channel for the change feed.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	log     *logrus.Logger
}

// Config holds AMQP connection details.
type Config struct {
	URL string
}

// NewClient connects to the broker and declares the change-feed queue.
func NewClient(cfg Config, log *logrus.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() // Close connection if channel creation fails
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	_, err = ch.QueueDeclare(
		changeQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", changeQueue, err)
	}

	log.Info("realtime client connected and change_feed declared")

	return &Client{
		conn:    conn,
		channel: ch,
		log:     log,
	}, nil
}

// Close closes the AMQP connection and channel.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during realtime client close: %v", errs)
	}
	return nil
}

// PublishChange publishes one change event to the feed.
func (c *Client) PublishChange(ev ChangeEvent) error {
	if c.channel == nil {
		return fmt.Errorf("realtime channel is not available")
	}

	if ev.At.IsZero() {
		ev.At = time.Now()
	}
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to marshal change event: %w", err)
	}

	err = c.channel.Publish(
		"",          // exchange: default exchange
		changeQueue, // routing key: the queue name
		false,       // mandatory
		false,       // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    ev.At,
		})
	if err != nil {
		return fmt.Errorf("failed to publish change event: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"table": ev.Table,
		"kind":  ev.Kind,
		"row":   ev.RowID,
	}).Debug("published change event")
	return nil
}

// Consume delivers each change event on the feed to the handler. Handler
// errors nack the message back onto the queue; success acks it.
func (c *Client) Consume(handler func(ev ChangeEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("realtime channel is not available for consumption")
	}

	queue, err := c.channel.QueueDeclare(
		changeQueue, // name
		true,        // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		nil,         // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue for consuming: %w", err)
	}

	msgs, err := c.channel.Consume(
		queue.Name, // queue
		"",         // consumer tag
		false,      // auto-ack: manual acknowledgement
		false,      // exclusive
		false,      // no-local
		false,      // no-wait
		nil,        // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			var ev ChangeEvent
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				c.log.WithError(err).Warn("dropping undecodable change event")
				if ackErr := msg.Ack(false); ackErr != nil {
					c.log.WithError(ackErr).Warn("failed to ack bad message")
				}
				continue
			}
			if err := handler(ev); err != nil {
				c.log.WithError(err).Error("error handling change event")
				if requeueErr := msg.Nack(false, true); requeueErr != nil {
					c.log.WithError(requeueErr).Error("error nacking message")
				}
				continue
			}
			if ackErr := msg.Ack(false); ackErr != nil {
				c.log.WithError(ackErr).Error("error acking message")
			}
		}
	}()

	return nil
}
