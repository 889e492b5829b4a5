package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
	"github.com/terraincognita07/nutrilog/internal/models"
)

var ErrPublisherClosed = errors.New("publisher closed")

// Publisher delivers journal events; failures are logged, never returned to
// the writer that triggered the event.
type Publisher interface {
	Publish(ctx context.Context, event models.JournalEvent)
	Close() error
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, models.JournalEvent) {}

func (NoopPublisher) Close() error { return nil }

// amqpChannel is the subset of *amqp.Channel used for publishing.
type amqpChannel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type AMQPPublisher struct {
	mu      sync.Mutex
	conn    *amqp.Connection
	channel amqpChannel
	queue   string
	logger  logrus.FieldLogger
	closed  bool
}

// NewPublisher returns a no-op publisher when url is empty.
func NewPublisher(url string, queue string, logger logrus.FieldLogger) (Publisher, error) {
	if url == "" {
		return NoopPublisher{}, nil
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	publisher, err := newAMQPPublisher(channel, queue, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	publisher.conn = conn
	return publisher, nil
}

func newAMQPPublisher(channel amqpChannel, queue string, logger logrus.FieldLogger) (*AMQPPublisher, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if _, err := channel.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		channel.Close()
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &AMQPPublisher{
		channel: channel,
		queue:   queue,
		logger:  logger,
	}, nil
}

func (publisher *AMQPPublisher) Publish(_ context.Context, event models.JournalEvent) {
	fields := logrus.Fields{"event": event.Type, "queue": publisher.queue}

	body, err := json.Marshal(event)
	if err != nil {
		publisher.logger.WithFields(fields).WithError(err).Error("encode event failed")
		return
	}

	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if publisher.closed {
		publisher.logger.WithFields(fields).Warn(ErrPublisherClosed.Error())
		return
	}

	err = publisher.channel.Publish("", publisher.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Type:         event.Type,
		Timestamp:    time.UnixMilli(event.OccurredAt).UTC(),
		Body:         body,
	})
	if err != nil {
		publisher.logger.WithFields(fields).WithError(err).Error("publish event failed")
		return
	}
	publisher.logger.WithFields(fields).Debug("event published")
}

func (publisher *AMQPPublisher) Close() error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	if publisher.closed {
		return nil
	}
	publisher.closed = true

	err := publisher.channel.Close()
	if publisher.conn != nil {
		if closeErr := publisher.conn.Close(); err == nil {
			err = closeErr
		}
	}
	return err
}
