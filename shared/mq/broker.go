// Package mq provides the RabbitMQ client shared by textforge services.
// Uses a topic exchange so services subscribe to routing key patterns.
package mq

import (
	"context"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

const (
	Exchange     = "textforge.events"
	ExchangeType = "topic"

	dialAttempts = 10
)

// Broker holds one AMQP connection and channel.
type Broker struct {
	url  string
	conn *amqp.Connection
	ch   *amqp.Channel
}

// New connects to RabbitMQ and declares the exchange. The broker may still
// be starting when the service boots, so dialing backs off linearly.
func New(ctx context.Context, amqpURL string) (*Broker, error) {
	b := &Broker{url: amqpURL}
	if err := b.connect(ctx); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Broker) connect(ctx context.Context) error {
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		b.conn, err = amqp.Dial(b.url)
		if err == nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("RabbitMQ connection failed, retrying")
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * time.Second):
		}
	}
	if err != nil {
		return fmt.Errorf("rabbitmq connect after %d attempts: %w", dialAttempts, err)
	}

	b.ch, err = b.conn.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	return b.ch.ExchangeDeclare(
		Exchange,
		ExchangeType,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
}

// Publish sends a persistent JSON message with the given routing key.
func (b *Broker) Publish(ctx context.Context, routingKey string, body []byte) error {
	return b.ch.PublishWithContext(ctx,
		Exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

// Subscribe binds a durable queue to pattern and starts consuming with
// manual acks. prefetch bounds unacked deliveries across the channel.
func (b *Broker) Subscribe(queueName, pattern string, prefetch int) (<-chan amqp.Delivery, error) {
	q, err := b.ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queueName, err)
	}

	if err := b.ch.QueueBind(q.Name, pattern, Exchange, false, nil); err != nil {
		return nil, fmt.Errorf("bind queue %s to %s: %w", queueName, pattern, err)
	}

	if prefetch < 1 {
		prefetch = 1
	}
	if err := b.ch.Qos(prefetch, 0, false); err != nil {
		return nil, fmt.Errorf("set qos: %w", err)
	}

	return b.ch.Consume(
		q.Name,
		"",    // consumer tag, auto-generated
		false, // auto-ack off; workers ack after publishing the reply
		false, false, false, nil,
	)
}

// Close shuts down channel and connection.
func (b *Broker) Close() {
	if b.ch != nil {
		_ = b.ch.Close()
	}
	if b.conn != nil {
		_ = b.conn.Close()
	}
}
