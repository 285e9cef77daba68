// Package kafka publishes order change events to Kafka with IBM/sarama.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fooddelivery/internal/core/ports"

	"github.com/IBM/sarama"
)

// ErrProducerIsNotInitialized is returned by a zero OrderEventsProducer.
var ErrProducerIsNotInitialized = errors.New("kafka producer is not initialized")

// OrderEventsProducer implements ports.OrderEventPublisher on a sarama.SyncProducer.
// Messages are keyed by order id, so every event of one order lands on the same
// partition in commit order.
type OrderEventsProducer struct {
	producer sarama.SyncProducer
	topic    string
}

// NewOrderEventsProducer dials the comma-separated broker list.
func NewOrderEventsProducer(brokers, topic string) (*OrderEventsProducer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Retry.Backoff = 100 * time.Millisecond
	config.Producer.Return.Successes = true
	config.Producer.Idempotent = true
	config.Net.MaxOpenRequests = 1
	config.Net.DialTimeout = 30 * time.Second
	config.Net.ReadTimeout = 30 * time.Second
	config.Net.WriteTimeout = 30 * time.Second

	brokerList := strings.Split(brokers, ",")
	producer, err := sarama.NewSyncProducer(brokerList, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer for %v: %w", brokerList, err)
	}

	return NewOrderEventsProducerWith(producer, topic), nil
}

// NewOrderEventsProducerWith wraps an existing producer.
func NewOrderEventsProducerWith(producer sarama.SyncProducer, topic string) *OrderEventsProducer {
	return &OrderEventsProducer{producer: producer, topic: topic}
}

// Publish sends one outbox message and waits for the broker acknowledgement.
func (p *OrderEventsProducer) Publish(ctx context.Context, message ports.OutboxMessage) error {
	if p == nil || p.producer == nil {
		return ErrProducerIsNotInitialized
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	_, _, err := p.producer.SendMessage(&sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(message.OrderID.String()),
		Value: sarama.ByteEncoder(message.Payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_id"), Value: []byte(message.ID.String())},
			{Key: []byte("event_type"), Value: []byte(message.Type)},
		},
		Timestamp: message.OccurredAt,
	})
	if err != nil {
		return fmt.Errorf("failed to publish event %s to %s: %w", message.ID, p.topic, err)
	}
	return nil
}

// Close flushes and closes the underlying producer.
func (p *OrderEventsProducer) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
