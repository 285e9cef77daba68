package ports

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialized order event waiting to be published.
type OutboxMessage struct {
	ID         kernel.UUID
	OrderID    kernel.UUID
	Type       string
	Payload    []byte
	OccurredAt time.Time
}

// OutboxRepository stores order events next to the order rows they describe.
type OutboxRepository interface {
	// Add stores messages. Called inside the transaction that changed the orders.
	Add(ctx context.Context, messages ...OutboxMessage) error

	// ListUnpublished returns up to limit messages, oldest first.
	ListUnpublished(ctx context.Context, limit int) ([]OutboxMessage, error)

	// MarkPublished stamps the messages as delivered to the change feed.
	MarkPublished(ctx context.Context, at time.Time, ids ...kernel.UUID) error
}

// OrderEventPublisher delivers outbox messages to the change feed.
type OrderEventPublisher interface {
	Publish(ctx context.Context, message OutboxMessage) error
}
