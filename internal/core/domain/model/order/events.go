package order

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
)

// StatusChangedEventType names the change-feed event emitted after a transition.
const StatusChangedEventType = "order.status_changed"

// StatusChangedEvent is the change-feed notification for an order transition.
type StatusChangedEvent struct {
	EventID    kernel.UUID  `json:"event_id"`
	OrderID    kernel.UUID  `json:"order_id"`
	Status     Status       `json:"status"`
	DeliveryID *kernel.UUID `json:"delivery_id"`
	OccurredAt time.Time    `json:"occurred_at"`
}

// NewStatusChangedEvent captures the current state of o.
func NewStatusChangedEvent(o *Order, occurredAt time.Time) StatusChangedEvent {
	return StatusChangedEvent{
		EventID:    kernel.NewUUID(),
		OrderID:    o.ID(),
		Status:     o.Status(),
		DeliveryID: o.DeliveryID(),
		OccurredAt: occurredAt.UTC(),
	}
}
