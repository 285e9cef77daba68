// Package outboxrepo stores order events in the order_events table until the
// relay job hands them to the change feed.
package outboxrepo

import (
	"context"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderEventDTO is a row of the order_events table.
type OrderEventDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type        string     `gorm:"type:varchar(64);not null"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	PublishedAt *time.Time `gorm:"index"`
}

// TableName specifies the database table name for outbox rows.
func (OrderEventDTO) TableName() string {
	return "order_events"
}

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add inserts messages in one statement.
func (r *GormOutboxRepository) Add(ctx context.Context, messages ...ports.OutboxMessage) error {
	if len(messages) == 0 {
		return nil
	}

	dtos := make([]OrderEventDTO, 0, len(messages))
	for _, m := range messages {
		dtos = append(dtos, OrderEventDTO{
			ID:         m.ID.Bytes(),
			OrderID:    m.OrderID.Bytes(),
			Type:       m.Type,
			Payload:    m.Payload,
			OccurredAt: m.OccurredAt,
		})
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListUnpublished returns the oldest pending messages.
func (r *GormOutboxRepository) ListUnpublished(ctx context.Context, limit int) ([]ports.OutboxMessage, error) {
	var dtos []OrderEventDTO
	if err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("occurred_at, id").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		id, err := kernel.UUIDFromBytes(dto.ID[:])
		if err != nil {
			return nil, ports.NewStoredRecordError("order_events", dto.ID, err)
		}
		orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
		if err != nil {
			return nil, ports.NewStoredRecordError("order_events", dto.ID, err)
		}
		messages = append(messages, ports.OutboxMessage{
			ID:         id,
			OrderID:    orderID,
			Type:       dto.Type,
			Payload:    dto.Payload,
			OccurredAt: dto.OccurredAt,
		})
	}
	return messages, nil
}

// MarkPublished stamps published_at on the given messages.
func (r *GormOutboxRepository) MarkPublished(ctx context.Context, at time.Time, ids ...kernel.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}

	return r.db.WithContext(ctx).
		Model(&OrderEventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at.UTC()).Error
}
