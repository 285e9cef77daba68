// Package orderrepo maps the orders and order_items tables to the order domain
// model and implements the order read and conditional-update operations.
package orderrepo

import (
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderDTO is a row of the orders table. Checkout leaves city, address, notes and
// payment method NULL when the customer skipped them.
type OrderDTO struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	Status        string          `gorm:"type:varchar(32);not null;index"`
	Total         decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes         *string         `gorm:"type:text"`
	PaymentMethod *string         `gorm:"type:varchar(32)"`
	CreatedAt     time.Time       `gorm:"not null;index"`
	Address       *string         `gorm:"type:text"`
	City          *string         `gorm:"type:varchar(128);index"`
	DeliveryID    *uuid.UUID      `gorm:"type:uuid;index"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// OrderItemDTO is a row of the order_items table.
type OrderItemDTO struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	Quantity     int             `gorm:"type:int;not null"`
	Title        string          `gorm:"type:varchar(255);not null"`
	PriceAtOrder decimal.Decimal `gorm:"type:numeric(12,2);not null"`
}

// TableName specifies the database table name for order lines.
func (OrderItemDTO) TableName() string {
	return "order_items"
}

// toDomain converts an orders row to an order. Unknown status strings fail here
// rather than leaking into the domain.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}
		deliveryID = &dID
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            id,
		CustomerID:    customerID,
		Status:        status,
		Total:         dto.Total,
		Notes:         deref(dto.Notes),
		PaymentMethod: deref(dto.PaymentMethod),
		CreatedAt:     dto.CreatedAt,
		Address:       deref(dto.Address),
		City:          deref(dto.City),
		DeliveryID:    deliveryID,
	})
}

// itemToDomain converts an order_items row to an order line.
func itemToDomain(dto OrderItemDTO) (order.Item, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return order.Item{}, err
	}
	return order.RestoreItem(orderID, dto.Quantity, dto.Title, dto.PriceAtOrder)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
