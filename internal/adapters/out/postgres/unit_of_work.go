// Package postgres provides the GORM-based Unit of Work for the delivery service.
// A unit of work wraps one database transaction, hands out repositories bound to
// it, and tracks the orders changed through them. On commit, an order-status-changed
// event for every tracked order is written to the order_events outbox inside the
// same transaction, so an event exists if and only if the change it describes does.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	updated, err := uow.OrderRepository().ApplyStatusChange(ctx, orderID, change)
//	if err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance is single-use per request and must not be shared
// between goroutines.
package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	now func() time.Time
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db)
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, now: time.Now}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		now:               f.now,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and the outbox rows derived
// from the aggregates changed inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	now               func() time.Time
	trackedAggregates []trackedAggregate
}

// Begin initiates a new database transaction for the unit of work.
// Multiple calls to Begin on the same instance are safe and will not create nested transactions.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit writes the outbox rows for tracked orders and commits the transaction.
// A failed outbox insert rolls the whole transaction back.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	messages, err := uow.outboxMessages()
	if err == nil {
		err = outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, messages...)
	}
	if err != nil {
		_ = uow.tx.Rollback().Error
		uow.tx = nil
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return fmt.Errorf("failed to write order events: %w", err)
	}

	err = uow.tx.Commit().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// Rollback discards all changes made within the current transaction.
//
// Returns gorm.ErrInvalidTransaction if no transaction is active.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// OrderRepository returns an order repository bound to the current transaction,
// or to the plain connection when no transaction is active.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	db := uow.db
	if uow.tx != nil {
		db = uow.tx
	}
	return orderrepo.NewGormOrderRepository(db, uow)
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Called by repository implementations after a successful write.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// outboxMessages serializes one status-changed event per tracked order.
func (uow *GormUnitOfWork) outboxMessages() ([]ports.OutboxMessage, error) {
	messages := make([]ports.OutboxMessage, 0, len(uow.trackedAggregates))
	for _, tracked := range uow.trackedAggregates {
		o, ok := tracked.Aggregate.(*order.Order)
		if !ok {
			continue
		}

		event := order.NewStatusChangedEvent(o, uow.now())
		payload, err := json.Marshal(event)
		if err != nil {
			return nil, err
		}

		messages = append(messages, ports.OutboxMessage{
			ID:         event.EventID,
			OrderID:    event.OrderID,
			Type:       order.StatusChangedEventType,
			Payload:    payload,
			OccurredAt: event.OccurredAt,
		})
	}
	return messages, nil
}
