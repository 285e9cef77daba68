package orderrepo

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOrderRepository implements ports.OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository. tracker may be nil
// for read-only use outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	o, err := toDomain(dto)
	if err != nil {
		return nil, ports.NewStoredRecordError("orders", dto.ID, err)
	}
	return o, nil
}

// ListVisible retrieves the orders a worker may see, newest first.
func (r *GormOrderRepository) ListVisible(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	if err := filter.WorkerID.Validate(); err != nil {
		return nil, err
	}

	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, s.String())
	}

	query := r.db.WithContext(ctx).
		Where("status IN ?", statuses).
		Where("(delivery_id IS NULL OR delivery_id = ?)", filter.WorkerID.Bytes())
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}

	var dtos []OrderDTO
	if err := query.Order("created_at DESC").Find(&dtos).Error; err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, ports.NewStoredRecordError("orders", dto.ID, err)
		}
		orders = append(orders, o)
	}

	return orders, nil
}

// ApplyStatusChange runs the guarded UPDATE and re-reads the row on the same connection.
//
// The statement is
//
//	UPDATE orders SET status = ?[, delivery_id = ?]
//	WHERE id = ? AND status <> 'delivered'
//	  [AND (delivery_id IS NULL OR delivery_id = ?)]
func (r *GormOrderRepository) ApplyStatusChange(
	ctx context.Context,
	id kernel.UUID,
	change order.StatusChange,
) (*order.Order, error) {
	if err := errors.Join(id.Validate(), change.Validate()); err != nil {
		return nil, err
	}

	updates := map[string]any{"status": change.Status().String()}
	if deliveryID, writes := change.DeliveryID(); writes {
		if deliveryID == nil {
			updates["delivery_id"] = nil
		} else {
			updates["delivery_id"] = deliveryID.Bytes()
		}
	}

	query := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", id.Bytes()).
		Where("status <> ?", order.Delivered.String())
	if change.RequiresOwnership() {
		query = query.Where("(delivery_id IS NULL OR delivery_id = ?)", change.WorkerID().Bytes())
	}

	result := query.Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ports.ErrOrderNotUpdated
	}

	updated, err := r.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if r.tracker != nil {
		r.tracker.TrackAggregate(updated.ID(), updated)
	}
	return updated, nil
}

// GormOrderItemRepository implements ports.OrderItemRepository using GORM.
type GormOrderItemRepository struct {
	db *gorm.DB
}

// NewGormOrderItemRepository creates a new GORM order item repository.
func NewGormOrderItemRepository(db *gorm.DB) *GormOrderItemRepository {
	return &GormOrderItemRepository{db: db}
}

// ListByOrderIDs retrieves the lines of the given orders.
func (r *GormOrderItemRepository) ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]order.Item, error) {
	if len(orderIDs) == 0 {
		return []order.Item{}, nil
	}

	ids := make([]uuid.UUID, 0, len(orderIDs))
	for _, id := range orderIDs {
		ids = append(ids, id.Bytes())
	}

	var dtos []OrderItemDTO
	if err := r.db.WithContext(ctx).Where("order_id IN ?", ids).Order("id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dtos))
	for _, dto := range dtos {
		it, err := itemToDomain(dto)
		if err != nil {
			return nil, ports.NewStoredRecordError("order_items", dto.ID, err)
		}
		items = append(items, it)
	}

	return items, nil
}
