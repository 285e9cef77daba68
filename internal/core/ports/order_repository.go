// Package ports defines the contracts between the delivery use cases and the
// infrastructure: relational repositories, the unit of work, the identity
// provider, and the order change feed.
package ports

import (
	"context"
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
)

// ErrOrderNotUpdated is returned by ApplyStatusChange when the conditional update
// matched no row: the order is missing, terminal, or claimed by someone else.
var ErrOrderNotUpdated = errors.New("order not updated")

// OrderFilter narrows the orders a delivery worker may see.
//
// Orders match when their status is one of Statuses and delivery_id is NULL or
// equal to WorkerID. A non-empty City additionally requires orders.city == City.
type OrderFilter struct {
	City     string
	Statuses []order.Status
	WorkerID kernel.UUID
}

// OrderRepository defines the persistence contract for orders.
type OrderRepository interface {
	// Get retrieves an order by its identifier.
	// Returns errs.ObjectNotFoundError when no row exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListVisible returns the orders matching filter, newest first (created_at DESC).
	// An empty result is not an error.
	ListVisible(ctx context.Context, filter OrderFilter) ([]*order.Order, error)

	// ApplyStatusChange writes change in a single conditional UPDATE and returns the
	// updated row. The statement only matches rows whose status is not terminal and,
	// when change.RequiresOwnership(), whose delivery_id is NULL or the acting worker.
	//
	// Example:
	//   updated, err := repo.ApplyStatusChange(ctx, orderID, change)
	//   if errors.Is(err, ports.ErrOrderNotUpdated) {
	//       // the guard excluded the row
	//   }
	ApplyStatusChange(ctx context.Context, id kernel.UUID, change order.StatusChange) (*order.Order, error)
}

// OrderItemRepository reads order lines.
type OrderItemRepository interface {
	// ListByOrderIDs returns the items of every listed order. Unknown ids yield no rows.
	ListByOrderIDs(ctx context.Context, orderIDs []kernel.UUID) ([]order.Item, error)
}
