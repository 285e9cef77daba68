package queries

import (
	"errors"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	ErrListWorkerOrdersQueryIsNotConstructed = errors.New(
		"ListWorkerOrdersQuery must be created via NewListWorkerOrdersQuery constructor",
	)
)

// ListWorkerOrdersQuery lists the orders visible to the calling delivery worker.
// The worker is taken from the request identity, so the query carries no parameters.
//
// Example:
//
//	query := NewListWorkerOrdersQuery()
//	orders, err := handler.Handle(ctx, query)
//	if errors.Is(err, ports.ErrUserNotAuthenticated) {
//	    return echo.ErrUnauthorized
//	}
type ListWorkerOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListWorkerOrdersQuery creates the query.
func NewListWorkerOrdersQuery() ListWorkerOrdersQuery {
	return ListWorkerOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
// Returns ErrListWorkerOrdersQueryIsNotConstructed if validation fails.
func (q ListWorkerOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListWorkerOrdersQueryIsNotConstructed)
}

// WorkerOrder is an order enriched for display to a delivery worker.
// Customer is nil when the customer could not be loaded; Location is nil when the
// customer has no geocoded address.
type WorkerOrder struct {
	ID            kernel.UUID
	Status        order.Status
	Total         decimal.Decimal
	Notes         string
	PaymentMethod string
	CreatedAt     time.Time
	CustomerID    kernel.UUID
	Address       string
	City          string
	DeliveryID    *kernel.UUID

	Items    []WorkerOrderItem
	Customer *WorkerOrderCustomer
	Location *kernel.Coordinates
}

// WorkerOrderItem is one line of a WorkerOrder.
type WorkerOrderItem struct {
	Title        string
	Quantity     int
	PriceAtOrder decimal.Decimal
}

// WorkerOrderCustomer is the contact card shown next to an order.
type WorkerOrderCustomer struct {
	ID        kernel.UUID
	Name      string
	Phone     string
	AvatarURL string
}
