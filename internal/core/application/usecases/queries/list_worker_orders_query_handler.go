package queries

import (
	"context"
	"errors"
	"log/slog"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/services"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"golang.org/x/sync/errgroup"
)

// Readers groups the repositories the listing reads from.
type Readers struct {
	Workers   ports.WorkerRepository
	Orders    ports.OrderRepository
	Items     ports.OrderItemRepository
	Customers ports.CustomerRepository
	Addresses ports.AddressRepository
}

// ListWorkerOrdersQueryHandler resolves which orders the calling worker may see.
//
// Visibility:
//   - primary: orders whose city equals the worker's city
//   - fallback, only when the primary match is empty: orders whose free-text
//     address mentions a street or area saved in the worker's city
//
// Both paths keep orders in a delivery-visible status that are unclaimed or
// claimed by the caller, newest first. A worker without a city sees nothing.
//
// Example:
//
//	handler := NewListWorkerOrdersQueryHandler(identity, readers, logger)
//	orders, err := handler.Handle(ctx, NewListWorkerOrdersQuery())
//	if err != nil {
//	    return err
//	}
//	for _, o := range orders {
//	    fmt.Println(o.ID, o.Status, len(o.Items))
//	}
type ListWorkerOrdersQueryHandler struct {
	identity ports.IdentityProvider
	readers  Readers
	logger   *slog.Logger
}

// NewListWorkerOrdersQueryHandler creates a handler for worker order listings.
func NewListWorkerOrdersQueryHandler(
	identity ports.IdentityProvider,
	readers Readers,
	logger *slog.Logger,
) ListWorkerOrdersQueryHandler {
	return ListWorkerOrdersQueryHandler{
		identity: identity,
		readers:  readers,
		logger:   logger.With("component", "ListWorkerOrdersQueryHandler"),
	}
}

// Handle executes the query. Identity failures surface as ports.ErrUserNotAuthenticated;
// store failures are returned as is, except a failed customer fetch which only drops
// the customer cards.
func (h ListWorkerOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListWorkerOrdersQuery,
) ([]WorkerOrder, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	caller, err := h.identity.CurrentUser(ctx)
	if err != nil {
		return nil, ports.ErrUserNotAuthenticated
	}

	w, err := h.readers.Workers.Get(ctx, caller.ID)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return []WorkerOrder{}, nil
	}
	if err != nil {
		return nil, err
	}
	if !w.HasCity() {
		return []WorkerOrder{}, nil
	}

	filter := ports.OrderFilter{
		City:     w.City(),
		Statuses: order.DeliveryVisibleStatuses(),
		WorkerID: w.ID(),
	}

	orders, err := h.readers.Orders.ListVisible(ctx, filter)
	if err != nil {
		return nil, err
	}

	if len(orders) == 0 {
		orders, err = h.matchServiceArea(ctx, filter)
		if err != nil {
			return nil, err
		}
	}

	return h.enrich(ctx, orders)
}

// matchServiceArea runs the address-text fallback for the filter's city.
func (h ListWorkerOrdersQueryHandler) matchServiceArea(
	ctx context.Context,
	filter ports.OrderFilter,
) ([]*order.Order, error) {
	city := filter.City
	filter.City = ""

	candidates, err := h.readers.Orders.ListVisible(ctx, filter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return candidates, nil
	}

	addresses, err := h.readers.Addresses.ListByCity(ctx, city)
	if err != nil {
		return nil, err
	}

	matched := services.NewServiceAreaMatcher(addresses).Filter(candidates)
	h.logger.DebugContext(ctx, "service area fallback",
		"city", city, "candidates", len(candidates), "matched", len(matched))

	return matched, nil
}

// enrich attaches items, customer and coordinates to each order, keeping the input order.
func (h ListWorkerOrdersQueryHandler) enrich(ctx context.Context, orders []*order.Order) ([]WorkerOrder, error) {
	result := make([]WorkerOrder, 0, len(orders))
	if len(orders) == 0 {
		return result, nil
	}

	orderIDs := make([]kernel.UUID, 0, len(orders))
	customerIDs := make([]kernel.UUID, 0, len(orders))
	seen := make(map[kernel.UUID]struct{}, len(orders))
	for _, o := range orders {
		orderIDs = append(orderIDs, o.ID())
		if _, ok := seen[o.CustomerID()]; !ok {
			seen[o.CustomerID()] = struct{}{}
			customerIDs = append(customerIDs, o.CustomerID())
		}
	}

	var (
		items     []order.Item
		customers []customer.Customer
		addresses []customer.Address
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = h.readers.Items.ListByOrderIDs(gctx, orderIDs)
		return err
	})
	g.Go(func() error {
		var err error
		addresses, err = h.readers.Addresses.ListByUserIDs(gctx, customerIDs)
		return err
	})
	g.Go(func() error {
		var err error
		customers, err = h.readers.Customers.ListByIDs(gctx, customerIDs)
		if err != nil {
			customers = nil
			// cancelled by a failing sibling fetch; the request fails anyway
			if gctx.Err() == nil {
				h.logger.WarnContext(ctx, "customer enrichment failed, returning orders without customers",
					"orders", len(orderIDs), "error", err)
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	itemsByOrder := make(map[kernel.UUID][]WorkerOrderItem, len(orders))
	for _, it := range items {
		itemsByOrder[it.OrderID()] = append(itemsByOrder[it.OrderID()], WorkerOrderItem{
			Title:        it.Title(),
			Quantity:     it.Quantity(),
			PriceAtOrder: it.PriceAtOrder(),
		})
	}

	customersByID := make(map[kernel.UUID]*WorkerOrderCustomer, len(customers))
	for _, c := range customers {
		if _, ok := customersByID[c.ID()]; ok {
			continue
		}
		customersByID[c.ID()] = &WorkerOrderCustomer{
			ID:        c.ID(),
			Name:      c.Name(),
			Phone:     c.Phone(),
			AvatarURL: c.AvatarURL(),
		}
	}

	for _, o := range orders {
		wo := WorkerOrder{
			ID:            o.ID(),
			Status:        o.Status(),
			Total:         o.Total(),
			Notes:         o.Notes(),
			PaymentMethod: o.PaymentMethod(),
			CreatedAt:     o.CreatedAt(),
			CustomerID:    o.CustomerID(),
			Address:       o.Address(),
			City:          o.City(),
			DeliveryID:    o.DeliveryID(),
			Items:         itemsByOrder[o.ID()],
			Customer:      customersByID[o.CustomerID()],
		}
		if wo.Items == nil {
			wo.Items = []WorkerOrderItem{}
		}

		if primary, ok := customer.PrimaryAddress(o.CustomerID(), addresses); ok {
			if coords, hasCoords := primary.Coordinates(); hasCoords {
				wo.Location = &coords
			}
		}

		result = append(result, wo)
	}

	return result, nil
}
