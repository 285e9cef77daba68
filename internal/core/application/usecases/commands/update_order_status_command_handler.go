package commands

import (
	"context"
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/ports"
)

// ErrStatusUpdateRejected is returned when the conditional update matched no row
// although the order exists: it is already delivered or another worker claimed it.
var ErrStatusUpdateRejected = errors.New("failed to update status")

// UpdateOrderStatusCommandHandler applies a worker's status change in one
// conditional update.
//
//	out_for_delivery, delivered -> delivery_id := caller, only if unclaimed or claimed by caller
//	ready_for_pickup            -> delivery_id := NULL, for any caller
//	other statuses              -> status only
//
// Nothing leaves delivered. The owner re-sending delivered is a no-op.
//
// Example:
//
//	handler := NewUpdateOrderStatusCommandHandler(uowFactory, identity)
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrStatusUpdateRejected):
//	    log.Println("order taken by someone else")
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    log.Println("no such order")
//	case err != nil:
//	    log.Printf("update failed: %v", err)
//	default:
//	    log.Printf("order %s is now %s", updated.ID(), updated.Status())
//	}
type UpdateOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	identity   ports.IdentityProvider
}

// NewUpdateOrderStatusCommandHandler creates a handler for worker status updates.
func NewUpdateOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	identity ports.IdentityProvider,
) UpdateOrderStatusCommandHandler {
	return UpdateOrderStatusCommandHandler{
		uowFactory: uowFactory,
		identity:   identity,
	}
}

// Handle processes the command and returns the updated order.
// Zero matched rows are reported as errs.ObjectNotFoundError when the order is
// missing, and as ErrStatusUpdateRejected otherwise, except for the owner
// re-sending delivered, which returns the order as it is.
func (h UpdateOrderStatusCommandHandler) Handle(
	ctx context.Context,
	command UpdateOrderStatusCommand,
) (*order.Order, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	caller, err := h.identity.CurrentUser(ctx)
	if err != nil {
		return nil, ports.ErrUserNotAuthenticated
	}

	change, err := order.NewStatusChange(command.Status(), caller.ID)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ordersRepo := uow.OrderRepository()

	updated, err := ordersRepo.ApplyStatusChange(ctx, command.OrderID(), change)
	if errors.Is(err, ports.ErrOrderNotUpdated) {
		return h.resolveNotUpdated(ctx, ordersRepo, command, change)
	}
	if err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return updated, nil
}

// resolveNotUpdated tells a missing order apart from a guard violation. The owner
// repeating delivered gets the order back unchanged and no event is written.
func (h UpdateOrderStatusCommandHandler) resolveNotUpdated(
	ctx context.Context,
	ordersRepo ports.OrderRepository,
	command UpdateOrderStatusCommand,
	change order.StatusChange,
) (*order.Order, error) {
	current, err := ordersRepo.Get(ctx, command.OrderID())
	if err != nil {
		return nil, err
	}

	if change.IsRepeatedOn(current) {
		return current, nil
	}

	reason := change.CanApplyTo(current)
	if reason == nil {
		reason = fmt.Errorf("order %s changed during the update", current.ID())
	}
	return nil, fmt.Errorf("%w: %w", ErrStatusUpdateRejected, reason)
}
