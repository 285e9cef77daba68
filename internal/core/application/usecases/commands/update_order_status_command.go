package commands

import (
	"errors"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

var ErrUpdateOrderStatusCommandIsNotConstructed = errors.New(
	"UpdateOrderStatusCommand must be created via NewUpdateOrderStatusCommand constructor",
)

// UpdateOrderStatusCommand moves an order to a new status on behalf of the calling
// delivery worker. Raw request values are parsed here, so an unknown status or a
// malformed id never reaches the store.
//
// Example:
//
//	cmd, err := NewUpdateOrderStatusCommand(c.Param("id"), body.Status)
//	if err != nil {
//	    return echo.NewHTTPError(http.StatusBadRequest, err.Error())
//	}
//	updated, err := handler.Handle(ctx, cmd)
type UpdateOrderStatusCommand struct {
	orderID kernel.UUID
	status  order.Status

	guard guard.ConstructorGuard
}

// NewUpdateOrderStatusCommand parses the order id and the target status.
func NewUpdateOrderStatusCommand(orderID, status string) (UpdateOrderStatusCommand, error) {
	id, err := kernel.UUIDFromString(orderID)
	if err != nil {
		return UpdateOrderStatusCommand{}, errs.NewValueIsInvalidErrorWithCause("order id", err)
	}

	s, err := order.ParseStatus(status)
	if err != nil {
		return UpdateOrderStatusCommand{}, err
	}

	return UpdateOrderStatusCommand{
		orderID: id,
		status:  s,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// OrderID returns the order to update.
func (c UpdateOrderStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Status returns the target status.
func (c UpdateOrderStatusCommand) Status() order.Status {
	return c.status
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateOrderStatusCommandIsNotConstructed if validation fails.
func (c UpdateOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateOrderStatusCommandIsNotConstructed)
}
