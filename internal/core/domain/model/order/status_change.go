package order

import (
	"errors"
	"fmt"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

// ErrStatusChangeIsNotConstructed is returned when a StatusChange was not built by NewStatusChange.
var ErrStatusChangeIsNotConstructed = errors.New("StatusChange must be created via NewStatusChange constructor")

// Assignment describes what a status change does to delivery_id.
type Assignment int

const (
	// KeepAssignment leaves delivery_id untouched.
	KeepAssignment Assignment = iota
	// StampWorker sets delivery_id to the acting worker.
	StampWorker
	// ClearWorker sets delivery_id to NULL, returning the order to the pool.
	ClearWorker
)

func (a Assignment) String() string {
	switch a {
	case StampWorker:
		return "stamp"
	case ClearWorker:
		return "clear"
	default:
		return "keep"
	}
}

// StatusChange is the update a worker asks for: the target status, what happens to
// delivery_id, and whether the store must enforce the ownership guard.
//
//	out_for_delivery, delivered -> stamp worker, guarded
//	ready_for_pickup            -> clear worker, unguarded
//	anything else               -> status only, unguarded
//
// Every change additionally refuses to leave a terminal status.
type StatusChange struct {
	status     Status
	workerID   kernel.UUID
	assignment Assignment
	guard      guard.ConstructorGuard
}

// NewStatusChange builds the change policy for workerID moving an order to status.
//
// Example:
//
//	change, err := order.NewStatusChange(order.OutForDelivery, workerID)
//	if err != nil {
//	    return err
//	}
//	updated, err := repo.ApplyStatusChange(ctx, orderID, change)
func NewStatusChange(status Status, workerID kernel.UUID) (StatusChange, error) {
	if err := status.Validate(); err != nil {
		return StatusChange{}, err
	}
	if err := workerID.Validate(); err != nil {
		return StatusChange{}, errs.NewValueIsRequiredErrorWithCause("worker id", err)
	}

	change := StatusChange{
		status:   status,
		workerID: workerID,
		guard:    guard.NewConstructorGuard(),
	}

	switch status { //nolint:exhaustive // only delivery statuses touch delivery_id
	case OutForDelivery, Delivered:
		change.assignment = StampWorker
	case ReadyForPickup:
		change.assignment = ClearWorker
	default:
		change.assignment = KeepAssignment
	}

	return change, nil
}

// Validate ensures the change was built by NewStatusChange.
func (c StatusChange) Validate() error {
	return c.guard.Validate(ErrStatusChangeIsNotConstructed)
}

func (c StatusChange) Status() Status {
	return c.status
}

func (c StatusChange) WorkerID() kernel.UUID {
	return c.workerID
}

func (c StatusChange) Assignment() Assignment {
	return c.assignment
}

// RequiresOwnership reports whether the update must only match rows where
// delivery_id is NULL or equal to the acting worker.
func (c StatusChange) RequiresOwnership() bool {
	return c.assignment == StampWorker
}

// DeliveryID returns the delivery_id value written by the change, and whether
// the change writes delivery_id at all.
func (c StatusChange) DeliveryID() (*kernel.UUID, bool) {
	switch c.assignment {
	case StampWorker:
		id := c.workerID
		return &id, true
	case ClearWorker:
		return nil, true
	default:
		return nil, false
	}
}

// CanApplyTo evaluates the update predicate against an in-memory order. Stores
// must evaluate the same predicate atomically inside the UPDATE statement.
func (c StatusChange) CanApplyTo(o *Order) error {
	if err := errors.Join(c.Validate(), o.Validate()); err != nil {
		return err
	}
	if o.Status().IsTerminal() {
		return fmt.Errorf("order %s is %s", o.ID(), o.Status())
	}
	if c.RequiresOwnership() && !o.IsAvailableTo(c.workerID) {
		return fmt.Errorf("order %s is claimed by another worker", o.ID())
	}
	return nil
}

// IsRepeatedOn reports whether o already holds the result of the change: it is
// delivered by the acting worker and the change asks for delivered again.
// Such a change writes nothing and is not an error.
func (c StatusChange) IsRepeatedOn(o *Order) bool {
	if c.Validate() != nil || o.Validate() != nil {
		return false
	}
	if c.status != Delivered || o.Status() != Delivered {
		return false
	}
	id := o.DeliveryID()
	return id != nil && id.IsEqual(c.workerID)
}
