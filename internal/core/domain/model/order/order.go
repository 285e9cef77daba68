package order

import (
	"errors"
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned when an Order was not built by RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via RestoreOrder constructor")

// Snapshot carries the persisted state of an order row.
type Snapshot struct {
	ID            kernel.UUID
	CustomerID    kernel.UUID
	Status        Status
	Total         decimal.Decimal
	Notes         string
	PaymentMethod string
	CreatedAt     time.Time
	Address       string
	City          string
	DeliveryID    *kernel.UUID
}

// Order is an order row narrowed into a typed record. Orders are created by the
// checkout flow elsewhere; this service only restores and transitions them.
//
// Invariants:
//   - id and customer id are valid UUIDs
//   - status belongs to the vocabulary
//   - total is not negative
type Order struct {
	id            kernel.UUID
	customerID    kernel.UUID
	status        Status
	total         decimal.Decimal
	notes         string
	paymentMethod string
	createdAt     time.Time
	address       string
	city          string

	// deliveryID is the claiming worker; nil while the order is in the pool.
	deliveryID *kernel.UUID

	isConstructed bool
}

// RestoreOrder rebuilds an Order from persisted state, reporting every violation at once.
//
// Example:
//
//	o, err := order.RestoreOrder(order.Snapshot{
//	    ID:         kernel.NewUUID(),
//	    CustomerID: customerID,
//	    Status:     order.ReadyForPickup,
//	    Total:      decimal.RequireFromString("149.50"),
//	    Address:    "12 Nile St, Maadi",
//	    City:       "Cairo",
//	})
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		notes:         s.Notes,
		paymentMethod: s.PaymentMethod,
		createdAt:     s.CreatedAt,
		address:       s.Address,
		city:          s.City,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setStatus(s.Status),
		o.setTotal(s.Total),
		o.setDeliveryID(s.DeliveryID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID {
	return o.id
}

func (o *Order) CustomerID() kernel.UUID {
	return o.customerID
}

func (o *Order) Status() Status {
	return o.status
}

func (o *Order) Total() decimal.Decimal {
	return o.total
}

func (o *Order) Notes() string {
	return o.notes
}

func (o *Order) PaymentMethod() string {
	return o.paymentMethod
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Address is the free-text delivery address typed at checkout.
func (o *Order) Address() string {
	return o.address
}

// City is empty when checkout did not resolve one.
func (o *Order) City() string {
	return o.city
}

// DeliveryID returns the claiming worker, or nil while unclaimed.
func (o *Order) DeliveryID() *kernel.UUID {
	if o.deliveryID == nil {
		return nil
	}
	id := *o.deliveryID
	return &id
}

// IsAvailableTo reports whether workerID may claim or complete the order:
// it is unclaimed or already claimed by that worker.
func (o *Order) IsAvailableTo(workerID kernel.UUID) bool {
	return o.deliveryID == nil || o.deliveryID.IsEqual(workerID)
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer id", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setStatus(s Status) error {
	if err := s.Validate(); err != nil {
		return err
	}
	o.status = s
	return nil
}

func (o *Order) setTotal(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total is invalid", fmt.Errorf("%s is negative", total))
	}
	o.total = total
	return nil
}

func (o *Order) setDeliveryID(id *kernel.UUID) error {
	if id == nil {
		o.deliveryID = nil
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("delivery id", err)
	}
	cp := *id
	o.deliveryID = &cp
	return nil
}
