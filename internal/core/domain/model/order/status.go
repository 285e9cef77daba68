package order

import (
	"fmt"
	"strings"

	"fooddelivery/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
type Status int

const (
	// Unknown catches uninitialised values and unrecognised store strings.
	Unknown Status = iota
	Created
	Confirmed
	Preparing
	// ReadyForPickup orders wait in the pool for a delivery worker.
	ReadyForPickup
	// OutForDelivery orders are claimed by exactly one worker.
	OutForDelivery
	// Delivered is terminal.
	Delivered
	Cancelled
)

var statusNames = map[Status]string{
	Unknown:        "unknown",
	Created:        "created",
	Confirmed:      "confirmed",
	Preparing:      "preparing",
	ReadyForPickup: "ready_for_pickup",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Cancelled:      "cancelled",
}

// ParseStatus converts the store/API spelling into a Status.
// Anything outside the vocabulary is rejected with a ValueIsInvalidError.
//
// Example:
//
//	s, err := order.ParseStatus("out_for_delivery")
//	if err != nil {
//	    return err // 400 at the HTTP edge
//	}
func ParseStatus(raw string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(raw))
	for status, name := range statusNames {
		if status != Unknown && name == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known order status", raw),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok || s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case name used by the store and the API.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return statusNames[Unknown]
}

// IsDeliveryVisible reports whether delivery workers may see orders in this status.
func (s Status) IsDeliveryVisible() bool {
	return s == ReadyForPickup || s == OutForDelivery || s == Delivered
}

// IsTerminal reports whether no transition may leave this status.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// DeliveryVisibleStatuses lists the statuses in IsDeliveryVisible, in lifecycle order.
func DeliveryVisibleStatuses() []Status {
	return []Status{ReadyForPickup, OutForDelivery, Delivered}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
