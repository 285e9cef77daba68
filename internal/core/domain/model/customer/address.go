package customer

import (
	"errors"
	"strings"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/pkg/errs"
)

// AddressSnapshot carries the persisted state of an addresses row.
type AddressSnapshot struct {
	ID          kernel.UUID
	UserID      kernel.UUID
	City        string
	Street      string
	Area        string
	Coordinates *kernel.Coordinates
	IsDefault   bool
}

// Address is one of a user's saved addresses. At most one per user is the default.
type Address struct {
	id          kernel.UUID
	userID      kernel.UUID
	city        string
	street      string
	area        string
	coordinates *kernel.Coordinates
	isDefault   bool
}

// RestoreAddress rebuilds an Address. Coordinates are optional; when present they
// must have been built by kernel.NewCoordinates.
func RestoreAddress(s AddressSnapshot) (Address, error) {
	var coordinatesErr error
	if s.Coordinates != nil {
		coordinatesErr = s.Coordinates.Validate()
	}

	var userErr error
	if err := s.UserID.Validate(); err != nil {
		userErr = errs.NewValueIsRequiredErrorWithCause("user id", err)
	}

	if err := errors.Join(s.ID.Validate(), userErr, coordinatesErr); err != nil {
		return Address{}, err
	}

	a := Address{
		id:        s.ID,
		userID:    s.UserID,
		city:      strings.TrimSpace(s.City),
		street:    strings.TrimSpace(s.Street),
		area:      strings.TrimSpace(s.Area),
		isDefault: s.IsDefault,
	}
	if s.Coordinates != nil {
		c := *s.Coordinates
		a.coordinates = &c
	}
	return a, nil
}

func (a Address) ID() kernel.UUID {
	return a.id
}

func (a Address) UserID() kernel.UUID {
	return a.userID
}

func (a Address) City() string {
	return a.city
}

func (a Address) Street() string {
	return a.street
}

func (a Address) Area() string {
	return a.area
}

func (a Address) IsDefault() bool {
	return a.isDefault
}

// Coordinates returns the geocoded position, if the address has one.
func (a Address) Coordinates() (kernel.Coordinates, bool) {
	if a.coordinates == nil {
		return kernel.Coordinates{}, false
	}
	return *a.coordinates, true
}

// PrimaryAddress picks the user's default address, else the first one listed for
// that user. Addresses of other users are ignored.
func PrimaryAddress(userID kernel.UUID, addresses []Address) (Address, bool) {
	var first *Address
	for i := range addresses {
		if !addresses[i].userID.IsEqual(userID) {
			continue
		}
		if addresses[i].isDefault {
			return addresses[i], true
		}
		if first == nil {
			first = &addresses[i]
		}
	}
	if first == nil {
		return Address{}, false
	}
	return *first, true
}
