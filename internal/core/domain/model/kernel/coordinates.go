package kernel

import (
	"errors"
	"fmt"

	"fooddelivery/internal/pkg/errs"
	"fooddelivery/internal/pkg/guard"
)

const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// ErrCoordinatesAreNotConstructed is returned when a zero Coordinates value is used.
var ErrCoordinatesAreNotConstructed = errs.NewValueIsRequiredError(
	"coordinates must be created via NewCoordinates constructor")

// Coordinates is a WGS84 latitude/longitude pair in decimal degrees.
//
// Example:
//
//	pos, err := kernel.NewCoordinates(30.0444, 31.2357)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(pos) // Coordinates(30.044400,31.235700)
type Coordinates struct { //nolint:recvcheck // setters need pointer receivers
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewCoordinates validates both components and returns every range violation at once.
func NewCoordinates(latitude, longitude float64) (Coordinates, error) {
	c := Coordinates{guard: guard.NewConstructorGuard()}

	if err := errors.Join(c.setLatitude(latitude), c.setLongitude(longitude)); err != nil {
		return Coordinates{}, err
	}

	return c, nil
}

// Validate fails for the zero value.
func (c Coordinates) Validate() error {
	return c.guard.Validate(ErrCoordinatesAreNotConstructed)
}

func (c Coordinates) Latitude() float64 {
	return c.latitude
}

func (c Coordinates) Longitude() float64 {
	return c.longitude
}

func (c Coordinates) String() string {
	return fmt.Sprintf("Coordinates(%f,%f)", c.latitude, c.longitude)
}

// IsEqual compares two constructed values component-wise.
func (c Coordinates) IsEqual(other Coordinates) (bool, error) {
	if err := errors.Join(c.Validate(), other.Validate()); err != nil {
		return false, err
	}
	return c.latitude == other.latitude && c.longitude == other.longitude, nil
}

func (c *Coordinates) setLatitude(v float64) error {
	if v < MinLatitude || v > MaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", v, MinLatitude, MaxLatitude)
	}
	c.latitude = v
	return nil
}

func (c *Coordinates) setLongitude(v float64) error {
	if v < MinLongitude || v > MaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", v, MinLongitude, MaxLongitude)
	}
	c.longitude = v
	return nil
}
