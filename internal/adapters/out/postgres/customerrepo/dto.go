// Package customerrepo reads customers from the users table and their saved
// addresses from the addresses table.
package customerrepo

import (
	"fmt"
	"time"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// UserDTO is the part of a users row this service reads.
type UserDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Phone     *string   `gorm:"type:varchar(32)"`
	AvatarURL *string   `gorm:"type:text"`
	Role      string    `gorm:"type:varchar(32);not null;default:customer"`
}

// TableName specifies the database table name for users.
func (UserDTO) TableName() string {
	return "users"
}

// AddressDTO is a row of the addresses table. Latitude and longitude are NULL
// until the address has been geocoded.
type AddressDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	City      *string   `gorm:"type:varchar(128);index"`
	Street    *string   `gorm:"type:varchar(255)"`
	Area      *string   `gorm:"type:varchar(255)"`
	Latitude  *float64  `gorm:"type:double precision"`
	Longitude *float64  `gorm:"type:double precision"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the database table name for addresses.
func (AddressDTO) TableName() string {
	return "addresses"
}

func customerToDomain(dto UserDTO) (customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return customer.Customer{}, err
	}
	return customer.RestoreCustomer(id, dto.Name, deref(dto.Phone), deref(dto.AvatarURL))
}

// addressToDomain drops half-filled coordinates: an address is located only when
// both latitude and longitude are present.
func addressToDomain(dto AddressDTO) (customer.Address, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return customer.Address{}, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return customer.Address{}, err
	}

	var coords *kernel.Coordinates
	if dto.Latitude != nil && dto.Longitude != nil {
		c, coordsErr := kernel.NewCoordinates(*dto.Latitude, *dto.Longitude)
		if coordsErr != nil {
			return customer.Address{}, fmt.Errorf("coordinates: %w", coordsErr)
		}
		coords = &c
	}

	return customer.RestoreAddress(customer.AddressSnapshot{
		ID:          id,
		UserID:      userID,
		City:        deref(dto.City),
		Street:      deref(dto.Street),
		Area:        deref(dto.Area),
		Coordinates: coords,
		IsDefault:   dto.IsDefault,
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
