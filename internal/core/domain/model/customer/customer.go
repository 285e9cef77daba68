package customer

import (
	"fooddelivery/internal/core/domain/model/kernel"
)

// Customer is the subset of a user row shown to the delivery worker.
type Customer struct {
	id        kernel.UUID
	name      string
	phone     string
	avatarURL string
}

// RestoreCustomer rebuilds a Customer from a users row.
func RestoreCustomer(id kernel.UUID, name, phone, avatarURL string) (Customer, error) {
	if err := id.Validate(); err != nil {
		return Customer{}, err
	}
	return Customer{
		id:        id,
		name:      name,
		phone:     phone,
		avatarURL: avatarURL,
	}, nil
}

func (c Customer) ID() kernel.UUID {
	return c.id
}

func (c Customer) Name() string {
	return c.name
}

func (c Customer) Phone() string {
	return c.phone
}

func (c Customer) AvatarURL() string {
	return c.avatarURL
}
