package ports

import (
	"context"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
)

// CustomerRepository reads the customer projection of users.
type CustomerRepository interface {
	ListByIDs(ctx context.Context, ids []kernel.UUID) ([]customer.Customer, error)
}

// AddressRepository reads saved addresses.
type AddressRepository interface {
	// ListByUserIDs returns every address of the listed users.
	ListByUserIDs(ctx context.Context, userIDs []kernel.UUID) ([]customer.Address, error)

	// ListByCity returns every address whose city equals city exactly.
	ListByCity(ctx context.Context, city string) ([]customer.Address, error)
}
