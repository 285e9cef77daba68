package postgres

import (
	"fooddelivery/internal/adapters/out/postgres/customerrepo"
	"fooddelivery/internal/adapters/out/postgres/orderrepo"
	"fooddelivery/internal/adapters/out/postgres/outboxrepo"
	"fooddelivery/internal/adapters/out/postgres/workerrepo"

	"gorm.io/gorm"
)

// Models lists every table the service reads or writes.
func Models() []any {
	return []any{
		&customerrepo.UserDTO{},
		&customerrepo.AddressDTO{},
		&workerrepo.DeliveryDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&outboxrepo.OrderEventDTO{},
	}
}

// Migrate creates or extends the schema with gorm's AutoMigrate.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
