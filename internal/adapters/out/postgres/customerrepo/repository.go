package customerrepo

import (
	"context"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewGormCustomerRepository creates a new GORM customer repository.
func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// ListByIDs retrieves the listed users. Missing ids are skipped.
func (r *GormCustomerRepository) ListByIDs(ctx context.Context, ids []kernel.UUID) ([]customer.Customer, error) {
	if len(ids) == 0 {
		return []customer.Customer{}, nil
	}

	var dtos []UserDTO
	if err := r.db.WithContext(ctx).
		Select("id", "name", "phone", "avatar_url").
		Where("id IN ?", toRaw(ids)).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	customers := make([]customer.Customer, 0, len(dtos))
	for _, dto := range dtos {
		c, err := customerToDomain(dto)
		if err != nil {
			return nil, ports.NewStoredRecordError("users", dto.ID, err)
		}
		customers = append(customers, c)
	}
	return customers, nil
}

// GormAddressRepository implements ports.AddressRepository using GORM.
// Addresses come back in creation order so "first address" is stable.
type GormAddressRepository struct {
	db *gorm.DB
}

// NewGormAddressRepository creates a new GORM address repository.
func NewGormAddressRepository(db *gorm.DB) *GormAddressRepository {
	return &GormAddressRepository{db: db}
}

// ListByUserIDs retrieves every address of the listed users.
func (r *GormAddressRepository) ListByUserIDs(ctx context.Context, userIDs []kernel.UUID) ([]customer.Address, error) {
	if len(userIDs) == 0 {
		return []customer.Address{}, nil
	}
	return r.find(r.db.WithContext(ctx).Where("user_id IN ?", toRaw(userIDs)))
}

// ListByCity retrieves every address saved in city.
func (r *GormAddressRepository) ListByCity(ctx context.Context, city string) ([]customer.Address, error) {
	return r.find(r.db.WithContext(ctx).Where("city = ?", city))
}

func (r *GormAddressRepository) find(query *gorm.DB) ([]customer.Address, error) {
	var dtos []AddressDTO
	if err := query.Order("created_at, id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	addresses := make([]customer.Address, 0, len(dtos))
	for _, dto := range dtos {
		a, err := addressToDomain(dto)
		if err != nil {
			return nil, ports.NewStoredRecordError("addresses", dto.ID, err)
		}
		addresses = append(addresses, a)
	}
	return addresses, nil
}

func toRaw(ids []kernel.UUID) []uuid.UUID {
	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return raw
}
