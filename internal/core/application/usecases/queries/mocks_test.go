package queries_test

import (
	"context"

	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/worker"
	"fooddelivery/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockIdentityProvider struct{ mock.Mock }

func (m *MockIdentityProvider) CurrentUser(ctx context.Context) (ports.Identity, error) {
	args := m.Called(ctx)
	return args.Get(0).(ports.Identity), args.Error(1)
}

type MockWorkerRepository struct{ mock.Mock }

func (m *MockWorkerRepository) Get(ctx context.Context, userID kernel.UUID) (worker.Worker, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(worker.Worker), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ListVisible(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderRepository) ApplyStatusChange(
	ctx context.Context,
	id kernel.UUID,
	change order.StatusChange,
) (*order.Order, error) {
	args := m.Called(ctx, id, change)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockOrderItemRepository struct{ mock.Mock }

func (m *MockOrderItemRepository) ListByOrderIDs(ctx context.Context, ids []kernel.UUID) ([]order.Item, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.Item), args.Error(1)
}

type MockCustomerRepository struct{ mock.Mock }

func (m *MockCustomerRepository) ListByIDs(ctx context.Context, ids []kernel.UUID) ([]customer.Customer, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Customer), args.Error(1)
}

type MockAddressRepository struct{ mock.Mock }

func (m *MockAddressRepository) ListByUserIDs(ctx context.Context, ids []kernel.UUID) ([]customer.Address, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Address), args.Error(1)
}

func (m *MockAddressRepository) ListByCity(ctx context.Context, city string) ([]customer.Address, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]customer.Address), args.Error(1)
}
