package queries_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"fooddelivery/internal/core/application/usecases/queries"
	"fooddelivery/internal/core/domain/model/customer"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/core/domain/model/worker"
	"fooddelivery/internal/core/ports"
	"fooddelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type listFixture struct {
	identity  *MockIdentityProvider
	workers   *MockWorkerRepository
	orders    *MockOrderRepository
	items     *MockOrderItemRepository
	customers *MockCustomerRepository
	addresses *MockAddressRepository
	handler   queries.ListWorkerOrdersQueryHandler
}

func newListFixture() *listFixture {
	return newListFixtureWithLog(io.Discard)
}

func newListFixtureWithLog(log io.Writer) *listFixture {
	f := &listFixture{
		identity:  new(MockIdentityProvider),
		workers:   new(MockWorkerRepository),
		orders:    new(MockOrderRepository),
		items:     new(MockOrderItemRepository),
		customers: new(MockCustomerRepository),
		addresses: new(MockAddressRepository),
	}
	f.handler = queries.NewListWorkerOrdersQueryHandler(f.identity, queries.Readers{
		Workers:   f.workers,
		Orders:    f.orders,
		Items:     f.items,
		Customers: f.customers,
		Addresses: f.addresses,
	}, slog.New(slog.NewTextHandler(log, nil)))
	return f
}

func (f *listFixture) assertExpectations(t *testing.T) {
	f.identity.AssertExpectations(t)
	f.workers.AssertExpectations(t)
	f.orders.AssertExpectations(t)
	f.items.AssertExpectations(t)
	f.customers.AssertExpectations(t)
	f.addresses.AssertExpectations(t)
}

func cityIs(city string) any {
	return mock.MatchedBy(func(filter ports.OrderFilter) bool {
		return filter.City == city && len(filter.Statuses) == 3
	})
}

func newWorker(t *testing.T, city string) worker.Worker {
	t.Helper()
	w, err := worker.RestoreWorker(kernel.NewUUID(), city)
	require.NoError(t, err)
	return w
}

func newOrder(t *testing.T, customerID kernel.UUID, city, address string, createdAt time.Time) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(order.Snapshot{
		ID:            kernel.NewUUID(),
		CustomerID:    customerID,
		Status:        order.ReadyForPickup,
		Total:         decimal.RequireFromString("149.50"),
		PaymentMethod: "cash",
		CreatedAt:     createdAt,
		Address:       address,
		City:          city,
	})
	require.NoError(t, err)
	return o
}

func newAddress(t *testing.T, userID kernel.UUID, street, area string, isDefault bool, lat, lon float64) customer.Address {
	t.Helper()
	coords, err := kernel.NewCoordinates(lat, lon)
	require.NoError(t, err)
	a, err := customer.RestoreAddress(customer.AddressSnapshot{
		ID:          kernel.NewUUID(),
		UserID:      userID,
		City:        "Cairo",
		Street:      street,
		Area:        area,
		Coordinates: &coords,
		IsDefault:   isDefault,
	})
	require.NoError(t, err)
	return a
}

func TestListWorkerOrdersQueryHandler_Handle_NotConstructed(t *testing.T) {
	f := newListFixture()

	_, err := f.handler.Handle(t.Context(), queries.ListWorkerOrdersQuery{})

	require.ErrorIs(t, err, queries.ErrListWorkerOrdersQueryIsNotConstructed)
	f.identity.AssertNotCalled(t, "CurrentUser", mock.Anything)
}

func TestListWorkerOrdersQueryHandler_Handle_NotAuthenticated(t *testing.T) {
	ctx := t.Context()
	f := newListFixture()
	f.identity.On("CurrentUser", ctx).Return(ports.Identity{}, errors.New("no token")).Once()

	result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.ErrorIs(t, err, ports.ErrUserNotAuthenticated)
	assert.EqualError(t, err, "User not authenticated")
	assert.Nil(t, result)
	f.workers.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestListWorkerOrdersQueryHandler_Handle_WorkerWithoutCity(t *testing.T) {
	testCases := []struct {
		name   string
		worker func(t *testing.T, id kernel.UUID) (worker.Worker, error)
	}{
		{
			name: "no deliveries row",
			worker: func(_ *testing.T, id kernel.UUID) (worker.Worker, error) {
				return worker.Worker{}, errs.NewObjectNotFoundError("worker", id)
			},
		},
		{
			name: "blank city",
			worker: func(t *testing.T, id kernel.UUID) (worker.Worker, error) {
				w, err := worker.RestoreWorker(id, "  ")
				require.NoError(t, err)
				return w, nil
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			f := newListFixture()
			callerID := kernel.NewUUID()
			w, wErr := tc.worker(t, callerID)

			f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: callerID, Role: worker.Role}, nil).Once()
			f.workers.On("Get", ctx, callerID).Return(w, wErr).Once()

			result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

			require.NoError(t, err)
			assert.NotNil(t, result)
			assert.Empty(t, result)
			f.orders.AssertNotCalled(t, "ListVisible", mock.Anything, mock.Anything)
			f.assertExpectations(t)
		})
	}
}

func TestListWorkerOrdersQueryHandler_Handle_WorkerLookupError(t *testing.T) {
	ctx := t.Context()
	f := newListFixture()
	callerID := kernel.NewUUID()

	f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: callerID}, nil).Once()
	f.workers.On("Get", ctx, callerID).Return(worker.Worker{}, errors.New("connection refused")).Once()

	_, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.EqualError(t, err, "connection refused")
}

func TestListWorkerOrdersQueryHandler_Handle_PrimaryCityMatch(t *testing.T) {
	ctx := t.Context()
	f := newListFixture()
	w := newWorker(t, "Cairo")
	now := time.Now()

	alice := kernel.NewUUID()
	bob := kernel.NewUUID()
	newer := newOrder(t, alice, "Cairo", "Road 9, Maadi", now)
	older := newOrder(t, bob, "Cairo", "Tahrir Sq", now.Add(-time.Hour))
	third := newOrder(t, alice, "Cairo", "Road 9, Maadi", now.Add(-2*time.Hour))

	burger, err := order.RestoreItem(newer.ID(), 2, "Burger", decimal.RequireFromString("50"))
	require.NoError(t, err)
	fries, err := order.RestoreItem(newer.ID(), 1, "Fries", decimal.RequireFromString("49.50"))
	require.NoError(t, err)
	tea, err := order.RestoreItem(older.ID(), 1, "Tea", decimal.RequireFromString("10"))
	require.NoError(t, err)

	aliceCustomer, err := customer.RestoreCustomer(alice, "Alice", "+201000", "")
	require.NoError(t, err)
	bobCustomer, err := customer.RestoreCustomer(bob, "Bob", "+202000", "")
	require.NoError(t, err)

	aliceFirst := newAddress(t, alice, "Road 9", "Maadi", false, 29.96, 31.25)
	aliceDefault := newAddress(t, alice, "Road 10", "Maadi", true, 29.97, 31.26)

	f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID(), Role: worker.Role}, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
	f.orders.On("ListVisible", ctx, cityIs("Cairo")).
		Return([]*order.Order{newer, older, third}, nil).Once()
	f.items.On("ListByOrderIDs", mock.Anything, []kernel.UUID{newer.ID(), older.ID(), third.ID()}).
		Return([]order.Item{burger, tea, fries}, nil).Once()
	f.customers.On("ListByIDs", mock.Anything, []kernel.UUID{alice, bob}).
		Return([]customer.Customer{aliceCustomer, bobCustomer}, nil).Once()
	f.addresses.On("ListByUserIDs", mock.Anything, []kernel.UUID{alice, bob}).
		Return([]customer.Address{aliceFirst, aliceDefault}, nil).Once()

	result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.True(t, newer.ID().IsEqual(result[0].ID))
	assert.True(t, older.ID().IsEqual(result[1].ID))
	assert.True(t, third.ID().IsEqual(result[2].ID))

	require.Len(t, result[0].Items, 2)
	assert.Equal(t, "Burger", result[0].Items[0].Title)
	assert.Equal(t, "Fries", result[0].Items[1].Title)
	require.Len(t, result[1].Items, 1)
	assert.NotNil(t, result[2].Items)
	assert.Empty(t, result[2].Items)

	require.NotNil(t, result[0].Customer)
	assert.Equal(t, "Alice", result[0].Customer.Name)
	require.NotNil(t, result[1].Customer)
	assert.Equal(t, "Bob", result[1].Customer.Name)

	require.NotNil(t, result[0].Location)
	assert.InDelta(t, 29.97, result[0].Location.Latitude(), 1e-9)
	assert.InDelta(t, 31.26, result[0].Location.Longitude(), 1e-9)
	assert.Nil(t, result[1].Location)

	f.addresses.AssertNotCalled(t, "ListByCity", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestListWorkerOrdersQueryHandler_Handle_FallbackAddressMatch(t *testing.T) {
	ctx := t.Context()
	f := newListFixture()
	w := newWorker(t, "Cairo")
	customerID := kernel.NewUUID()
	now := time.Now()

	nile := newOrder(t, customerID, "", "12 Nile St, Maadi", now)
	giza := newOrder(t, customerID, "", "Pyramids Rd, Giza", now.Add(-time.Minute))
	cairoAddress := newAddress(t, kernel.NewUUID(), "Nile St", "", false, 30.0, 31.2)

	f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID(), Role: worker.Role}, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
	mock.InOrder(
		f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return([]*order.Order{}, nil).Once(),
		f.orders.On("ListVisible", ctx, cityIs("")).Return([]*order.Order{nile, giza}, nil).Once(),
	)
	f.addresses.On("ListByCity", ctx, "Cairo").Return([]customer.Address{cairoAddress}, nil).Once()
	f.items.On("ListByOrderIDs", mock.Anything, []kernel.UUID{nile.ID()}).Return([]order.Item{}, nil).Once()
	f.customers.On("ListByIDs", mock.Anything, []kernel.UUID{customerID}).Return([]customer.Customer{}, nil).Once()
	f.addresses.On("ListByUserIDs", mock.Anything, []kernel.UUID{customerID}).Return([]customer.Address{}, nil).Once()

	result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.True(t, nile.ID().IsEqual(result[0].ID))
	assert.Equal(t, "12 Nile St, Maadi", result[0].Address)
	assert.Nil(t, result[0].Customer)
	assert.Nil(t, result[0].Location)
	f.assertExpectations(t)
}

func TestListWorkerOrdersQueryHandler_Handle_FallbackWithoutCandidates(t *testing.T) {
	ctx := t.Context()
	f := newListFixture()
	w := newWorker(t, "Giza")

	f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
	f.orders.On("ListVisible", ctx, mock.Anything).Return([]*order.Order{}, nil).Twice()

	result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.NoError(t, err)
	assert.Empty(t, result)
	f.addresses.AssertNotCalled(t, "ListByCity", mock.Anything, mock.Anything)
	f.items.AssertNotCalled(t, "ListByOrderIDs", mock.Anything, mock.Anything)
	f.assertExpectations(t)
}

func TestListWorkerOrdersQueryHandler_Handle_CustomerFailureDegrades(t *testing.T) {
	ctx := t.Context()
	var log bytes.Buffer
	f := newListFixtureWithLog(&log)
	w := newWorker(t, "Cairo")
	customerID := kernel.NewUUID()
	o := newOrder(t, customerID, "Cairo", "Road 9", time.Now())
	address := newAddress(t, customerID, "Road 9", "Maadi", false, 29.96, 31.25)

	f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
	f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
	f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return([]*order.Order{o}, nil).Once()
	f.items.On("ListByOrderIDs", mock.Anything, mock.Anything).Return([]order.Item{}, nil).Once()
	f.customers.On("ListByIDs", mock.Anything, mock.Anything).Return(nil, errors.New("permission denied")).Once()
	f.addresses.On("ListByUserIDs", mock.Anything, mock.Anything).Return([]customer.Address{address}, nil).Once()

	result, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Nil(t, result[0].Customer)
	assert.Contains(t, log.String(), "customer enrichment failed")
	require.NotNil(t, result[0].Location)
	assert.InDelta(t, 29.96, result[0].Location.Latitude(), 1e-9)
	f.assertExpectations(t)
}

func TestListWorkerOrdersQueryHandler_Handle_StoreErrors(t *testing.T) {
	t.Run("should propagate primary query failure", func(t *testing.T) {
		ctx := t.Context()
		f := newListFixture()
		w := newWorker(t, "Cairo")

		f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
		f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
		f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return(nil, errors.New("relation \"orders\" does not exist")).Once()

		_, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

		require.EqualError(t, err, "relation \"orders\" does not exist")
	})

	t.Run("should propagate address fallback failure", func(t *testing.T) {
		ctx := t.Context()
		f := newListFixture()
		w := newWorker(t, "Cairo")
		o := newOrder(t, kernel.NewUUID(), "", "12 Nile St", time.Now())

		f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
		f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
		f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return([]*order.Order{}, nil).Once()
		f.orders.On("ListVisible", ctx, cityIs("")).Return([]*order.Order{o}, nil).Once()
		f.addresses.On("ListByCity", ctx, "Cairo").Return(nil, errors.New("timeout")).Once()

		_, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

		require.EqualError(t, err, "timeout")
	})

	t.Run("should propagate items failure", func(t *testing.T) {
		ctx := t.Context()
		f := newListFixture()
		w := newWorker(t, "Cairo")
		o := newOrder(t, kernel.NewUUID(), "Cairo", "Road 9", time.Now())

		f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
		f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
		f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return([]*order.Order{o}, nil).Once()
		f.items.On("ListByOrderIDs", mock.Anything, mock.Anything).Return(nil, errors.New("items unavailable")).Once()
		f.customers.On("ListByIDs", mock.Anything, mock.Anything).Return([]customer.Customer{}, nil).Maybe()
		f.addresses.On("ListByUserIDs", mock.Anything, mock.Anything).Return([]customer.Address{}, nil).Maybe()

		_, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

		require.EqualError(t, err, "items unavailable")
	})

	t.Run("should not report customers cancelled by a failing fetch", func(t *testing.T) {
		ctx := t.Context()
		var log bytes.Buffer
		f := newListFixtureWithLog(&log)
		w := newWorker(t, "Cairo")
		o := newOrder(t, kernel.NewUUID(), "Cairo", "Road 9", time.Now())

		f.identity.On("CurrentUser", ctx).Return(ports.Identity{ID: w.ID()}, nil).Once()
		f.workers.On("Get", ctx, w.ID()).Return(w, nil).Once()
		f.orders.On("ListVisible", ctx, cityIs("Cairo")).Return([]*order.Order{o}, nil).Once()
		f.items.On("ListByOrderIDs", mock.Anything, mock.Anything).Return(nil, errors.New("items unavailable")).Once()
		f.customers.On("ListByIDs", mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) {
				<-args.Get(0).(context.Context).Done()
			}).
			Return(nil, context.Canceled).Once()
		f.addresses.On("ListByUserIDs", mock.Anything, mock.Anything).Return([]customer.Address{}, nil).Maybe()

		_, err := f.handler.Handle(ctx, queries.NewListWorkerOrdersQuery())

		require.EqualError(t, err, "items unavailable")
		assert.NotContains(t, log.String(), "customer enrichment failed")
	})
}
