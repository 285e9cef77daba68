package order_test

import (
	"testing"
	"time"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"
	"fooddelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStatusChange(t *testing.T) {
	workerID := kernel.NewUUID()

	testCases := []struct {
		name              string
		status            order.Status
		assignment        order.Assignment
		requiresOwnership bool
	}{
		{"claim", order.OutForDelivery, order.StampWorker, true},
		{"complete", order.Delivered, order.StampWorker, true},
		{"release", order.ReadyForPickup, order.ClearWorker, false},
		{"kitchen status", order.Preparing, order.KeepAssignment, false},
		{"cancel", order.Cancelled, order.KeepAssignment, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			change, err := order.NewStatusChange(tc.status, workerID)

			require.NoError(t, err)
			require.NoError(t, change.Validate())
			assert.Equal(t, tc.status, change.Status())
			assert.True(t, workerID.IsEqual(change.WorkerID()))
			assert.Equal(t, tc.assignment, change.Assignment())
			assert.Equal(t, tc.requiresOwnership, change.RequiresOwnership())
		})
	}
}

func TestNewStatusChange_InvalidInput(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, err := order.NewStatusChange(order.Unknown, kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("missing worker", func(t *testing.T) {
		_, err := order.NewStatusChange(order.OutForDelivery, kernel.UUID{})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("zero value", func(t *testing.T) {
		require.ErrorIs(t, order.StatusChange{}.Validate(), order.ErrStatusChangeIsNotConstructed)
	})
}

func TestStatusChange_DeliveryID(t *testing.T) {
	workerID := kernel.NewUUID()

	claim, _ := order.NewStatusChange(order.OutForDelivery, workerID)
	id, writes := claim.DeliveryID()
	assert.True(t, writes)
	require.NotNil(t, id)
	assert.True(t, workerID.IsEqual(*id))

	release, _ := order.NewStatusChange(order.ReadyForPickup, workerID)
	id, writes = release.DeliveryID()
	assert.True(t, writes)
	assert.Nil(t, id)

	prep, _ := order.NewStatusChange(order.Preparing, workerID)
	id, writes = prep.DeliveryID()
	assert.False(t, writes)
	assert.Nil(t, id)
}

func TestStatusChange_CanApplyTo(t *testing.T) {
	workerA := kernel.NewUUID()
	workerB := kernel.NewUUID()

	restore := func(status order.Status, deliveryID *kernel.UUID) *order.Order {
		s := validSnapshot()
		s.Status = status
		s.DeliveryID = deliveryID
		o, err := order.RestoreOrder(s)
		require.NoError(t, err)
		return o
	}

	claimByA, _ := order.NewStatusChange(order.OutForDelivery, workerA)
	claimByB, _ := order.NewStatusChange(order.OutForDelivery, workerB)
	releaseByB, _ := order.NewStatusChange(order.ReadyForPickup, workerB)

	require.NoError(t, claimByA.CanApplyTo(restore(order.ReadyForPickup, nil)))
	require.NoError(t, claimByA.CanApplyTo(restore(order.OutForDelivery, &workerA)))

	err := claimByB.CanApplyTo(restore(order.OutForDelivery, &workerA))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "claimed by another worker")

	require.NoError(t, releaseByB.CanApplyTo(restore(order.OutForDelivery, &workerA)),
		"release does not check ownership")

	err = releaseByB.CanApplyTo(restore(order.Delivered, &workerA))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is delivered")

	require.ErrorIs(t, claimByA.CanApplyTo(&order.Order{}), order.ErrOrderIsNotConstructed)
}

func TestStatusChange_IsRepeatedOn(t *testing.T) {
	workerA := kernel.NewUUID()
	workerB := kernel.NewUUID()

	restore := func(status order.Status, deliveryID *kernel.UUID) *order.Order {
		s := validSnapshot()
		s.Status = status
		s.DeliveryID = deliveryID
		o, err := order.RestoreOrder(s)
		require.NoError(t, err)
		return o
	}

	deliverByA, _ := order.NewStatusChange(order.Delivered, workerA)
	deliverByB, _ := order.NewStatusChange(order.Delivered, workerB)
	releaseByA, _ := order.NewStatusChange(order.ReadyForPickup, workerA)

	assert.True(t, deliverByA.IsRepeatedOn(restore(order.Delivered, &workerA)))
	assert.False(t, deliverByB.IsRepeatedOn(restore(order.Delivered, &workerA)), "another worker's delivery")
	assert.False(t, deliverByA.IsRepeatedOn(restore(order.Delivered, nil)), "unowned delivery")
	assert.False(t, deliverByA.IsRepeatedOn(restore(order.OutForDelivery, &workerA)), "not delivered yet")
	assert.False(t, releaseByA.IsRepeatedOn(restore(order.Delivered, &workerA)), "leaving delivered")
	assert.False(t, deliverByA.IsRepeatedOn(&order.Order{}))
	assert.False(t, order.StatusChange{}.IsRepeatedOn(restore(order.Delivered, &workerA)))
}

func TestNewStatusChangedEvent(t *testing.T) {
	workerID := kernel.NewUUID()
	s := validSnapshot()
	s.Status = order.OutForDelivery
	s.DeliveryID = &workerID
	o, err := order.RestoreOrder(s)
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 14, 0, 0, 0, time.FixedZone("EET", 2*3600))
	event := order.NewStatusChangedEvent(o, at)

	require.NoError(t, event.EventID.Validate())
	assert.True(t, o.ID().IsEqual(event.OrderID))
	assert.Equal(t, order.OutForDelivery, event.Status)
	require.NotNil(t, event.DeliveryID)
	assert.True(t, workerID.IsEqual(*event.DeliveryID))
	assert.Equal(t, time.UTC, event.OccurredAt.Location())
	assert.True(t, at.Equal(event.OccurredAt))
}
