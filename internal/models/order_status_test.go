package models_test

import (
	"testing"

	"bakehouse/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_HappyPath(t *testing.T) {
	status := models.OrderStatusPending

	for _, next := range []models.OrderStatus{
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
		models.OrderStatusDelivered,
	} {
		var err error
		status, err = status.Transition(next)
		assert.NoError(t, err)
		assert.Equal(t, next, status)
	}
	assert.True(t, status.Terminal())
}

func TestOrderStatus_IllegalTransitions(t *testing.T) {
	cases := []struct {
		from, to models.OrderStatus
	}{
		{models.OrderStatusDelivered, models.OrderStatusPending},
		{models.OrderStatusPending, models.OrderStatusReady},
		{models.OrderStatusPending, models.OrderStatusDelivered},
		{models.OrderStatusReady, models.OrderStatusConfirmed},
		{models.OrderStatusCancelled, models.OrderStatusPending},
		{models.OrderStatusCancelled, models.OrderStatusConfirmed},
	}
	for _, tc := range cases {
		got, err := tc.from.Transition(tc.to)
		assert.Error(t, err, "expected %s -> %s to be rejected", tc.from, tc.to)
		assert.Equal(t, tc.from, got) // status unchanged on rejection
	}
}

func TestOrderStatus_CancellableFromNonTerminal(t *testing.T) {
	for _, from := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusPreparing,
		models.OrderStatusReady,
	} {
		got, err := from.Transition(models.OrderStatusCancelled)
		assert.NoError(t, err, "expected %s to be cancellable", from)
		assert.Equal(t, models.OrderStatusCancelled, got)
	}

	_, err := models.OrderStatusDelivered.Transition(models.OrderStatusCancelled)
	assert.Error(t, err)
}

func TestOrderStatus_UnknownStatusRejected(t *testing.T) {
	_, err := models.OrderStatusPending.Transition(models.OrderStatus("shipped"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown order status")

	assert.False(t, models.OrderStatus("shipped").Valid())
	assert.True(t, models.OrderStatusPending.Valid())
}

func TestOrderStatus_NextStatuses(t *testing.T) {
	assert.ElementsMatch(t,
		[]models.OrderStatus{models.OrderStatusConfirmed, models.OrderStatusCancelled},
		models.OrderStatusPending.NextStatuses())
	assert.Empty(t, models.OrderStatusDelivered.NextStatuses())
	assert.Empty(t, models.OrderStatusCancelled.NextStatuses())
}

func TestMessageStatus_ForwardOnly(t *testing.T) {
	// new → read → replied → resolved
	status := models.MessageStatusNew
	for _, next := range []models.MessageStatus{
		models.MessageStatusRead,
		models.MessageStatusReplied,
		models.MessageStatusResolved,
	} {
		var err error
		status, err = status.Transition(next)
		assert.NoError(t, err)
	}

	// An admin can reply without opening first
	got, err := models.MessageStatusNew.Transition(models.MessageStatusReplied)
	assert.NoError(t, err)
	assert.Equal(t, models.MessageStatusReplied, got)

	// No moving backwards
	_, err = models.MessageStatusResolved.Transition(models.MessageStatusNew)
	assert.Error(t, err)
	_, err = models.MessageStatusReplied.Transition(models.MessageStatusRead)
	assert.Error(t, err)
}

func TestMessagePriority_Valid(t *testing.T) {
	assert.True(t, models.PriorityLow.Valid())
	assert.True(t, models.PriorityMedium.Valid())
	assert.True(t, models.PriorityHigh.Valid())
	assert.False(t, models.MessagePriority("urgent").Valid())
}
