package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateOrderTotal(t *testing.T) {
	items := []CartItem{
		{Name: "Mug personnalisé", Price: 22.50, Quantity: 2},
		{Name: "Coussin photo", Price: 15.00, Quantity: 1},
	}

	assert.NoError(t, ValidateOrderTotal(items, 60.00))

	// Tolérance au centime près
	assert.NoError(t, ValidateOrderTotal(items, 60.004))
	assert.Error(t, ValidateOrderTotal(items, 60.01))
	assert.Error(t, ValidateOrderTotal(items, 59.00))
}

func TestValidateOrderTotalRejectsBadQuantity(t *testing.T) {
	assert.Error(t, ValidateOrderTotal([]CartItem{{Name: "Mug", Price: 10, Quantity: 0}}, 0))
	assert.Error(t, ValidateOrderTotal([]CartItem{{Name: "Mug", Price: 10, Quantity: -1}}, -10))
}

func TestCanTransitionForwardOnly(t *testing.T) {
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusProcessing))
	assert.True(t, CanTransition(OrderStatusPending, OrderStatusCompleted))
	assert.True(t, CanTransition(OrderStatusProcessing, OrderStatusFailed))

	// Jamais de retour en arrière
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusFailed, OrderStatusPending))
	assert.False(t, CanTransition(OrderStatusProcessing, OrderStatusPending))

	// completed et failed ne se remplacent pas
	assert.False(t, CanTransition(OrderStatusCompleted, OrderStatusFailed))
	assert.False(t, CanTransition(OrderStatusFailed, OrderStatusCompleted))
}

func TestCanTransitionIdempotent(t *testing.T) {
	// Un webhook rejoué réapplique le même statut sans erreur
	for _, s := range []string{OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusFailed} {
		assert.True(t, CanTransition(s, s), s)
	}
}

func TestCanTransitionUnknownStatus(t *testing.T) {
	assert.False(t, CanTransition("shipped", OrderStatusCompleted))
	assert.False(t, CanTransition(OrderStatusPending, "refunded"))
}

func TestMapProcessorStatus(t *testing.T) {
	assert.Equal(t, OrderStatusCompleted, MapProcessorStatus("COMPLETED"))
	assert.Equal(t, OrderStatusFailed, MapProcessorStatus("FAILED"))
	assert.Equal(t, OrderStatusFailed, MapProcessorStatus("CANCELED"))
	assert.Equal(t, "approved", MapProcessorStatus("APPROVED"))
}
