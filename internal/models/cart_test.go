package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesSameName(t *testing.T) {
	cart := &Cart{}

	cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1})
	merged := cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1})

	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, merged.Quantity)
	assert.Equal(t, 2, cart.Items[0].Quantity)
}

func TestCartAddDifferentNames(t *testing.T) {
	cart := &Cart{}

	cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1})
	cart.Add(CartItem{Name: "Coussin photo", Price: 15.00, Quantity: 1})

	require.Len(t, cart.Items, 2)
	assert.NotEmpty(t, cart.Items[0].ID)
	assert.NotEmpty(t, cart.Items[1].ID)
	assert.NotEqual(t, cart.Items[0].ID, cart.Items[1].ID)
}

func TestCartTotal(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 2})
	cart.Add(CartItem{Name: "Coussin photo", Price: 15.00, Quantity: 1})

	assert.InDelta(t, 60.00, cart.Total(), 0.001)
	assert.Equal(t, 3, cart.Count())
}

func TestCartSetQuantity(t *testing.T) {
	cart := &Cart{}
	item := cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1})

	require.True(t, cart.SetQuantity(item.ID, 5))
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Quantité nulle ou négative = suppression de la ligne
	require.True(t, cart.SetQuantity(item.ID, 0))
	assert.Empty(t, cart.Items)

	assert.False(t, cart.SetQuantity("inconnu", 3))
}

func TestCartRemove(t *testing.T) {
	cart := &Cart{}
	a := cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1})
	cart.Add(CartItem{Name: "Coussin photo", Price: 15.00, Quantity: 1})

	require.True(t, cart.Remove(a.ID))
	require.Len(t, cart.Items, 1)
	assert.Equal(t, "Coussin photo", cart.Items[0].Name)

	assert.False(t, cart.Remove(a.ID))
}

func TestCartAttachPhoto(t *testing.T) {
	cart := &Cart{}
	item := cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 1, UploadLater: true})

	require.True(t, cart.AttachPhoto(item.ID, "chat.jpg", "http://cdn.local/photos/abc.jpg"))
	assert.Equal(t, "chat.jpg", cart.Items[0].PhotoName)
	assert.Equal(t, "http://cdn.local/photos/abc.jpg", cart.Items[0].PhotoURL)
	assert.False(t, cart.Items[0].UploadLater)

	assert.False(t, cart.AttachPhoto("inconnu", "x.jpg", "http://x"))
}

func TestCartClear(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 2})

	cart.Clear()
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.Total())
}

func TestCartSnapshotRoundTrip(t *testing.T) {
	cart := &Cart{}
	cart.Add(CartItem{Name: "Mug personnalisé", Price: 22.50, Quantity: 2, PhotoURL: "http://cdn.local/p.jpg"})

	data, err := json.Marshal(cart)
	require.NoError(t, err)

	var restored Cart
	require.NoError(t, json.Unmarshal(data, &restored))
	assert.Equal(t, cart.Items, restored.Items)
}
