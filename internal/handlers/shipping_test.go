package handlers

import (
	"testing"

	"mementa_back_end/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRates = models.ShippingRates{
	Standard:      5.99,
	Express:       12.99,
	NextDay:       19.99,
	FreeThreshold: 50.0,
}

func TestShippingBelowThreshold(t *testing.T) {
	calc := BuildShippingCalculation(30.0, testRates)

	assert.False(t, calc.IsFree)
	require.Len(t, calc.Options, 3)
	assert.Equal(t, 5.99, calc.Options[0].Price)
	assert.Equal(t, "Livraison Standard", calc.Options[0].Name)
	assert.Equal(t, 12.99, calc.Options[1].Price)
	assert.Equal(t, 19.99, calc.Options[2].Price)
}

func TestShippingFreeAtThreshold(t *testing.T) {
	calc := BuildShippingCalculation(50.0, testRates)

	assert.True(t, calc.IsFree)
	assert.Zero(t, calc.Options[0].Price)
	assert.Equal(t, "Livraison Standard Gratuite", calc.Options[0].Name)

	// Express et 24h restent payantes même au-dessus du seuil
	assert.Equal(t, 12.99, calc.Options[1].Price)
	assert.Equal(t, 19.99, calc.Options[2].Price)
}

func TestShippingAboveThreshold(t *testing.T) {
	calc := BuildShippingCalculation(120.0, testRates)

	assert.True(t, calc.IsFree)
	assert.Zero(t, calc.Options[0].Price)
	assert.Equal(t, 120.0, calc.CartTotal)
	assert.Equal(t, 50.0, calc.FreeThreshold)
}

func TestShippingEmptyCart(t *testing.T) {
	calc := BuildShippingCalculation(0, testRates)

	assert.False(t, calc.IsFree)
	assert.Equal(t, 5.99, calc.Options[0].Price)
}
