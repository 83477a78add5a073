package handlers

import (
	"net/http"
	"strconv"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/models"

	"github.com/gin-gonic/gin"
)

// Tarifs par défaut si rien n'est configuré dans les réglages
var defaultRates = models.ShippingRates{
	Standard:      5.99,
	Express:       12.99,
	NextDay:       19.99,
	FreeThreshold: 50.0,
}

// GetShippingOptions retourne les options de livraison disponibles
func GetShippingOptions(c *gin.Context) {
	var cartTotal float64
	if total := c.Query("cart_total"); total != "" {
		if n, err := strconv.ParseFloat(total, 64); err == nil {
			cartTotal = n
		}
	}

	c.JSON(http.StatusOK, BuildShippingCalculation(cartTotal, loadShippingRates()))
}

// loadShippingRates lit les tarifs depuis les réglages boutique
func loadShippingRates() models.ShippingRates {
	rates := defaultRates
	if v, err := cache.GetSetting("shipping_rate_standard"); err == nil {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			rates.Standard = n
		}
	}
	if v, err := cache.GetSetting("shipping_rate_express"); err == nil {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			rates.Express = n
		}
	}
	if v, err := cache.GetSetting("shipping_rate_next_day"); err == nil {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			rates.NextDay = n
		}
	}
	if v, err := cache.GetSetting("shipping_free_threshold"); err == nil {
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			rates.FreeThreshold = n
		}
	}
	return rates
}

// BuildShippingCalculation applique le seuil de livraison gratuite
func BuildShippingCalculation(cartTotal float64, rates models.ShippingRates) models.ShippingCalculation {
	isFree := cartTotal >= rates.FreeThreshold

	options := []models.ShippingOption{
		{
			ID:            "standard",
			Name:          "Livraison Standard",
			Description:   "Livraison en 5-7 jours ouvrés",
			Price:         rates.Standard,
			EstimatedDays: 7,
		},
		{
			ID:            "express",
			Name:          "Livraison Express",
			Description:   "Livraison en 2-3 jours ouvrés",
			Price:         rates.Express,
			EstimatedDays: 3,
		},
		{
			ID:            "next_day",
			Name:          "Livraison 24h",
			Description:   "Livraison le lendemain avant 18h",
			Price:         rates.NextDay,
			EstimatedDays: 1,
		},
	}

	// Si livraison gratuite, l'option standard passe à 0
	if isFree {
		options[0].Price = 0
		options[0].Name = "Livraison Standard Gratuite"
	}

	return models.ShippingCalculation{
		Options:       options,
		FreeThreshold: rates.FreeThreshold,
		CartTotal:     cartTotal,
		IsFree:        isFree,
	}
}
