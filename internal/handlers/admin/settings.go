package admin

import (
	"net/http"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/database"
	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// Réglages boutique : tarifs de livraison, identité visuelle, textes.
// Les clés sensibles (credentials processeur) restent en variables
// d'environnement et ne passent jamais par cette table.

var protectedSettingKeys = map[string]bool{
	"processor_access_token":  true,
	"processor_signature_key": true,
}

// GetSettings retourne tous les réglages boutique
func GetSettings(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query("SELECT key, value FROM settings").Iter()

	settings := map[string]string{}
	var key, value string
	for iter.Scan(&key, &value) {
		if !protectedSettingKeys[key] {
			settings[key] = value
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture réglages"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"settings": settings})
}

// UpdateSettings enregistre un lot de réglages
func UpdateSettings(c *gin.Context) {
	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(input) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun réglage fourni"})
		return
	}

	for key, value := range input {
		if protectedSettingKeys[key] {
			c.JSON(http.StatusForbidden, gin.H{"error": "Réglage protégé: " + key})
			return
		}
		if err := cache.SetSetting(key, value); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement réglage: " + key})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "✅ Réglages enregistrés", "updated": len(input)})
}

// UploadLogo remplace le logo de la boutique (5 Mo max)
func UploadLogo(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	url, err := services.UploadLogo(c.Request.Context(), fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := cache.SetSetting("logo_url", url); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Logo uploadé mais réglage non enregistré"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "🪣 Logo mis à jour",
		"url":     url,
	})
}
