package handlers

import (
	"net/http"

	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
)

// === POST /api/uploads/photo ===
//
// Upload direct d'une photo de personnalisation (avant ajout au panier).
// La validation complète (MIME, taille, extension, nom) se fait avant
// tout appel réseau vers MinIO.
func UploadPhoto(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	url, err := services.UploadCustomerPhoto(c.Request.Context(), fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "✅ Photo uploadée",
		"url":     url,
	})
}
