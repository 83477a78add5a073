package admin

import (
	"net/http"
	"time"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// CreateProduct ajoute un produit au catalogue
func CreateProduct(c *gin.Context) {
	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if p.Name == "" || p.Price <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et prix positif requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	p.ID = gocql.TimeUUID()
	p.Active = true
	now := time.Now()
	p.CreatedAt = &now
	p.UpdatedAt = &now

	query := `INSERT INTO products (product_id, name, description, price, image_urls, tags, occasion_id, personalizable, active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := session.Query(query, p.ID, p.Name, p.Description, p.Price, p.ImageURLs, p.Tags,
		p.OccasionID, p.Personalizable, p.Active, p.CreatedAt, p.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création produit: " + err.Error()})
		return
	}

	// 🔄 Indexation Elasticsearch + invalidation du cache vitrine
	go services.IndexProduct(p)
	cache.DeleteCache("products:all")

	c.JSON(http.StatusOK, p)
}

// UpdateProduct modifie un produit existant
func UpdateProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var p models.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p.ID = gocql.UUID(productID)
	now := time.Now()
	p.UpdatedAt = &now

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Vérifie que le produit existe
	var existing string
	if err := session.Query("SELECT name FROM products WHERE product_id = ?", p.ID).Scan(&existing); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	query := `UPDATE products SET name = ?, description = ?, price = ?, image_urls = ?, tags = ?, occasion_id = ?, personalizable = ?, active = ?, updated_at = ? WHERE product_id = ?`
	if err := session.Query(query, p.Name, p.Description, p.Price, p.ImageURLs, p.Tags,
		p.OccasionID, p.Personalizable, p.Active, p.UpdatedAt, p.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour produit"})
		return
	}

	go services.IndexProduct(p)
	cache.DeleteCache("products:all")

	c.JSON(http.StatusOK, p)
}

// DeleteProduct retire un produit du catalogue et de l'index
func DeleteProduct(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM products WHERE product_id = ?", gocql.UUID(productID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression produit"})
		return
	}

	go services.RemoveProductFromIndex(productID.String())
	cache.DeleteCache("products:all")

	c.JSON(http.StatusOK, gin.H{"message": "🗑️ Produit supprimé avec succès"})
}

// UploadProductImage attache une image à un produit du catalogue
func UploadProductImage(c *gin.Context) {
	productID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

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

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("UPDATE products SET image_urls = image_urls + ?, updated_at = ? WHERE product_id = ?",
		[]string{url}, time.Now(), gocql.UUID(productID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur enregistrement image"})
		return
	}

	cache.DeleteCache("products:all")

	c.JSON(http.StatusOK, gin.H{
		"message": "✅ Image uploadée et liée au produit",
		"url":     url,
	})
}
