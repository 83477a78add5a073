package handlers

import (
	"net/http"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// cartOwner résout le propriétaire du panier : l'utilisateur connecté,
// sinon un identifiant anonyme posé en cookie (checkout invité).
func cartOwner(c *gin.Context) string {
	if userID := c.GetString("user_id"); userID != "" {
		return userID
	}

	if cookie, err := c.Cookie("mementa_cart"); err == nil && cookie != "" {
		return cookie
	}

	id := uuid.NewString()
	c.SetCookie("mementa_cart", id, 30*24*3600, "/", "", false, true)
	return id
}

//
// 🛒 GET /api/cart
//
func GetCart(c *gin.Context) {
	cart := cache.GetCart(cartOwner(c))
	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

//
// 🟢 POST /api/cart/items
//
func AddToCart(c *gin.Context) {
	var input struct {
		ProductID   string `json:"product_id"`
		Quantity    int    `json:"quantity"`
		UploadLater bool   `json:"upload_later"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	if input.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Quantité invalide"})
		return
	}

	// 🧩 Récupération du produit depuis ScyllaDB (prix et nom font foi)
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	productID, err := uuid.Parse(input.ProductID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID produit invalide"})
		return
	}

	var (
		name      string
		price     float64
		imageURLs []string
		active    bool
	)
	err = session.Query(`SELECT name, price, image_urls, active FROM products WHERE product_id = ?`,
		gocql.UUID(productID)).Scan(&name, &price, &imageURLs, &active)
	if err != nil || !active {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	// 🖼️ Première image pour l'aperçu panier
	imageURL := ""
	if len(imageURLs) > 0 {
		imageURL = imageURLs[0]
	}

	owner := cartOwner(c)
	cart := cache.GetCart(owner)
	cart.Add(models.CartItem{
		ProductID:   input.ProductID,
		Name:        name,
		Price:       price,
		Quantity:    input.Quantity,
		ImageURL:    imageURL,
		UploadLater: input.UploadLater,
	})

	if err := cache.SaveCart(owner, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit ajouté au panier",
		"items":   cart.Items,
		"total":   cart.Total(),
		"count":   cart.Count(),
	})
}

//
// 🔁 PATCH /api/cart/items/:id — quantité ≤ 0 supprime la ligne
//
func UpdateCartItem(c *gin.Context) {
	var input struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	owner := cartOwner(c)
	cart := cache.GetCart(owner)

	if !cart.SetQuantity(c.Param("id"), input.Quantity) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}

	if err := cache.SaveCart(owner, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": cart.Items,
		"total": cart.Total(),
		"count": cart.Count(),
	})
}

//
// ❌ DELETE /api/cart/items/:id
//
func RemoveFromCart(c *gin.Context) {
	owner := cartOwner(c)
	cart := cache.GetCart(owner)

	if !cart.Remove(c.Param("id")) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}

	if err := cache.SaveCart(owner, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Produit supprimé du panier",
		"items":   cart.Items,
	})
}

//
// 📷 POST /api/cart/items/:id/photo — attache une photo de personnalisation
//
func AttachCartPhoto(c *gin.Context) {
	owner := cartOwner(c)
	cart := cache.GetCart(owner)

	itemID := c.Param("id")
	found := false
	for _, item := range cart.Items {
		if item.ID == itemID {
			found = true
			break
		}
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Article introuvable dans le panier"})
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier reçu"})
		return
	}

	// Validation + upload. Pas de retry : en cas d'échec l'utilisateur
	// re-sélectionne son fichier.
	url, err := services.UploadCustomerPhoto(c.Request.Context(), fileHeader)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cart.AttachPhoto(itemID, fileHeader.Filename, url)

	if err := cache.SaveCart(owner, cart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur sauvegarde panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Photo ajoutée à l'article",
		"photo_url": url,
		"items":     cart.Items,
	})
}

//
// 🧹 DELETE /api/cart
//
func ClearCart(c *gin.Context) {
	if err := cache.DeleteCart(cartOwner(c)); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors du vidage du panier"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Panier vidé avec succès",
	})
}
