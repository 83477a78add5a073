package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

//
// --- VITRINE : PRODUITS ---
//

// GET /api/products
func GetAllProducts(c *gin.Context) {
	ctx := context.Background()
	cacheKey := "products:all"

	// ✅ Vérifie le cache Redis
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil && val != "" {
		var cached []models.Product
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT product_id, name, description, price, image_urls, tags, occasion_id, personalizable, active, created_at, updated_at FROM products`).Iter()

	products := []models.Product{}
	var p models.Product
	for iter.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.ImageURLs, &p.Tags,
		&p.OccasionID, &p.Personalizable, &p.Active, &p.CreatedAt, &p.UpdatedAt) {
		if p.Active {
			products = append(products, p)
		}
		p = models.Product{} // Reset pour la prochaine itération
	}

	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture produits: " + err.Error()})
		return
	}

	// ✅ Met en cache
	if data, err := json.Marshal(products); err == nil {
		database.RedisClient.Set(ctx, cacheKey, data, time.Hour)
	}

	c.JSON(http.StatusOK, products)
}

// GET /api/products/:id
func GetProductByID(c *gin.Context) {
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

	var p models.Product
	p.ID = gocql.UUID(productID)
	err = session.Query(`SELECT name, description, price, image_urls, tags, occasion_id, personalizable, active, created_at, updated_at
		FROM products WHERE product_id = ?`, p.ID).Scan(
		&p.Name, &p.Description, &p.Price, &p.ImageURLs, &p.Tags,
		&p.OccasionID, &p.Personalizable, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil || !p.Active {
		c.JSON(http.StatusNotFound, gin.H{"error": "Produit introuvable"})
		return
	}

	c.JSON(http.StatusOK, p)
}

// GET /api/products/search?q=
func SearchProducts(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "paramètre 'q' manquant"})
		return
	}

	// 🔎 Recherche Elasticsearch
	results, err := services.SearchProducts(query)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"results": []interface{}{}, "message": "Aucun résultat"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

//
// --- VITRINE : CONTENUS ---
//

// GET /api/blog — articles publiés uniquement
func GetBlogPosts(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT post_id, title, slug, body, image_url, published, created_at, updated_at FROM blog_posts`).Iter()

	posts := []models.BlogPost{}
	var post models.BlogPost
	for iter.Scan(&post.ID, &post.Title, &post.Slug, &post.Body, &post.ImageURL,
		&post.Published, &post.CreatedAt, &post.UpdatedAt) {
		if post.Published {
			posts = append(posts, post)
		}
		post = models.BlogPost{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GET /api/events
func GetEvents(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT event_id, title, description, location, starts_at, ends_at, image_url, created_at, updated_at FROM events`).Iter()

	events := []models.Event{}
	var ev models.Event
	for iter.Scan(&ev.ID, &ev.Title, &ev.Description, &ev.Location, &ev.StartsAt,
		&ev.EndsAt, &ev.ImageURL, &ev.CreatedAt, &ev.UpdatedAt) {
		events = append(events, ev)
		ev = models.Event{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture événements"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"events": events})
}

// GET /api/occasions
func GetOccasions(c *gin.Context) {
	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT occasion_id, name, slug, image_url, position, created_at, updated_at FROM occasions`).Iter()

	occasions := []models.Occasion{}
	var oc models.Occasion
	for iter.Scan(&oc.ID, &oc.Name, &oc.Slug, &oc.ImageURL, &oc.Position,
		&oc.CreatedAt, &oc.UpdatedAt) {
		occasions = append(occasions, oc)
		oc = models.Occasion{}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture occasions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"occasions": occasions})
}
