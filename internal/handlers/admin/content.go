package admin

import (
	"net/http"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

// Gestion des contenus éditoriaux : blog, événements, occasions.

// ================== BLOG ==================

func CreateBlogPost(c *gin.Context) {
	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if post.Title == "" || post.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titre et slug requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	post.ID = gocql.TimeUUID()
	now := time.Now()
	post.CreatedAt = &now
	post.UpdatedAt = &now

	if err := session.Query(`INSERT INTO blog_posts (post_id, title, slug, body, image_url, published, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		post.ID, post.Title, post.Slug, post.Body, post.ImageURL, post.Published, post.CreatedAt, post.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création article"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func UpdateBlogPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID article invalide"})
		return
	}

	var post models.BlogPost
	if err := c.ShouldBindJSON(&post); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	post.ID = gocql.UUID(postID)
	now := time.Now()
	post.UpdatedAt = &now

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE blog_posts SET title = ?, slug = ?, body = ?, image_url = ?, published = ?, updated_at = ? WHERE post_id = ?`,
		post.Title, post.Slug, post.Body, post.ImageURL, post.Published, post.UpdatedAt, post.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour article"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func DeleteBlogPost(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID article invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM blog_posts WHERE post_id = ?", gocql.UUID(postID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression article"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "🗑️ Article supprimé"})
}

// ================== ÉVÉNEMENTS ==================

func CreateEvent(c *gin.Context) {
	var ev models.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if ev.Title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Titre requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	ev.ID = gocql.TimeUUID()
	now := time.Now()
	ev.CreatedAt = &now
	ev.UpdatedAt = &now

	if err := session.Query(`INSERT INTO events (event_id, title, description, location, starts_at, ends_at, image_url, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.Title, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.ImageURL, ev.CreatedAt, ev.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création événement"})
		return
	}

	c.JSON(http.StatusOK, ev)
}

func UpdateEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID événement invalide"})
		return
	}

	var ev models.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ev.ID = gocql.UUID(eventID)
	now := time.Now()
	ev.UpdatedAt = &now

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE events SET title = ?, description = ?, location = ?, starts_at = ?, ends_at = ?, image_url = ?, updated_at = ? WHERE event_id = ?`,
		ev.Title, ev.Description, ev.Location, ev.StartsAt, ev.EndsAt, ev.ImageURL, ev.UpdatedAt, ev.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour événement"})
		return
	}

	c.JSON(http.StatusOK, ev)
}

func DeleteEvent(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID événement invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM events WHERE event_id = ?", gocql.UUID(eventID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression événement"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "🗑️ Événement supprimé"})
}

// ================== OCCASIONS ==================

func CreateOccasion(c *gin.Context) {
	var oc models.Occasion
	if err := c.ShouldBindJSON(&oc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if oc.Name == "" || oc.Slug == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nom et slug requis"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	oc.ID = gocql.TimeUUID()
	now := time.Now()
	oc.CreatedAt = &now
	oc.UpdatedAt = &now

	if err := session.Query(`INSERT INTO occasions (occasion_id, name, slug, image_url, position, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		oc.ID, oc.Name, oc.Slug, oc.ImageURL, oc.Position, oc.CreatedAt, oc.UpdatedAt).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création occasion"})
		return
	}

	c.JSON(http.StatusOK, oc)
}

func UpdateOccasion(c *gin.Context) {
	occasionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID occasion invalide"})
		return
	}

	var oc models.Occasion
	if err := c.ShouldBindJSON(&oc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	oc.ID = gocql.UUID(occasionID)
	now := time.Now()
	oc.UpdatedAt = &now

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query(`UPDATE occasions SET name = ?, slug = ?, image_url = ?, position = ?, updated_at = ? WHERE occasion_id = ?`,
		oc.Name, oc.Slug, oc.ImageURL, oc.Position, oc.UpdatedAt, oc.ID).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur mise à jour occasion"})
		return
	}

	c.JSON(http.StatusOK, oc)
}

func DeleteOccasion(c *gin.Context) {
	occasionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID occasion invalide"})
		return
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	if err := session.Query("DELETE FROM occasions WHERE occasion_id = ?", gocql.UUID(occasionID)).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur suppression occasion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "🗑️ Occasion supprimée"})
}
