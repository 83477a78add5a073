package handlers

import (
	"log"
	"net/http"
	"os"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/markbates/goth/gothic"
)

// ================== AUTH LOCALE ==================

func Register(c *gin.Context) {
	var input struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.Email == "" || len(input.Password) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides (mot de passe : 8 caractères minimum)"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// email déjà pris ?
	var existingID string
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", input.Email).Scan(&existingID); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Un compte avec cet email existe déjà"})
		return
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}

	now := time.Now()
	user := models.User{
		ID:        uuid.NewString(),
		Name:      input.Name,
		Email:     input.Email,
		Password:  hashed,
		Role:      "customer",
		Provider:  "local",
		CreatedAt: &now,
	}

	if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Name, user.Email, user.Password, user.Role, user.Provider, now).Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
		return
	}
	if err := session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`, user.Email, user.ID).Exec(); err != nil {
		log.Printf("⚠️ Erreur indexation users_by_email: %v", err)
	}

	token, _ := utils.GenerateJWT(user)
	c.JSON(http.StatusCreated, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

func Login(c *gin.Context) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var userID string
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", input.Email).Scan(&userID); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	var user models.User
	user.ID = userID
	if err := session.Query("SELECT name, email, password, role, provider FROM users WHERE user_id = ?", userID).Scan(
		&user.Name, &user.Email, &user.Password, &user.Role, &user.Provider); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	ok, err := utils.VerifyPassword(input.Password, user.Password)
	if err != nil || !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Email ou mot de passe incorrect"})
		return
	}

	token, _ := utils.GenerateJWT(user)
	c.JSON(http.StatusOK, gin.H{
		"token":  token,
		"userId": user.ID,
		"email":  user.Email,
		"name":   user.Name,
		"role":   user.Role,
	})
}

// ================== AUTH SOCIALE (WEB) ==================

func BeginAuth(c *gin.Context) {
	provider := c.Param("provider")
	if provider == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "aucun provider spécifié"})
		return
	}

	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothic.BeginAuthHandler(c.Writer, c.Request)
}

func AuthCallback(c *gin.Context) {
	provider := c.Param("provider")
	q := c.Request.URL.Query()
	q.Set("provider", provider)
	c.Request.URL.RawQuery = q.Encode()

	gothUser, err := gothic.CompleteUserAuth(c.Writer, c.Request)
	if err != nil {
		log.Printf("❌ Erreur callback OAuth %s: %v", provider, err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentification échouée"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	// Compte existant pour cet email ? Sinon on le crée
	var user models.User
	var userID string
	if err := session.Query("SELECT user_id FROM users_by_email WHERE email = ?", gothUser.Email).Scan(&userID); err == nil {
		user.ID = userID
		session.Query("SELECT name, email, password, role, provider FROM users WHERE user_id = ?", userID).Scan(
			&user.Name, &user.Email, &user.Password, &user.Role, &user.Provider)
	} else {
		now := time.Now()
		user = models.User{
			ID:        uuid.NewString(),
			Name:      gothUser.Name,
			Email:     gothUser.Email,
			Role:      "customer",
			Provider:  provider,
			CreatedAt: &now,
		}
		if err := session.Query(`INSERT INTO users (user_id, name, email, password, role, provider, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			user.ID, user.Name, user.Email, "", user.Role, user.Provider, now).Exec(); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création utilisateur"})
			return
		}
		session.Query(`INSERT INTO users_by_email (email, user_id) VALUES (?, ?)`, user.Email, user.ID).Exec()
		log.Printf("✅ Compte créé via %s pour %s", provider, user.Email)
	}

	token, _ := utils.GenerateJWT(user)

	frontURL := os.Getenv("FRONTEND_URL")
	if frontURL == "" {
		frontURL = "http://localhost:3000"
	}
	c.Redirect(http.StatusTemporaryRedirect, frontURL+"/auth/callback?token="+token)
}

// GET /api/auth/me
func Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "non authentifié"})
		return
	}

	session, err := database.GetUsersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	var user models.User
	user.ID = userID
	if err := session.Query("SELECT name, email, role, provider, created_at FROM users WHERE user_id = ?", userID).Scan(
		&user.Name, &user.Email, &user.Role, &user.Provider, &user.CreatedAt); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Utilisateur introuvable"})
		return
	}

	c.JSON(http.StatusOK, user)
}
