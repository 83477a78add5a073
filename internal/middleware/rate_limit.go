package middleware

import (
	"fmt"
	"net/http"
	"time"

	"mementa_back_end/internal/cache"

	"github.com/gin-gonic/gin"
)

// RateLimit limite le nombre de requêtes par IP sur une fenêtre glissante.
// Utilisé sur les routes sensibles (paiement, auth).
func RateLimit(name string, limit int64, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", name, c.ClientIP())

		count, err := cache.IncrementRateLimit(key, window)
		if err != nil {
			// Redis indisponible : on laisse passer plutôt que de bloquer la boutique
			c.Next()
			return
		}

		if count > limit {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Trop de requêtes, réessayez dans quelques instants"})
			c.Abort()
			return
		}

		c.Next()
	}
}
