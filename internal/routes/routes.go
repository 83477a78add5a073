package routes

import (
	"os"
	"strings"
	"time"

	"mementa_back_end/internal/handlers"
	"mementa_back_end/internal/handlers/admin"
	"mementa_back_end/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine) {
	r.Use(corsConfig())

	api := r.Group("/api")

	// --- Vitrine (public) ---
	api.GET("/products", handlers.GetAllProducts)
	api.GET("/products/search", handlers.SearchProducts)
	api.GET("/products/:id", handlers.GetProductByID)
	api.GET("/blog", handlers.GetBlogPosts)
	api.GET("/events", handlers.GetEvents)
	api.GET("/occasions", handlers.GetOccasions)
	api.GET("/shipping/options", handlers.GetShippingOptions)

	// --- Auth ---
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RateLimit("register", 10, time.Minute), handlers.Register)
	auth.POST("/login", middleware.RateLimit("login", 20, time.Minute), handlers.Login)
	auth.GET("/:provider", handlers.BeginAuth)
	auth.GET("/:provider/callback", handlers.AuthCallback)
	auth.GET("/me", middleware.AuthRequired(), handlers.Me)

	// --- Panier (invité ou connecté) ---
	cart := api.Group("/cart", middleware.OptionalAuth())
	cart.GET("", handlers.GetCart)
	cart.POST("/items", handlers.AddToCart)
	cart.PATCH("/items/:id", handlers.UpdateCartItem)
	cart.DELETE("/items/:id", handlers.RemoveFromCart)
	cart.POST("/items/:id/photo", handlers.AttachCartPhoto)
	cart.DELETE("", handlers.ClearCart)

	// --- Upload photo de personnalisation ---
	api.POST("/uploads/photo", middleware.OptionalAuth(), handlers.UploadPhoto)

	// --- Commandes & paiement ---
	orders := api.Group("/orders", middleware.OptionalAuth())
	orders.POST("", handlers.CreateOrder)
	orders.GET("/my", middleware.AuthRequired(), handlers.GetMyOrders)
	orders.GET("/:id", handlers.GetOrderByID)
	orders.GET("/:id/feed", handlers.OrderStatusFeed)

	api.POST("/payment", middleware.OptionalAuth(), middleware.RateLimit("payment", 15, time.Minute), handlers.ProcessPayment)

	// Webhook du processeur de paiement (signé, pas de JWT)
	api.POST("/webhooks/processor", handlers.ProcessorWebhook)

	// --- Administration ---
	adm := api.Group("/admin", middleware.AuthRequired(), middleware.RequireAdmin)

	adm.POST("/products", admin.CreateProduct)
	adm.PUT("/products/:id", admin.UpdateProduct)
	adm.DELETE("/products/:id", admin.DeleteProduct)
	adm.POST("/products/:id/image", admin.UploadProductImage)

	adm.POST("/blog", admin.CreateBlogPost)
	adm.PUT("/blog/:id", admin.UpdateBlogPost)
	adm.DELETE("/blog/:id", admin.DeleteBlogPost)

	adm.POST("/events", admin.CreateEvent)
	adm.PUT("/events/:id", admin.UpdateEvent)
	adm.DELETE("/events/:id", admin.DeleteEvent)

	adm.POST("/occasions", admin.CreateOccasion)
	adm.PUT("/occasions/:id", admin.UpdateOccasion)
	adm.DELETE("/occasions/:id", admin.DeleteOccasion)

	adm.GET("/settings", admin.GetSettings)
	adm.PUT("/settings", admin.UpdateSettings)
	adm.POST("/settings/logo", admin.UploadLogo)
}

// corsConfig autorise le front configuré (FRONTEND_URL, liste séparée par des virgules)
func corsConfig() gin.HandlerFunc {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("FRONTEND_URL"); env != "" {
		origins = strings.Split(env, ",")
	}

	return cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Webhook-Signature"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	})
}
