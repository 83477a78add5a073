package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type createOrderRequest struct {
	CustomerInfo          models.CustomerInfo `json:"customer_info"`
	ShippingAddress       models.Address      `json:"shipping_address"`
	BillingAddress        models.Address      `json:"billing_address"`
	BillingSameAsShipping bool                `json:"billing_same_as_shipping"`
	Items                 []models.CartItem   `json:"items"`
	Amount                float64             `json:"amount"`
}

// ✅ POST /api/orders — crée la commande en statut "pending"
//
// Une commande puis N lignes. Les deux insertions ne sont pas
// transactionnelles : si les lignes échouent, la commande reste en
// "pending" sans lignes (état connu, loggé, non compensé).
func CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Requête invalide ou panier vide"})
		return
	}

	// Validation des coordonnées et adresses
	if err := req.CustomerInfo.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.ShippingAddress.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de livraison : " + err.Error()})
		return
	}
	billing := req.BillingAddress
	if req.BillingSameAsShipping {
		billing = req.ShippingAddress
	} else if err := billing.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Adresse de facturation : " + err.Error()})
		return
	}

	// Invariant : le montant annoncé doit valoir Σ(prix × quantité)
	if err := models.ValidateOrderTotal(req.Items, req.Amount); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// null pour un achat invité
	var customerID *string
	if userID := c.GetString("user_id"); userID != "" {
		customerID = &userID
	}

	orderID := gocql.UUID(uuid.New())
	now := time.Now()

	shippingJSON, _ := json.Marshal(req.ShippingAddress)
	billingJSON, _ := json.Marshal(billing)

	var photoURLs []string
	for _, item := range req.Items {
		if item.PhotoURL != "" {
			photoURLs = append(photoURLs, item.PhotoURL)
		}
	}

	// 1. Insertion de la commande
	if err := database.GetPreparedInsertOrder().Bind(
		orderID, customerID,
		req.CustomerInfo.FirstName, req.CustomerInfo.LastName,
		req.CustomerInfo.Email, req.CustomerInfo.Phone,
		req.Amount, models.OrderStatusPending,
		string(shippingJSON), string(billingJSON),
		photoURLs, "", "", "", "", now, now,
	).Exec(); err != nil {
		log.Println("❌ Erreur insertion commande:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur création commande"})
		return
	}

	// 2. Insertion des lignes, une par article du panier
	for _, item := range req.Items {
		// payload de personnalisation seulement si une photo est présente
		photoURL := ""
		uploadLater := item.UploadLater
		if item.PhotoURL != "" {
			photoURL = item.PhotoURL
			uploadLater = false
		}

		if err := database.GetPreparedInsertOrderItem().Bind(
			orderID, gocql.UUID(uuid.New()),
			item.ProductID, item.Name, item.ImageURL,
			item.Price, item.Quantity,
			photoURL, uploadLater, now,
		).Exec(); err != nil {
			// État partiel connu : commande "pending" sans toutes ses lignes
			log.Printf("⚠️ Commande %s créée mais insertion des lignes échouée: %v", orderID, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Erreur enregistrement des articles",
				"order_id": orderID.String(),
			})
			return
		}
	}

	// Index secondaire pour "mes commandes"
	if customerID != nil {
		session, err := database.GetOrdersSession()
		if err == nil {
			if err := session.Query(`INSERT INTO orders_by_customer (customer_id, created_at, order_id) VALUES (?, ?, ?)`,
				*customerID, now, orderID).Exec(); err != nil {
				log.Printf("⚠️ Erreur indexation orders_by_customer: %v", err)
			}
		}
	}

	log.Printf("🧾 Commande %s créée (%.2f€, %d articles)", orderID, req.Amount, len(req.Items))

	c.JSON(http.StatusCreated, gin.H{
		"order_id": orderID.String(),
		"status":   models.OrderStatusPending,
	})
}

// ✅ GET /api/orders/:id — détail d'une commande avec ses lignes
func GetOrderByID(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	order, err := scanOrder(session, gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	// Une commande rattachée à un compte n'est visible que par son
	// propriétaire ou un admin ; une commande invité l'est par son id.
	if order.CustomerID != nil && *order.CustomerID != "" {
		if c.GetString("user_id") != *order.CustomerID && c.GetString("role") != "admin" {
			c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
			return
		}
	}

	items, err := loadOrderItems(session, gocql.UUID(orderID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lecture des articles"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order, "items": items})
}

// ✅ GET /api/orders/my — commandes de l'utilisateur connecté
func GetMyOrders(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Utilisateur non authentifié"})
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur connexion base de données"})
		return
	}

	iter := session.Query(`SELECT order_id FROM orders_by_customer WHERE customer_id = ?`, userID).Iter()

	var orders []models.Order
	var orderID gocql.UUID
	for iter.Scan(&orderID) {
		if order, err := scanOrder(session, orderID); err == nil {
			orders = append(orders, *order)
		}
	}
	if err := iter.Close(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur récupération commandes"})
		return
	}

	log.Printf("✅ %d commandes trouvées pour user %s", len(orders), userID)
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// scanOrder lit une commande complète par identifiant
func scanOrder(session *gocql.Session, orderID gocql.UUID) (*models.Order, error) {
	var (
		order                     models.Order
		shippingJSON, billingJSON string
	)
	order.ID = orderID

	err := session.Query(`SELECT customer_id, first_name, last_name, email, phone, total_amount, status, shipping_address, billing_address, photo_urls, payment_id, processor_order_id, processor_state, note, created_at, updated_at
		FROM orders WHERE order_id = ?`, orderID).Scan(
		&order.CustomerID, &order.FirstName, &order.LastName, &order.Email, &order.Phone,
		&order.TotalAmount, &order.Status, &shippingJSON, &billingJSON, &order.PhotoURLs,
		&order.PaymentID, &order.ProcessorOrderID, &order.ProcessorState, &order.Note,
		&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		return nil, err
	}

	json.Unmarshal([]byte(shippingJSON), &order.ShippingAddress)
	json.Unmarshal([]byte(billingJSON), &order.BillingAddress)
	return &order, nil
}

func loadOrderItems(session *gocql.Session, orderID gocql.UUID) ([]models.OrderItem, error) {
	iter := session.Query(`SELECT item_id, product_id, name, image_url, price, quantity, photo_url, upload_later, created_at
		FROM order_items WHERE order_id = ?`, orderID).Iter()

	items := []models.OrderItem{}
	var item models.OrderItem
	item.OrderID = orderID
	for iter.Scan(&item.ItemID, &item.ProductID, &item.Name, &item.ImageURL,
		&item.Price, &item.Quantity, &item.PhotoURL, &item.UploadLater, &item.CreatedAt) {
		items = append(items, item)
	}
	return items, iter.Close()
}
