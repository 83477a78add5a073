package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/services"
	"mementa_back_end/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type paymentRequest struct {
	Action            string  `json:"action"`
	SourceID          string  `json:"sourceId"`
	VerificationToken string  `json:"verificationToken"`
	Amount            float64 `json:"amount"`
	OrderID           string  `json:"orderId"`
}

// ✅ POST /api/payment — point d'entrée unique du processeur
//
// { action: "test_connection" } renvoie les identifiants publics pour le
// SDK client ; { action: "process_payment", ... } encaisse un token.
func ProcessPayment(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Requête invalide"})
		return
	}

	switch req.Action {
	case "test_connection":
		testConnection(c)
	case "process_payment":
		processPayment(c, req)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Action inconnue"})
	}
}

// testConnection expose les identifiants publics du processeur
// (application id, location id, environnement) au chargeur du SDK
func testConnection(c *gin.Context) {
	client, err := services.ProcessorBootstrap()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Système de paiement indisponible, réessayez plus tard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"applicationId": client.Creds.ApplicationID,
		"locationId":    client.Creds.LocationID,
		"environment":   client.Creds.Environment,
	})
}

func processPayment(c *gin.Context, req paymentRequest) {
	// Validation de présence : token, montant et commande sont requis
	if req.SourceID == "" || req.Amount <= 0 || req.OrderID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "sourceId, amount et orderId sont requis"})
		return
	}

	orderUUID, err := uuid.Parse(req.OrderID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "orderId invalide"})
		return
	}
	orderID := gocql.UUID(orderUUID)

	// La commande doit exister et être encore en attente
	var status string
	if err := database.GetPreparedGetOrderStatus().Bind(orderID).Scan(&status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Commande introuvable"})
		return
	}
	if status != models.OrderStatusPending {
		c.JSON(http.StatusConflict, gin.H{"success": false, "error": "Commande déjà traitée"})
		return
	}

	client, err := services.ProcessorBootstrap()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"success": false,
			"error":   "Système de paiement indisponible, réessayez plus tard",
		})
		return
	}

	// Clé d'idempotence : commande + horodatage, contre les doubles envois
	idempotencyKey := fmt.Sprintf("%s-%d", req.OrderID, time.Now().Unix())

	result, err := client.Charge(c.Request.Context(), services.ChargeRequest{
		SourceID:          req.SourceID,
		VerificationToken: req.VerificationToken,
		AmountMinor:       services.ToMinorUnits(req.Amount),
		Currency:          "EUR",
		OrderID:           req.OrderID,
		IdempotencyKey:    idempotencyKey,
		Note:              "Commande Mementa " + req.OrderID,
	})

	if err != nil {
		var decline *services.DeclineError
		if errors.As(err, &decline) {
			// Refus déclaré par le processeur → commande en échec
			log.Printf("💳 Paiement refusé pour %s: %s (%s)", req.OrderID, decline.Code, decline.Detail)
			applyOrderStatus(orderID, models.OrderStatusFailed, "", decline.Error())
			c.JSON(http.StatusPaymentRequired, gin.H{
				"success": false,
				"error":   services.DeclineMessage(decline.Code),
				"code":    decline.Code,
			})
			return
		}

		// Erreur réseau : la commande reste "pending"
		log.Printf("❌ Erreur processeur pour %s: %v", req.OrderID, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   "Système de paiement indisponible, réessayez plus tard",
		})
		return
	}

	log.Printf("💳 Paiement accepté : %s (%.2f€) pour commande %s", result.PaymentID, req.Amount, req.OrderID)

	// Encaissement réussi → statut local "completed". Si cette écriture
	// échoue, le processeur a quand même encaissé : le webhook réconciliera.
	if err := applyOrderStatus(orderID, models.OrderStatusCompleted, result.PaymentID, ""); err != nil {
		log.Printf("⚠️ Charge réussie mais mise à jour locale échouée pour %s: %v — réconciliation par webhook", req.OrderID, err)
	} else {
		go sendOrderConfirmation(orderID)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"paymentId":  result.PaymentID,
		"receiptUrl": result.ReceiptURL,
		"status":     result.Status,
	})
}

// applyOrderStatus applique un statut en respectant les transitions
// avant-uniquement (jamais de retour vers "pending").
func applyOrderStatus(orderID gocql.UUID, newStatus, paymentID, note string) error {
	var current string
	if err := database.GetPreparedGetOrderStatus().Bind(orderID).Scan(&current); err != nil {
		return err
	}

	if !models.CanTransition(current, newStatus) {
		log.Printf("ℹ️ Transition %s → %s ignorée pour commande %s", current, newStatus, orderID)
		return nil
	}

	if err := database.GetPreparedUpdateOrderPaid().Bind(newStatus, paymentID, note, time.Now(), orderID).Exec(); err != nil {
		return err
	}

	// Index paiement → commande pour la réconciliation webhook
	if paymentID != "" {
		session, err := database.GetOrdersSession()
		if err == nil {
			if err := session.Query(`INSERT INTO orders_by_payment (payment_id, order_id) VALUES (?, ?)`,
				paymentID, orderID).Exec(); err != nil {
				log.Printf("⚠️ Erreur indexation orders_by_payment: %v", err)
			}
		}
	}

	// Pousse le nouveau statut vers le flux websocket du checkout
	cache.PublishOrderStatus(orderID.String(), newStatus)
	return nil
}

// sendOrderConfirmation envoie l'e-mail de confirmation avec la facture PDF
func sendOrderConfirmation(orderID gocql.UUID) {
	session, err := database.GetOrdersSession()
	if err != nil {
		return
	}

	order, err := scanOrder(session, orderID)
	if err != nil {
		log.Printf("❌ Confirmation impossible, commande %s introuvable: %v", orderID, err)
		return
	}
	items, err := loadOrderItems(session, orderID)
	if err != nil {
		log.Printf("❌ Erreur lecture lignes pour confirmation %s: %v", orderID, err)
		return
	}

	html := utils.GenerateOrderConfirmationHTML(*order, items)

	pdf, err := utils.GenerateInvoicePDF(orderID.String())
	if err != nil {
		log.Println("❌ Erreur génération PDF :", err)
		pdf = nil
	}

	if err := utils.SendConfirmationEmail(order.Email, "Confirmation de votre commande Mementa", html, pdf); err != nil {
		log.Println("❌ Erreur envoi e-mail confirmation :", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", order.Email)
	}
}
