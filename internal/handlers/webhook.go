package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"
	"mementa_back_end/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
)

type processorEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			Payment struct {
				ID          string `json:"id"`
				Status      string `json:"status"`
				ReferenceID string `json:"reference_id"`
			} `json:"payment"`
			Order struct {
				ID          string `json:"id"`
				ReferenceID string `json:"reference_id"`
				State       string `json:"state"`
			} `json:"order"`
		} `json:"object"`
	} `json:"data"`
}

// ✅ POST /api/webhooks/processor — réconciliation asynchrone
//
// Le processeur pousse les changements d'état de paiement. La signature
// est vérifiée avant toute écriture. Réappliquer le même événement est
// sans effet (transitions avant-uniquement).
func ProcessorWebhook(c *gin.Context) {
	const maxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes)

	payload, err := c.GetRawData()
	if err != nil {
		log.Println("❌ Lecture payload échouée:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Échec lecture body"})
		return
	}

	// Vérification de signature avant tout traitement
	signatureKey := os.Getenv("PROCESSOR_WEBHOOK_SIGNATURE_KEY")
	if signatureKey == "" {
		log.Println("⚠️ Pas de PROCESSOR_WEBHOOK_SIGNATURE_KEY — mode test")
	} else {
		notificationURL := os.Getenv("PROCESSOR_WEBHOOK_URL")
		signature := c.GetHeader("X-Webhook-Signature")
		if !services.VerifyWebhookSignature(signatureKey, notificationURL, payload, signature) {
			log.Println("❌ Signature webhook invalide")
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Signature invalide"})
			return
		}
	}

	var event processorEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		log.Println("❌ JSON invalide:", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "JSON invalide"})
		return
	}

	log.Printf("📥 Événement processeur reçu : %s", event.Type)

	switch event.Type {
	case "payment.updated":
		handlePaymentUpdated(event)
	case "order.updated":
		handleOrderUpdated(event)
	default:
		log.Printf("ℹ️ Événement ignoré : %s", event.Type)
	}

	// Toujours accuser réception : le processeur réessaie sinon
	c.JSON(http.StatusOK, gin.H{"received": true})
}

// handlePaymentUpdated applique le statut processeur sur la commande locale
func handlePaymentUpdated(event processorEvent) {
	payment := event.Data.Object.Payment
	if payment.ID == "" {
		log.Println("⚠️ payment.updated sans identifiant de paiement")
		return
	}

	orderID, found := orderIDForPayment(payment.ID, payment.ReferenceID)
	if !found {
		log.Printf("⚠️ Aucune commande pour le paiement %s", payment.ID)
		return
	}

	newStatus := models.MapProcessorStatus(payment.Status)
	if err := applyOrderStatus(orderID, newStatus, payment.ID, ""); err != nil {
		log.Printf("❌ Erreur réconciliation paiement %s: %v", payment.ID, err)
		return
	}
	log.Printf("🔄 Commande %s réconciliée → %s (paiement %s)", orderID, newStatus, payment.ID)
}

// handleOrderUpdated annote la commande avec l'état côté processeur
func handleOrderUpdated(event processorEvent) {
	procOrder := event.Data.Object.Order
	if procOrder.ReferenceID == "" {
		log.Println("⚠️ order.updated sans reference_id")
		return
	}

	orderUUID, err := uuid.Parse(procOrder.ReferenceID)
	if err != nil {
		log.Printf("⚠️ reference_id illisible: %s", procOrder.ReferenceID)
		return
	}

	session, err := database.GetOrdersSession()
	if err != nil {
		log.Println("❌ Erreur connexion base de données:", err)
		return
	}

	if err := session.Query(`UPDATE orders SET processor_order_id = ?, processor_state = ?, updated_at = ? WHERE order_id = ?`,
		procOrder.ID, procOrder.State, time.Now(), gocql.UUID(orderUUID)).Exec(); err != nil {
		log.Printf("❌ Erreur annotation commande %s: %v", procOrder.ReferenceID, err)
		return
	}
	log.Printf("🔄 Commande %s annotée (état processeur: %s)", procOrder.ReferenceID, procOrder.State)
}

// orderIDForPayment retrouve la commande via l'index paiement,
// sinon via le reference_id porté par le paiement
func orderIDForPayment(paymentID, referenceID string) (gocql.UUID, bool) {
	var orderID gocql.UUID
	if err := database.GetPreparedOrderByPaymentID().Bind(paymentID).Scan(&orderID); err == nil {
		return orderID, true
	}

	if referenceID != "" {
		if parsed, err := uuid.Parse(referenceID); err == nil {
			return gocql.UUID(parsed), true
		}
	}
	return gocql.UUID{}, false
}
