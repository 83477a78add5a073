package models

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gocql/gocql"
)

// Statuts de commande. Les transitions ne vont que vers l'avant :
// pending → processing → (completed | failed). Un statut terminal
// ne redescend jamais vers pending.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusFailed     = "failed"
)

var statusRank = map[string]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusCompleted:  2,
	OrderStatusFailed:     2,
}

type Order struct {
	ID               gocql.UUID `json:"id"`
	CustomerID       *string    `json:"customer_id"` // null pour un achat invité
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Email            string     `json:"email"`
	Phone            string     `json:"phone"`
	TotalAmount      float64    `json:"total_amount"`
	Status           string     `json:"status"`
	ShippingAddress  Address    `json:"shipping_address"`
	BillingAddress   Address    `json:"billing_address"`
	PhotoURLs        []string   `json:"photo_urls"`
	PaymentID        string     `json:"payment_id,omitempty"`
	ProcessorOrderID string     `json:"processor_order_id,omitempty"`
	ProcessorState   string     `json:"processor_state,omitempty"`
	Note             string     `json:"note,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// OrderItem est le snapshot immuable d'une ligne de panier au moment de l'achat
type OrderItem struct {
	OrderID     gocql.UUID `json:"order_id"`
	ItemID      gocql.UUID `json:"item_id"`
	ProductID   string     `json:"product_id"`
	Name        string     `json:"name"`
	ImageURL    string     `json:"image_url"`
	Price       float64    `json:"price"`
	Quantity    int        `json:"quantity"`
	PhotoURL    string     `json:"photo_url,omitempty"`
	UploadLater bool       `json:"upload_later,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// ValidateOrderTotal vérifie l'invariant : le montant annoncé doit être
// égal à Σ(prix × quantité), au centime près.
func ValidateOrderTotal(items []CartItem, amount float64) error {
	var sum float64
	for _, item := range items {
		if item.Quantity <= 0 {
			return fmt.Errorf("quantité invalide pour l'article %q", item.Name)
		}
		sum += item.Price * float64(item.Quantity)
	}
	if math.Abs(sum-amount) >= 0.005 {
		return fmt.Errorf("montant incohérent : annoncé %.2f, calculé %.2f", amount, sum)
	}
	return nil
}

// CanTransition indique si un passage de statut est autorisé.
// Réappliquer le même statut est permis (idempotence des webhooks).
func CanTransition(from, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	if from == to {
		return true
	}
	// completed et failed sont au même rang mais ne se remplacent pas
	if fromRank == toRank {
		return false
	}
	return toRank > fromRank
}

// MapProcessorStatus traduit un statut de paiement côté processeur
// vers un statut local ("COMPLETED" → completed, sinon minuscules).
func MapProcessorStatus(s string) string {
	if strings.EqualFold(s, "COMPLETED") {
		return OrderStatusCompleted
	}
	if strings.EqualFold(s, "FAILED") || strings.EqualFold(s, "CANCELED") {
		return OrderStatusFailed
	}
	return strings.ToLower(s)
}
