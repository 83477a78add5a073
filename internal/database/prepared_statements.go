package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

var (
	// Prepared statements pour le chemin chaud du checkout
	stmtInsertOrder      *gocql.Query
	stmtInsertOrderItem  *gocql.Query
	stmtGetOrderStatus   *gocql.Query
	stmtUpdateOrderPaid  *gocql.Query
	stmtOrderByPaymentID *gocql.Query

	preparedOnce sync.Once
)

// InitPreparedStatements initialise les prepared statements
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetOrdersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}

		// Insertion d'une commande
		stmtInsertOrder = session.Query(`INSERT INTO orders (order_id, customer_id, first_name, last_name, email, phone, total_amount, status, shipping_address, billing_address, photo_urls, payment_id, processor_order_id, processor_state, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Insertion d'une ligne de commande
		stmtInsertOrderItem = session.Query(`INSERT INTO order_items (order_id, item_id, product_id, name, image_url, price, quantity, photo_url, upload_later, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)

		// Lecture du statut courant d'une commande
		stmtGetOrderStatus = session.Query("SELECT status FROM orders WHERE order_id = ?")

		// Passage d'une commande en statut terminal après paiement
		stmtUpdateOrderPaid = session.Query("UPDATE orders SET status = ?, payment_id = ?, note = ?, updated_at = ? WHERE order_id = ?")

		// Résolution commande ← identifiant de paiement (réconciliation webhook)
		stmtOrderByPaymentID = session.Query("SELECT order_id FROM orders_by_payment WHERE payment_id = ?")

		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedInsertOrder() *gocql.Query {
	return stmtInsertOrder
}

func GetPreparedInsertOrderItem() *gocql.Query {
	return stmtInsertOrderItem
}

func GetPreparedGetOrderStatus() *gocql.Query {
	return stmtGetOrderStatus
}

func GetPreparedUpdateOrderPaid() *gocql.Query {
	return stmtUpdateOrderPaid
}

func GetPreparedOrderByPaymentID() *gocql.Query {
	return stmtOrderByPaymentID
}
