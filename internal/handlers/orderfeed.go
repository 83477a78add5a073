package handlers

import (
	"log"
	"net/http"
	"time"

	"mementa_back_end/internal/cache"
	"mementa_back_end/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Autoriser toutes les origines (à ajuster en production)
		return true
	},
}

// OrderStatusFeed pousse en temps réel les changements de statut d'une
// commande vers la page de checkout (résultats de la réconciliation webhook)
func OrderStatusFeed(c *gin.Context) {
	orderUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ID commande invalide"})
		return
	}

	// La commande doit exister avant d'ouvrir le flux
	var status string
	if err := database.GetPreparedGetOrderStatus().Bind(gocql.UUID(orderUUID)).Scan(&status); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Commande introuvable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("❌ Erreur upgrade WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// S'abonner au canal Redis de cette commande
	pubsub := cache.SubscribeOrderStatus(orderUUID.String())
	defer pubsub.Close()
	ch := pubsub.Channel()

	// Statut courant envoyé immédiatement à la connexion
	conn.WriteJSON(map[string]interface{}{
		"type":   "connected",
		"status": status,
	})

	// Boucle d'écoute
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(map[string]interface{}{
				"type":   "order_updated",
				"status": msg.Payload,
			}); err != nil {
				log.Printf("❌ Erreur envoi WebSocket: %v", err)
				return
			}
		case <-time.After(30 * time.Second):
			// Ping pour garder la connexion active
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
