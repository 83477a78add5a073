package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"mementa_back_end/internal/database"
	"mementa_back_end/internal/models"

	"github.com/redis/go-redis/v9"
)

var ctx = context.Background()

const cartTTL = 30 * 24 * time.Hour

// --- Panier ---

// GetCart recharge le snapshot du panier depuis Redis.
// Un snapshot corrompu ou absent donne un panier vide, sans erreur.
func GetCart(ownerID string) *models.Cart {
	key := "cart:" + ownerID
	data, err := database.RedisClient.Get(ctx, key).Result()
	if err != nil || data == "" {
		return &models.Cart{}
	}

	var cart models.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		log.Printf("⚠️ Snapshot panier illisible pour %s, on repart d'un panier vide", ownerID)
		return &models.Cart{}
	}
	return &cart
}

// SaveCart persiste le snapshot du panier (30 jours)
func SaveCart(ownerID string, cart *models.Cart) error {
	key := "cart:" + ownerID
	data, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	if err := database.RedisClient.Set(ctx, key, data, cartTTL).Err(); err != nil {
		return err
	}
	// Notifie les clients websocket abonnés à ce panier
	database.RedisClient.Publish(ctx, key, "updated")
	return nil
}

// DeleteCart vide complètement le panier
func DeleteCart(ownerID string) error {
	key := "cart:" + ownerID
	if err := database.RedisClient.Del(ctx, key).Err(); err != nil {
		return err
	}
	database.RedisClient.Publish(ctx, key, "cleared")
	return nil
}

// --- Réglages boutique ---

// GetSetting lit un réglage, cache Redis d'abord, ScyllaDB ensuite
func GetSetting(key string) (string, error) {
	cacheKey := "settings:" + key
	if val, err := database.RedisClient.Get(ctx, cacheKey).Result(); err == nil {
		return val, nil
	}

	session, err := database.GetCatalogSession()
	if err != nil {
		return "", err
	}

	var value string
	if err := session.Query("SELECT value FROM settings WHERE key = ?", key).Scan(&value); err != nil {
		return "", err
	}

	database.RedisClient.Set(ctx, cacheKey, value, time.Hour)
	return value, nil
}

// SetSetting écrit un réglage et invalide le cache
func SetSetting(key, value string) error {
	session, err := database.GetCatalogSession()
	if err != nil {
		return err
	}

	if err := session.Query("INSERT INTO settings (key, value) VALUES (?, ?)", key, value).Exec(); err != nil {
		return err
	}

	return database.RedisClient.Del(ctx, "settings:"+key).Err()
}

// --- Statut de commande (flux websocket) ---

// PublishOrderStatus pousse un changement de statut aux clients connectés
func PublishOrderStatus(orderID, status string) {
	if err := database.RedisClient.Publish(ctx, "order:"+orderID, status).Err(); err != nil {
		log.Printf("⚠️ Erreur publication statut commande %s: %v", orderID, err)
	}
}

// SubscribeOrderStatus ouvre un abonnement sur les changements d'une commande
func SubscribeOrderStatus(orderID string) *redis.PubSub {
	return database.RedisClient.Subscribe(ctx, "order:"+orderID)
}

// --- Rate Limiting ---

// IncrementRateLimit incrémente le compteur de rate limit
func IncrementRateLimit(key string, window time.Duration) (int64, error) {
	pipe := database.RedisClient.Pipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return 0, err
	}
	return incr.Val(), nil
}

// GetRateLimit récupère le compteur de rate limit
func GetRateLimit(key string) (int64, error) {
	val, err := database.RedisClient.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	return val, err
}

// --- Cache générique ---

func SetCache(key string, value interface{}, duration time.Duration) error {
	return database.RedisClient.Set(ctx, key, value, duration).Err()
}

func GetCache(key string) (string, error) {
	return database.RedisClient.Get(ctx, key).Result()
}

func DeleteCache(key string) error {
	return database.RedisClient.Del(ctx, key).Err()
}

// InvalidatePrefix supprime toutes les clés d'un préfixe (ex: produits après modif admin)
func InvalidatePrefix(prefix string) {
	keys, err := database.RedisClient.Keys(ctx, fmt.Sprintf("%s*", prefix)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	database.RedisClient.Del(ctx, keys...)
}
