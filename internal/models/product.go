package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Product est un article du catalogue de cadeaux personnalisés.
// Personalizable indique qu'une photo client peut être attachée.
type Product struct {
	ID             gocql.UUID `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Price          float64    `json:"price"`
	ImageURLs      []string   `json:"image_urls"`
	Tags           []string   `json:"tags"`
	OccasionID     gocql.UUID `json:"occasion_id"`
	Personalizable bool       `json:"personalizable"`
	Active         bool       `json:"active"`
	CreatedAt      *time.Time `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
