package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Contenus éditoriaux gérés depuis l'admin.

type BlogPost struct {
	ID        gocql.UUID `json:"id"`
	Title     string     `json:"title"`
	Slug      string     `json:"slug"`
	Body      string     `json:"body"`
	ImageURL  string     `json:"image_url"`
	Published bool       `json:"published"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}

type Event struct {
	ID          gocql.UUID `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
	ImageURL    string     `json:"image_url"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

// Occasion regroupe les produits par moment de vie (mariage, naissance…)
type Occasion struct {
	ID        gocql.UUID `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	ImageURL  string     `json:"image_url"`
	Position  int        `json:"position"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
