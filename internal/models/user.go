package models

import "time"

type User struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Password  string     `json:"-"`
	Role      string     `json:"role"` // "customer" ou "admin"
	Provider  string     `json:"provider"`
	CreatedAt *time.Time `json:"created_at"`
}
