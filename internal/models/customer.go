package models

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	zipRe   = regexp.MustCompile(`^\d{5}(-\d{4})?$`)
)

// CustomerInfo porte les coordonnées saisies au checkout.
// Transitoire : jamais stocké tel quel, copié dans la commande.
type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Validate vérifie que tous les champs sont remplis et que l'email est plausible
func (ci CustomerInfo) Validate() error {
	if strings.TrimSpace(ci.FirstName) == "" {
		return fmt.Errorf("le prénom est requis")
	}
	if strings.TrimSpace(ci.LastName) == "" {
		return fmt.Errorf("le nom est requis")
	}
	if !emailRe.MatchString(ci.Email) {
		return fmt.Errorf("adresse e-mail invalide")
	}
	if strings.TrimSpace(ci.Phone) == "" {
		return fmt.Errorf("le numéro de téléphone est requis")
	}
	return nil
}

// Address représente une adresse de livraison ou de facturation
type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

// Validate vérifie chaque champ, dont le code postal (5 chiffres ou 5+4)
func (a Address) Validate() error {
	if strings.TrimSpace(a.Street) == "" {
		return fmt.Errorf("la rue est requise")
	}
	if strings.TrimSpace(a.City) == "" {
		return fmt.Errorf("la ville est requise")
	}
	if !zipRe.MatchString(a.Zip) {
		return fmt.Errorf("code postal invalide (attendu 12345 ou 12345-6789)")
	}
	if strings.TrimSpace(a.Country) == "" {
		return fmt.Errorf("le pays est requis")
	}
	return nil
}
