package models

import "github.com/google/uuid"

// CartItem est une ligne du panier. PhotoURL n'est renseigné qu'après
// l'upload réussi de la photo de personnalisation.
type CartItem struct {
	ID          string  `json:"id"`
	ProductID   string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	ImageURL    string  `json:"image_url"`
	PhotoName   string  `json:"photo_name,omitempty"`
	PhotoURL    string  `json:"photo_url,omitempty"`
	UploadLater bool    `json:"upload_later,omitempty"`
}

type Cart struct {
	Items []CartItem `json:"items"`
}

// Add ajoute un produit au panier. Si une ligne porte déjà le même nom,
// on incrémente sa quantité au lieu de créer un doublon.
func (c *Cart) Add(item CartItem) CartItem {
	for i := range c.Items {
		if c.Items[i].Name == item.Name {
			c.Items[i].Quantity += item.Quantity
			return c.Items[i]
		}
	}

	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	c.Items = append(c.Items, item)
	return item
}

// SetQuantity met à jour la quantité d'une ligne. Une quantité ≤ 0 supprime la ligne.
func (c *Cart) SetQuantity(id string, n int) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			if n <= 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = n
			}
			return true
		}
	}
	return false
}

// Remove supprime une ligne par identifiant
func (c *Cart) Remove(id string) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return true
		}
	}
	return false
}

// AttachPhoto enregistre la photo uploadée sur une ligne du panier
func (c *Cart) AttachPhoto(id, fileName, url string) bool {
	for i := range c.Items {
		if c.Items[i].ID == id {
			c.Items[i].PhotoName = fileName
			c.Items[i].PhotoURL = url
			c.Items[i].UploadLater = false
			return true
		}
	}
	return false
}

// Clear vide le panier
func (c *Cart) Clear() {
	c.Items = nil
}

// Total calcule le montant total du panier (Σ prix × quantité)
func (c *Cart) Total() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// Count retourne le nombre total d'articles (somme des quantités)
func (c *Cart) Count() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}
