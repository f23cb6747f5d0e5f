package domain

import "time"

type Product struct {
	ID         string    `json:"id"`
	SKU        string    `json:"sku"`
	Name       string    `json:"name"`
	Category   string    `json:"category,omitempty"`
	PriceCents int64     `json:"priceCents"`
	ImageURL   string    `json:"imageUrl,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Valid reports whether the product carries the fields a cart line needs.
func (p Product) Valid() bool {
	return p.ID != "" && p.PriceCents >= 0
}
