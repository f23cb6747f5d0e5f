package domain

// LineItem is one product entry in a cart. Quantity is always positive;
// an item whose quantity would drop to zero or below is removed instead.
type LineItem struct {
	ID         string `json:"id"`
	Name       string `json:"name,omitempty"`
	Category   string `json:"category,omitempty"`
	PriceCents int64  `json:"price"`
	ImageURL   string `json:"imageUrl,omitempty"`
	Quantity   int    `json:"quantity"`
}

// Cart is the persisted cart shape, one blob per identity key.
// TotalCents and ItemCount are derived from Items via Recompute and are
// never authoritative on their own.
type Cart struct {
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total"`
	ItemCount  int        `json:"itemCount"`
}

// Recompute derives cart totals from the item list. Every mutation ends
// with a call to this, so the derived fields hold by construction.
func Recompute(items []LineItem) (totalCents int64, itemCount int) {
	for _, it := range items {
		totalCents += it.PriceCents * int64(it.Quantity)
		itemCount += it.Quantity
	}
	return totalCents, itemCount
}
