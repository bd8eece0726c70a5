package cart

// Item is one cart line. Price is the live product price at the time the
// line was added; the authoritative snapshot happens at order creation.
type Item struct {
	ProductID string  `json:"product_id"`
	Title     string  `json:"title"`
	Price     float64 `json:"price"`
	Image     string  `json:"image,omitempty"`
	Quantity  int     `json:"quantity"`
}

// Cart is the session-scoped line collection with derived totals.
// Totals are recomputed on every read, never cached.
type Cart struct {
	Items []Item  `json:"items"`
	Total float64 `json:"total"`
	Count int     `json:"count"`
}

func derive(items []Item) Cart {
	c := Cart{Items: items}
	if c.Items == nil {
		c.Items = []Item{}
	}
	for _, it := range items {
		c.Total += it.Price * float64(it.Quantity)
		c.Count += it.Quantity
	}
	return c
}
