package product

import "time"

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image,omitempty"`
	Category    string    `json:"category"`
	InStock     bool      `json:"in_stock"`
	Quantity    int       `json:"quantity"`
	Featured    bool      `json:"featured"`
	SortOrder   int       `json:"order"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows the public listing. Nil fields are ignored.
type Filter struct {
	Category *string
	Featured *bool
	InStock  *bool
}
