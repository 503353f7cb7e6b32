package domain

import "time"

// Product represents a product in the storefront catalog.
// Products are immutable for the duration of a shopping session;
// the admin table is the only writer.
type Product struct {
	ID             int64             `json:"id" db:"id"`
	Name           string            `json:"name" db:"name"`
	Description    string            `json:"description" db:"description"`
	Price          float64           `json:"price" db:"price"`
	OriginalPrice  float64           `json:"original_price,omitempty" db:"original_price"`
	Category       string            `json:"category" db:"category"`
	Badge          string            `json:"badge,omitempty" db:"badge"`
	Image          string            `json:"image" db:"image"`
	Images         []string          `json:"images,omitempty" db:"images"`
	Rating         float64           `json:"rating" db:"rating"`
	RatingCount    int               `json:"rating_count" db:"rating_count"`
	Specifications map[string]string `json:"specifications,omitempty" db:"specifications"`
	Stock          int               `json:"stock" db:"stock"`
	CompanyID      *int64            `json:"company_id,omitempty" db:"company_id"`
	CreatedAt      time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at" db:"updated_at"`
}
