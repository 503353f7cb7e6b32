package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a priced line item captured at checkout time.
type OrderItem struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
}

// Order is the checkout payload: contact and delivery details plus the
// cart contents and the totals computed at submission. Orders are only
// echoed to local storage; there is no downstream order pipeline.
type Order struct {
	ID            uuid.UUID   `json:"id"`
	FirstName     string      `json:"first_name"`
	LastName      string      `json:"last_name"`
	Email         string      `json:"email"`
	Phone         string      `json:"phone"`
	Address       string      `json:"address"`
	State         string      `json:"state"`
	City          string      `json:"city"`
	PaymentMethod string      `json:"payment_method"`
	Items         []OrderItem `json:"items"`
	Subtotal      float64     `json:"subtotal"`
	Shipping      float64     `json:"shipping"`
	Tax           float64     `json:"tax"`
	Total         float64     `json:"total"`
	CreatedAt     time.Time   `json:"created_at"`
}
