package domain

import "time"

// CartLine is one product's entry in a shopping cart. Name, Price and
// Image are snapshots taken at add time; they are a display fallback
// only and must not be trusted for totals. The live catalog price is
// authoritative whenever the product still resolves.
type CartLine struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Cart is an ordered sequence of cart lines with unique product IDs.
// Insertion order is preserved for display.
type Cart struct {
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Find returns a pointer to the line for the given product, or nil.
func (c *Cart) Find(productID int64) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// TotalItemCount sums all line quantities. Used for the cart badge.
func (c *Cart) TotalItemCount() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
