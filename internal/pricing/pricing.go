package pricing

import (
	"context"
	"errors"
	"fmt"

	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
)

const (
	// DefaultShippingFee is the flat fee applied to any non-empty
	// order. The storefront historically showed two values; 1500 is
	// the checkout page's figure and is canonical here.
	DefaultShippingFee = 1500.0

	// DefaultTaxRate is 7.5% VAT.
	DefaultTaxRate = 0.075
)

// Config holds the pricing constants.
type Config struct {
	ShippingFee float64
	TaxRate     float64
}

// DefaultConfig returns the canonical pricing constants.
func DefaultConfig() Config {
	return Config{
		ShippingFee: DefaultShippingFee,
		TaxRate:     DefaultTaxRate,
	}
}

// Totals is the derived checkout summary.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ComputeTotals derives the checkout summary from the cart lines.
// The live catalog price is preferred; the line's snapshot price is
// used only when the product no longer resolves. The function has no
// side effects and an empty cart yields all-zero totals.
func ComputeTotals(ctx context.Context, lines []domain.CartLine, cat catalog.Store, cfg Config) (Totals, error) {
	subtotal := 0.0
	for _, line := range lines {
		price, err := effectivePrice(ctx, line, cat)
		if err != nil {
			return Totals{}, err
		}
		subtotal += price * float64(line.Quantity)
	}

	totals := Totals{Subtotal: subtotal}
	if subtotal > 0 {
		totals.Shipping = cfg.ShippingFee
	}
	totals.Tax = subtotal * cfg.TaxRate
	totals.Total = totals.Subtotal + totals.Shipping + totals.Tax

	return totals, nil
}

func effectivePrice(ctx context.Context, line domain.CartLine, cat catalog.Store) (float64, error) {
	product, err := cat.FindByID(ctx, line.ProductID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return line.Price, nil
		}
		return 0, fmt.Errorf("failed to look up product: %w", err)
	}
	return product.Price, nil
}
