package catalog

import (
	"context"
	"testing"

	"abils-mall/internal/domain"
)

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore([]domain.Product{
		{ID: 1, Name: "Widget", Price: 100, Stock: 5},
		{ID: 2, Name: "Gadget", Price: 200, Stock: 3},
	})
	ctx := context.Background()

	product, err := store.FindByID(ctx, 2)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if product.Name != "Gadget" || product.Price != 200 {
		t.Errorf("Unexpected product: %+v", product)
	}

	if _, err := store.FindByID(ctx, 99); err != ErrProductNotFound {
		t.Errorf("Expected ErrProductNotFound, got %v", err)
	}
}

func TestMemoryStoreDuplicateIDsLastWins(t *testing.T) {
	store := NewMemoryStore([]domain.Product{
		{ID: 1, Name: "First", Price: 100},
		{ID: 1, Name: "Second", Price: 150},
	})

	product, err := store.FindByID(context.Background(), 1)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if product.Name != "Second" {
		t.Errorf("Expected later entry to win, got %q", product.Name)
	}
}

func TestSeedProductsAreWellFormed(t *testing.T) {
	products := SeedProducts()
	if len(products) != 4 {
		t.Fatalf("Expected 4 seed products, got %d", len(products))
	}

	seen := map[int64]bool{}
	for _, p := range products {
		if seen[p.ID] {
			t.Errorf("Duplicate seed product ID %d", p.ID)
		}
		seen[p.ID] = true

		if p.Name == "" || p.Price <= 0 || p.Stock <= 0 {
			t.Errorf("Malformed seed product: %+v", p)
		}
	}
}
