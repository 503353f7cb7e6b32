package catalog

import (
	"context"
	"errors"

	"abils-mall/internal/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// Store is the read-only product lookup the cart and pricing engine
// depend on. The Postgres product repository implements it for the
// running service; the in-memory store backs tests and seed data.
type Store interface {
	FindByID(ctx context.Context, id int64) (*domain.Product, error)
}

type memoryStore struct {
	byID  map[int64]*domain.Product
	order []int64
}

// NewMemoryStore creates a catalog store over a fixed product list.
// Later entries with a duplicate ID replace earlier ones.
func NewMemoryStore(products []domain.Product) Store {
	s := &memoryStore{byID: make(map[int64]*domain.Product, len(products))}
	for i := range products {
		p := products[i]
		if _, seen := s.byID[p.ID]; !seen {
			s.order = append(s.order, p.ID)
		}
		s.byID[p.ID] = &p
	}
	return s
}

func (s *memoryStore) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := s.byID[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return product, nil
}
