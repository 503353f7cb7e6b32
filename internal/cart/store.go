package cart

import (
	"context"
	"errors"
	"fmt"
	"time"

	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
	"abils-mall/internal/notify"

	"go.uber.org/zap"
)

// InsufficientStockError reports a quantity request that exceeded the
// available stock. It is never fatal: the operation resolves by
// clamping the line to Stock and the cart is persisted in that state.
// Callers that receive it alongside a non-nil cart should treat it as
// a warning, not a failure.
type InsufficientStockError struct {
	ProductID int64
	Stock     int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("only %d items in stock for product %d", e.Stock, e.ProductID)
}

// Store owns all cart mutation rules. Every mutation validates against
// the catalog, persists the cart, and publishes a notification.
// Invariant after any successful operation: every line satisfies
// 1 <= quantity <= currentStock(productID).
type Store struct {
	catalog catalog.Store
	storage Storage
	sink    notify.Sink
	logger  *zap.Logger
}

// NewStore creates a cart store.
func NewStore(cat catalog.Store, storage Storage, sink notify.Sink, logger *zap.Logger) *Store {
	return &Store{
		catalog: cat,
		storage: storage,
		sink:    sink,
		logger:  logger,
	}
}

// Get returns the current cart, rehydrated from storage and sanitized
// against the live catalog. Absent or corrupt data yields an empty
// cart, never an error.
func (s *Store) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.load(ctx, cartID)
}

// Lines returns the ordered line sequence for rendering.
func (s *Store) Lines(ctx context.Context, cartID string) ([]domain.CartLine, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return cart.Lines, nil
}

// TotalItemCount sums all line quantities for the persistent badge.
func (s *Store) TotalItemCount(ctx context.Context, cartID string) (int, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return 0, err
	}
	return cart.TotalItemCount(), nil
}

// Add puts delta units of a product into the cart, creating a line or
// incrementing the existing one. Quantities are clamped to the current
// stock; a clamp persists the clamped line and returns the cart
// together with an *InsufficientStockError.
func (s *Store) Add(ctx context.Context, cartID string, productID int64, delta int) (*domain.Cart, error) {
	if delta < 1 {
		delta = 1
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	clamped := false
	if line := cart.Find(productID); line != nil {
		line.Quantity += delta
		if line.Quantity > product.Stock {
			line.Quantity = product.Stock
			clamped = true
		}
	} else {
		quantity := delta
		if quantity > product.Stock {
			quantity = product.Stock
			clamped = true
		}
		if quantity < 1 {
			// Out of stock: nothing to add.
			s.sink.Publish(fmt.Sprintf("Only %d items in stock", product.Stock), notify.SeverityError)
			return cart, &InsufficientStockError{ProductID: productID, Stock: product.Stock}
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  quantity,
		})
	}

	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}

	if clamped {
		s.sink.Publish(fmt.Sprintf("Only %d items in stock", product.Stock), notify.SeverityError)
		return cart, &InsufficientStockError{ProductID: productID, Stock: product.Stock}
	}

	s.sink.Publish(fmt.Sprintf("%s added to cart", product.Name), notify.SeveritySuccess)
	return cart, nil
}

// Remove deletes the line for the given product. Removing an absent
// line is a no-op, not an error.
func (s *Store) Remove(ctx context.Context, cartID string, productID int64) (*domain.Cart, error) {
	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if cart.Find(productID) == nil {
		return cart, nil
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ProductID != productID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept

	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}

	s.sink.Publish("Item removed from cart", notify.SeverityInfo)
	return cart, nil
}

// SetQuantity sets a line to an exact quantity. A quantity of zero or
// less removes the line; a quantity above stock is clamped and reported
// via *InsufficientStockError.
func (s *Store) SetQuantity(ctx context.Context, cartID string, productID int64, quantity int) (*domain.Cart, error) {
	if quantity <= 0 {
		return s.Remove(ctx, cartID, productID)
	}

	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	cart, err := s.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	line := cart.Find(productID)
	if line == nil {
		// No line for this product: nothing to update.
		return cart, nil
	}

	clamped := false
	if quantity > product.Stock {
		quantity = product.Stock
		clamped = true
	}
	line.Quantity = quantity

	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}

	if clamped {
		s.sink.Publish(fmt.Sprintf("Only %d items in stock", product.Stock), notify.SeverityError)
		return cart, &InsufficientStockError{ProductID: productID, Stock: product.Stock}
	}

	s.sink.Publish(fmt.Sprintf("%s quantity updated", line.Name), notify.SeveritySuccess)
	return cart, nil
}

// Clear empties the cart unconditionally.
func (s *Store) Clear(ctx context.Context, cartID string) error {
	if err := s.storage.Delete(ctx, cartID); err != nil {
		return err
	}

	s.sink.Publish("Cart cleared", notify.SeveritySuccess)
	return nil
}

// BuyNow resets the cart to a single unit of the given product, the
// "skip the cart page" path from the product modal.
func (s *Store) BuyNow(ctx context.Context, cartID string, productID int64) (*domain.Cart, error) {
	product, err := s.catalog.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}

	if product.Stock < 1 {
		s.sink.Publish(fmt.Sprintf("Only %d items in stock", product.Stock), notify.SeverityError)
		return nil, &InsufficientStockError{ProductID: productID, Stock: product.Stock}
	}

	cart := &domain.Cart{
		Lines: []domain.CartLine{{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			Image:     product.Image,
			Quantity:  1,
		}},
	}

	if err := s.save(ctx, cartID, cart); err != nil {
		return nil, err
	}

	s.sink.Publish(fmt.Sprintf("%s added to cart", product.Name), notify.SeveritySuccess)
	return cart, nil
}

// load rehydrates a cart and enforces the stock invariant against the
// live catalog: lines whose product no longer resolves are dropped and
// out-of-range quantities are clamped. A corrupt or absent slot yields
// an empty cart.
func (s *Store) load(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.storage.Load(ctx, cartID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return &domain.Cart{}, nil
		}
		if errors.Is(err, ErrCartCorrupt) {
			s.logger.Warn("Resetting corrupt cart", zap.String("cart_id", cartID))
			return &domain.Cart{}, nil
		}
		return nil, err
	}

	changed := false
	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		product, err := s.catalog.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				changed = true
				continue
			}
			return nil, fmt.Errorf("failed to look up product: %w", err)
		}

		if line.Quantity > product.Stock {
			line.Quantity = product.Stock
			changed = true
			s.sink.Publish(fmt.Sprintf("Only %d items in stock", product.Stock), notify.SeverityError)
		}
		if line.Quantity < 1 {
			changed = true
			continue
		}

		kept = append(kept, line)
	}
	cart.Lines = kept

	if changed {
		if err := s.save(ctx, cartID, cart); err != nil {
			return nil, err
		}
	}

	return cart, nil
}

func (s *Store) save(ctx context.Context, cartID string, cart *domain.Cart) error {
	cart.UpdatedAt = time.Now()
	return s.storage.Save(ctx, cartID, cart)
}
