package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"abils-mall/internal/cart"
	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
	"abils-mall/internal/notify"
	"abils-mall/internal/pricing"

	"github.com/google/uuid"
)

var ErrEmptyCart = errors.New("cart is empty")

// CheckoutForm carries the contact and delivery details collected at
// checkout.
type CheckoutForm struct {
	FirstName     string
	LastName      string
	Email         string
	Phone         string
	Address       string
	State         string
	City          string
	PaymentMethod string
}

// CheckoutService turns a cart plus a checkout form into an order
// payload. The payload is only echoed to local storage; real backend
// submission is a future integration point.
type CheckoutService interface {
	Submit(ctx context.Context, cartID string, form CheckoutForm) (*domain.Order, error)
	LatestOrder(ctx context.Context, cartID string) (*domain.Order, error)
}

type checkoutService struct {
	carts   *cart.Store
	catalog catalog.Store
	orders  OrderStorage
	pricing pricing.Config
	sink    notify.Sink
}

// NewCheckoutService creates a new instance of CheckoutService
func NewCheckoutService(
	carts *cart.Store,
	cat catalog.Store,
	orders OrderStorage,
	pricingCfg pricing.Config,
	sink notify.Sink,
) CheckoutService {
	return &checkoutService{
		carts:   carts,
		catalog: cat,
		orders:  orders,
		pricing: pricingCfg,
		sink:    sink,
	}
}

// Submit validates the cart, computes totals, persists the order
// locally and clears the cart. An empty cart aborts with ErrEmptyCart.
func (s *checkoutService) Submit(ctx context.Context, cartID string, form CheckoutForm) (*domain.Order, error) {
	lines, err := s.carts.Lines(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	if len(lines) == 0 {
		s.sink.Publish("Your cart is empty", notify.SeverityError)
		return nil, ErrEmptyCart
	}

	totals, err := pricing.ComputeTotals(ctx, lines, s.catalog, s.pricing)
	if err != nil {
		return nil, fmt.Errorf("failed to compute totals: %w", err)
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
		})
	}

	order := &domain.Order{
		ID:            uuid.New(),
		FirstName:     form.FirstName,
		LastName:      form.LastName,
		Email:         form.Email,
		Phone:         form.Phone,
		Address:       form.Address,
		State:         form.State,
		City:          form.City,
		PaymentMethod: form.PaymentMethod,
		Items:         items,
		Subtotal:      totals.Subtotal,
		Shipping:      totals.Shipping,
		Tax:           totals.Tax,
		Total:         totals.Total,
		CreatedAt:     time.Now(),
	}

	if err := s.orders.Save(ctx, cartID, order); err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, cartID); err != nil {
		return nil, fmt.Errorf("failed to clear cart after checkout: %w", err)
	}

	s.sink.Publish("Order data saved! Proceeding to payment...", notify.SeveritySuccess)
	return order, nil
}

// LatestOrder returns the most recently echoed order for a cart.
func (s *checkoutService) LatestOrder(ctx context.Context, cartID string) (*domain.Order, error) {
	return s.orders.Latest(ctx, cartID)
}
