package transport

import (
	"errors"
	"net/http"
	"strconv"

	"abils-mall/internal/cart"
	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
	"abils-mall/internal/middleware"
	"abils-mall/internal/pricing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// AddItemRequest is the add-to-cart payload. Quantity defaults to 1.
type AddItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"omitempty,gte=1"`
}

// SetQuantityRequest sets an exact line quantity. Zero removes the line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// BuyNowRequest resets the cart to a single product.
type BuyNowRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
}

// CartResponse is the rendered cart plus derived totals.
type CartResponse struct {
	Lines     []domain.CartLine `json:"lines"`
	ItemCount int               `json:"item_count"`
	Totals    pricing.Totals    `json:"totals"`
	Warning   string            `json:"warning,omitempty"`
}

// CartHandler handles HTTP requests for cart operations
type CartHandler struct {
	carts      *cart.Store
	catalog    catalog.Store
	pricingCfg pricing.Config
	logger     *zap.Logger
}

// NewCartHandler creates a new CartHandler
func NewCartHandler(carts *cart.Store, cat catalog.Store, pricingCfg pricing.Config, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		carts:      carts,
		catalog:    cat,
		pricingCfg: pricingCfg,
		logger:     logger,
	}
}

// RegisterRoutes registers all cart routes
func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/cart", func(r chi.Router) {
		r.Get("/", h.GetCart)
		r.Get("/count", h.GetCount)
		r.Delete("/", h.ClearCart)
		r.Post("/items", h.AddItem)
		r.Put("/items/{productID}", h.SetQuantity)
		r.Delete("/items/{productID}", h.RemoveItem)
		r.Post("/buy-now", h.BuyNow)
	})
}

// GetCart renders the current cart with totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	id := cartID(w, r)

	c, err := h.carts.Get(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load cart")
		return
	}

	h.respondWithCart(w, r, http.StatusOK, c, "")
}

// GetCount returns the badge count
func (h *CartHandler) GetCount(w http.ResponseWriter, r *http.Request) {
	id := cartID(w, r)

	count, err := h.carts.TotalItemCount(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to count cart items", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to count cart items")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string]int{"count": count})
}

// AddItem adds a product to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Add to cart validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity < 1 {
		req.Quantity = 1
	}

	id := cartID(w, r)

	c, err := h.carts.Add(r.Context(), id, req.ProductID, req.Quantity)
	warning, err := h.extractWarning(err)
	if err != nil {
		h.respondWithCartError(w, err)
		return
	}

	h.logger.Info("Item added to cart",
		zap.String("cart_id", id),
		zap.Int64("product_id", req.ProductID),
		zap.Int("quantity", req.Quantity),
	)
	h.respondWithCart(w, r, http.StatusOK, c, warning)
}

// SetQuantity sets an exact quantity for a cart line
func (h *CartHandler) SetQuantity(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req SetQuantityRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Set quantity validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := cartID(w, r)

	c, err := h.carts.SetQuantity(r.Context(), id, productID, req.Quantity)
	warning, err := h.extractWarning(err)
	if err != nil {
		h.respondWithCartError(w, err)
		return
	}

	h.respondWithCart(w, r, http.StatusOK, c, warning)
}

// RemoveItem deletes a cart line; removing an absent line succeeds
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(chi.URLParam(r, "productID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	id := cartID(w, r)

	c, err := h.carts.Remove(r.Context(), id, productID)
	if err != nil {
		h.respondWithCartError(w, err)
		return
	}

	h.respondWithCart(w, r, http.StatusOK, c, "")
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	id := cartID(w, r)

	if err := h.carts.Clear(r.Context(), id); err != nil {
		h.logger.Error("Failed to clear cart", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to clear cart")
		return
	}

	h.respondWithCart(w, r, http.StatusOK, &domain.Cart{}, "")
}

// BuyNow replaces the cart with a single unit of the product
func (h *CartHandler) BuyNow(w http.ResponseWriter, r *http.Request) {
	var req BuyNowRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Buy now validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := cartID(w, r)

	c, err := h.carts.BuyNow(r.Context(), id, req.ProductID)
	if err != nil {
		var stockErr *cart.InsufficientStockError
		if errors.As(err, &stockErr) {
			middleware.RespondWithError(w, http.StatusConflict, stockErr.Error())
			return
		}
		h.respondWithCartError(w, err)
		return
	}

	h.respondWithCart(w, r, http.StatusOK, c, "")
}

// extractWarning splits a clamp report off from fatal errors. A clamp
// leaves a usable cart behind, so it is surfaced as a warning string
// instead of failing the request.
func (h *CartHandler) extractWarning(err error) (string, error) {
	if err == nil {
		return "", nil
	}
	var stockErr *cart.InsufficientStockError
	if errors.As(err, &stockErr) {
		return stockErr.Error(), nil
	}
	return "", err
}

func (h *CartHandler) respondWithCartError(w http.ResponseWriter, err error) {
	if errors.Is(err, catalog.ErrProductNotFound) {
		middleware.RespondWithError(w, http.StatusNotFound, "product not found")
		return
	}
	h.logger.Error("Cart operation failed", zap.Error(err))
	middleware.RespondWithError(w, http.StatusInternalServerError, "cart operation failed")
}

func (h *CartHandler) respondWithCart(w http.ResponseWriter, r *http.Request, status int, c *domain.Cart, warning string) {
	totals, err := pricing.ComputeTotals(r.Context(), c.Lines, h.catalog, h.pricingCfg)
	if err != nil {
		h.logger.Error("Failed to compute totals", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute totals")
		return
	}

	middleware.RespondWithJSON(w, status, CartResponse{
		Lines:     c.Lines,
		ItemCount: c.TotalItemCount(),
		Totals:    totals,
		Warning:   warning,
	})
}
