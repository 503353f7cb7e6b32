package transport

import (
	"errors"
	"net/http"

	"abils-mall/internal/middleware"
	"abils-mall/internal/pricing"
	"abils-mall/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// CheckoutRequest is the checkout form payload.
type CheckoutRequest struct {
	FirstName     string `json:"first_name" validate:"required"`
	LastName      string `json:"last_name" validate:"required"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"required"`
	Address       string `json:"address" validate:"required"`
	State         string `json:"state" validate:"required"`
	City          string `json:"city" validate:"required"`
	PaymentMethod string `json:"payment_method" validate:"required"`
}

// ShippingQuoteResponse is the delivery cost estimate for a destination.
type ShippingQuoteResponse struct {
	State     string  `json:"state"`
	City      string  `json:"city"`
	Cost      float64 `json:"cost"`
	Formatted string  `json:"formatted"`
}

// CheckoutHandler handles HTTP requests for checkout operations
type CheckoutHandler struct {
	checkout   service.CheckoutService
	pricingCfg pricing.Config
	logger     *zap.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler
func NewCheckoutHandler(checkout service.CheckoutService, pricingCfg pricing.Config, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkout:   checkout,
		pricingCfg: pricingCfg,
		logger:     logger,
	}
}

// RegisterRoutes registers all checkout routes
func (h *CheckoutHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/checkout", func(r chi.Router) {
		r.Post("/", h.Submit)
		r.Get("/latest", h.LatestOrder)
		r.Get("/shipping-quote", h.ShippingQuote)
	})
}

// Submit handles checkout submission
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Checkout validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	id := cartID(w, r)

	order, err := h.checkout.Submit(r.Context(), id, service.CheckoutForm{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		State:         req.State,
		City:          req.City,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyCart) {
			middleware.RespondWithError(w, http.StatusBadRequest, "your cart is empty")
			return
		}
		h.logger.Error("Checkout failed", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to submit checkout")
		return
	}

	h.logger.Info("Checkout submitted",
		zap.String("order_id", order.ID.String()),
		zap.Float64("total", order.Total),
	)
	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// LatestOrder returns the most recently echoed order for this cart
func (h *CheckoutHandler) LatestOrder(w http.ResponseWriter, r *http.Request) {
	id := cartID(w, r)

	order, err := h.checkout.LatestOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "no order found")
			return
		}
		h.logger.Error("Failed to load order", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load order")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, order)
}

// ShippingQuote estimates the flat delivery fee for a destination
func (h *CheckoutHandler) ShippingQuote(w http.ResponseWriter, r *http.Request) {
	state := r.URL.Query().Get("state")
	city := r.URL.Query().Get("city")
	if state == "" || city == "" {
		middleware.RespondWithError(w, http.StatusBadRequest, "state and city are required")
		return
	}

	cost := h.pricingCfg.ShippingFee
	middleware.RespondWithJSON(w, http.StatusOK, ShippingQuoteResponse{
		State:     state,
		City:      city,
		Cost:      cost,
		Formatted: pricing.FormatCurrency(cost),
	})
}
