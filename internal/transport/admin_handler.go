package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
	"abils-mall/internal/middleware"
	"abils-mall/internal/notify"
	"abils-mall/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductRequest is the admin create/update payload.
type ProductRequest struct {
	Name           string            `json:"name" validate:"required"`
	Description    string            `json:"description"`
	Price          float64           `json:"price" validate:"gte=0"`
	OriginalPrice  float64           `json:"original_price" validate:"gte=0"`
	Category       string            `json:"category" validate:"required"`
	Badge          string            `json:"badge"`
	Image          string            `json:"image"`
	Images         []string          `json:"images"`
	Rating         float64           `json:"rating" validate:"gte=0,lte=5"`
	RatingCount    int               `json:"rating_count" validate:"gte=0"`
	Specifications map[string]string `json:"specifications"`
	Stock          int               `json:"stock" validate:"gte=0"`
	CompanyID      *int64            `json:"company_id"`
}

// AdminHandler serves the thin admin product table
type AdminHandler struct {
	products repository.ProductRepository
	sink     notify.Sink
	logger   *zap.Logger
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(products repository.ProductRepository, sink notify.Sink, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		products: products,
		sink:     sink,
		logger:   logger,
	}
}

// RegisterRoutes registers all admin routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/admin", func(r chi.Router) {
		r.Get("/stats", h.Stats)
		r.Post("/products", h.CreateProduct)
		r.Put("/products/{id}", h.UpdateProduct)
		r.Delete("/products/{id}", h.DeleteProduct)
	})
}

// Stats returns the dashboard counters
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.products.Stats(r.Context())
	if err != nil {
		h.logger.Error("Failed to compute admin stats", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, stats)
}

// CreateProduct adds a product to the catalog
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create product validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := productFromRequest(&req)
	product.CreatedAt = time.Now()
	product.UpdatedAt = product.CreatedAt

	if err := h.products.Create(r.Context(), product); err != nil {
		h.logger.Error("Failed to create product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create product")
		return
	}

	h.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	h.sink.Publish("Product added", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusCreated, product)
}

// UpdateProduct edits an existing product
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	var req ProductRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Update product validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product := productFromRequest(&req)
	product.ID = id
	product.UpdatedAt = time.Now()

	if err := h.products.Update(r.Context(), product); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to update product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to update product")
		return
	}

	h.sink.Publish("Product updated", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid product ID")
		return
	}

	if err := h.products.Delete(r.Context(), id); err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Failed to delete product", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to delete product")
		return
	}

	h.sink.Publish("Product deleted", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}

func productFromRequest(req *ProductRequest) *domain.Product {
	return &domain.Product{
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Category:       req.Category,
		Badge:          req.Badge,
		Image:          req.Image,
		Images:         req.Images,
		Rating:         req.Rating,
		RatingCount:    req.RatingCount,
		Specifications: req.Specifications,
		Stock:          req.Stock,
		CompanyID:      req.CompanyID,
	}
}
