package transport

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"abils-mall/internal/domain"
	"abils-mall/internal/middleware"
	"abils-mall/internal/notify"
	"abils-mall/internal/repository"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateManagerRequest registers a manager for later assignment.
type CreateManagerRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CreateCompanyRequest creates a company and assigns its manager.
type CreateCompanyRequest struct {
	Name      string `json:"name" validate:"required"`
	ManagerID int64  `json:"manager_id" validate:"required,gt=0"`
}

// RecordSaleRequest appends a sale to a company's ledger.
type RecordSaleRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gte=1"`
}

// ManagerDashboardResponse is the manager panel view: the company plus
// its ledger and approved customers.
type ManagerDashboardResponse struct {
	Company           *domain.Company `json:"company"`
	Sales             []*domain.Sale  `json:"sales"`
	UnitsSold         int             `json:"units_sold"`
	ApprovedCustomers []int64         `json:"approved_customers"`
}

// ManagerHandler serves the manager/company approval panel
type ManagerHandler struct {
	companies repository.CompanyRepository
	sink      notify.Sink
	logger    *zap.Logger
}

// NewManagerHandler creates a new ManagerHandler
func NewManagerHandler(companies repository.CompanyRepository, sink notify.Sink, logger *zap.Logger) *ManagerHandler {
	return &ManagerHandler{
		companies: companies,
		sink:      sink,
		logger:    logger,
	}
}

// RegisterRoutes registers all manager and company routes
func (h *ManagerHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/companies", func(r chi.Router) {
		r.Get("/", h.ListCompanies)
		r.Post("/", h.CreateCompany)
		r.Get("/{id}/customers", h.ApprovedCustomers)
		r.Post("/{id}/customers/{customerID}/approve", h.ApproveCustomer)
		r.Post("/{id}/sales", h.RecordSale)
	})
	r.Route("/api/managers", func(r chi.Router) {
		r.Post("/", h.CreateManager)
		r.Get("/{id}/dashboard", h.Dashboard)
	})
}

// CreateManager registers a manager
func (h *ManagerHandler) CreateManager(w http.ResponseWriter, r *http.Request) {
	var req CreateManagerRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create manager validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	manager := &domain.Manager{
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}

	if err := h.companies.CreateManager(r.Context(), manager); err != nil {
		h.logger.Error("Failed to create manager", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create manager")
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, manager)
}

// CreateCompany creates a company and assigns its manager
func (h *ManagerHandler) CreateCompany(w http.ResponseWriter, r *http.Request) {
	var req CreateCompanyRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Create company validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	company := &domain.Company{
		Name:      req.Name,
		ManagerID: req.ManagerID,
		CreatedAt: time.Now(),
	}

	if err := h.companies.CreateCompany(r.Context(), company); err != nil {
		if errors.Is(err, repository.ErrManagerNotFound) {
			middleware.RespondWithError(w, http.StatusConflict, "manager not found or already assigned")
			return
		}
		h.logger.Error("Failed to create company", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to create company")
		return
	}

	h.logger.Info("Company created", zap.Int64("company_id", company.ID), zap.String("name", company.Name))
	h.sink.Publish("Company \""+company.Name+"\" created and manager assigned", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusCreated, company)
}

// ListCompanies renders the company cards with summaries
func (h *ManagerHandler) ListCompanies(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.companies.ListCompanies(r.Context())
	if err != nil {
		h.logger.Error("Failed to list companies", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list companies")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, summaries)
}

// Dashboard renders the manager panel for the manager's company
func (h *ManagerHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	managerID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid manager ID")
		return
	}

	company, err := h.companies.FindByManager(r.Context(), managerID)
	if err != nil {
		if errors.Is(err, repository.ErrCompanyNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "no company for this manager")
			return
		}
		h.logger.Error("Failed to find company", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to find company")
		return
	}

	sales, err := h.companies.ListSales(r.Context(), company.ID)
	if err != nil {
		h.logger.Error("Failed to list sales", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list sales")
		return
	}

	approved, err := h.companies.ApprovedCustomers(r.Context(), company.ID)
	if err != nil {
		h.logger.Error("Failed to list approved customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list approved customers")
		return
	}

	unitsSold := 0
	for _, sale := range sales {
		unitsSold += sale.Quantity
	}

	middleware.RespondWithJSON(w, http.StatusOK, ManagerDashboardResponse{
		Company:           company,
		Sales:             sales,
		UnitsSold:         unitsSold,
		ApprovedCustomers: approved,
	})
}

// ApproveCustomer adds a customer to the approved set; idempotent
func (h *ManagerHandler) ApproveCustomer(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid company ID")
		return
	}
	customerID, err := strconv.ParseInt(chi.URLParam(r, "customerID"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid customer ID")
		return
	}

	if err := h.companies.ApproveCustomer(r.Context(), companyID, customerID); err != nil {
		h.logger.Error("Failed to approve customer", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to approve customer")
		return
	}

	h.sink.Publish("Customer approved for discounts", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "customer approved"})
}

// ApprovedCustomers lists the approved customer IDs for a company
func (h *ManagerHandler) ApprovedCustomers(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid company ID")
		return
	}

	approved, err := h.companies.ApprovedCustomers(r.Context(), companyID)
	if err != nil {
		h.logger.Error("Failed to list approved customers", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to list approved customers")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, map[string][]int64{"approved_customers": approved})
}

// RecordSale appends a ledger entry and decrements product stock
func (h *ManagerHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	companyID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid company ID")
		return
	}

	var req RecordSaleRequest
	if err := middleware.DecodeAndValidate(r, &req); err != nil {
		h.logger.Debug("Record sale validation failed", zap.Error(err))
		if validationErrors := middleware.FormatValidationErrors(err); len(validationErrors) > 0 {
			middleware.RespondWithValidationErrors(w, validationErrors)
			return
		}
		middleware.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	sale := &domain.Sale{
		ID:        uuid.New(),
		CompanyID: companyID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		CreatedAt: time.Now(),
	}

	if err := h.companies.RecordSale(r.Context(), sale); err != nil {
		if errors.Is(err, repository.ErrNotEnoughStock) {
			middleware.RespondWithError(w, http.StatusConflict, "not enough stock to record sale")
			return
		}
		h.logger.Error("Failed to record sale", zap.Error(err))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to record sale")
		return
	}

	h.sink.Publish("Sale recorded", notify.SeveritySuccess)
	middleware.RespondWithJSON(w, http.StatusCreated, sale)
}
