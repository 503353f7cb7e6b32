package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"abils-mall/internal/catalog"
	"abils-mall/internal/domain"
	"abils-mall/internal/repository"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// mockProductRepository is an in-memory ProductRepository for handler tests.
type mockProductRepository struct {
	products map[int64]*domain.Product
	nextID   int64
	sales    int
}

func newMockProductRepository() *mockProductRepository {
	return &mockProductRepository{
		products: make(map[int64]*domain.Product),
		nextID:   1,
	}
}

func (m *mockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return catalog.ErrProductNotFound
	}
	clone := *product
	m.products[product.ID] = &clone
	return nil
}

func (m *mockProductRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.products[id]; !ok {
		return catalog.ErrProductNotFound
	}
	delete(m.products, id)
	return nil
}

func (m *mockProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return product, nil
}

func (m *mockProductRepository) all() []*domain.Product {
	out := make([]*domain.Product, 0, len(m.products))
	for _, p := range m.products {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func paginate(products []*domain.Product, page, pageSize int) []*domain.Product {
	start := (page - 1) * pageSize
	if start >= len(products) {
		return []*domain.Product{}
	}
	end := start + pageSize
	if end > len(products) {
		end = len(products)
	}
	return products[start:end]
}

func (m *mockProductRepository) List(ctx context.Context, category string, page, pageSize int, sortBy string, sortOrder repository.SortOrder) ([]*domain.Product, int, error) {
	matched := []*domain.Product{}
	for _, p := range m.all() {
		if category == "" || strings.EqualFold(category, "All") || p.Category == category {
			matched = append(matched, p)
		}
	}
	return paginate(matched, page, pageSize), len(matched), nil
}

func (m *mockProductRepository) Search(ctx context.Context, query string, page, pageSize int) ([]*domain.Product, int, error) {
	q := strings.ToLower(query)
	matched := []*domain.Product{}
	for _, p := range m.all() {
		if q == "" || strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Description), q) {
			matched = append(matched, p)
		}
	}
	return paginate(matched, page, pageSize), len(matched), nil
}

func (m *mockProductRepository) Stats(ctx context.Context) (*repository.AdminStats, error) {
	stats := &repository.AdminStats{TotalSales: m.sales}
	for _, p := range m.products {
		stats.TotalProducts++
		stats.TotalStock += p.Stock
	}
	return stats, nil
}

func newProductRouter(t *testing.T) (*chi.Mux, *mockProductRepository) {
	t.Helper()

	repo := newMockProductRepository()
	seed := []*domain.Product{
		{Name: "Wireless Headphones", Description: "Noise cancelling", Price: 6985, Category: "Electronics", Stock: 45},
		{Name: "Smart Watch", Description: "Fitness tracker", Price: 14985, Category: "Electronics", Stock: 32},
		{Name: "Office Chair", Description: "Lumbar support", Price: 42500, Category: "Furniture", Stock: 12},
	}
	for _, p := range seed {
		p.CreatedAt = time.Now()
		p.UpdatedAt = p.CreatedAt
		if err := repo.Create(context.Background(), p); err != nil {
			t.Fatalf("Failed to seed product: %v", err)
		}
	}

	handler := NewProductHandler(repo, zap.NewNop())
	router := chi.NewRouter()
	handler.RegisterRoutes(router)
	return router, repo
}

func decodeProductList(t *testing.T, w *httptest.ResponseRecorder) ProductListResponse {
	t.Helper()

	var resp ProductListResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode product list: %v", err)
	}
	return resp
}

func TestListProducts(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := decodeProductList(t, w)
	if resp.Total != 3 || len(resp.Products) != 3 {
		t.Errorf("Expected 3 products, got total=%d len=%d", resp.Total, len(resp.Products))
	}
	if resp.Page != 1 || resp.PageSize != 24 {
		t.Errorf("Unexpected pagination defaults: page=%d size=%d", resp.Page, resp.PageSize)
	}
}

func TestListProductsByCategory(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products?category=Furniture", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := decodeProductList(t, w)
	if resp.Total != 1 || resp.Products[0].Name != "Office Chair" {
		t.Errorf("Expected only the chair, got %+v", resp.Products)
	}

	// "All" behaves like no filter
	req = httptest.NewRequest(http.MethodGet, "/api/products?category=All", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp = decodeProductList(t, w)
	if resp.Total != 3 {
		t.Errorf("Expected all products for category=All, got %d", resp.Total)
	}
}

func TestSearchProducts(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/search?q=watch", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	resp := decodeProductList(t, w)
	if resp.Total != 1 || resp.Products[0].Name != "Smart Watch" {
		t.Errorf("Expected the watch, got %+v", resp.Products)
	}
}

func TestFindProductByID(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var product domain.Product
	if err := json.Unmarshal(w.Body.Bytes(), &product); err != nil {
		t.Fatalf("Failed to decode product: %v", err)
	}
	if product.Name != "Wireless Headphones" {
		t.Errorf("Unexpected product: %+v", product)
	}
}

func TestFindProductByIDNotFound(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products/999", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/products/abc", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for non-numeric ID, got %d", w.Code)
	}
}

func TestListPagination(t *testing.T) {
	router, _ := newProductRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/products?page=2&page_size=2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	resp := decodeProductList(t, w)
	if resp.Total != 3 {
		t.Errorf("Expected total 3, got %d", resp.Total)
	}
	if len(resp.Products) != 1 {
		t.Errorf("Expected 1 product on page 2, got %d", len(resp.Products))
	}
}
