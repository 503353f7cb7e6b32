package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"abils-mall/internal/domain"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrManagerNotFound = errors.New("manager not found")
	ErrNotEnoughStock  = errors.New("not enough stock to record sale")
)

// CompanyRepository manages companies, their managers, the sales
// ledger, and the approved-customer set.
type CompanyRepository interface {
	CreateManager(ctx context.Context, manager *domain.Manager) error
	CreateCompany(ctx context.Context, company *domain.Company) error
	ListCompanies(ctx context.Context) ([]*domain.CompanySummary, error)
	FindByManager(ctx context.Context, managerID int64) (*domain.Company, error)
	ApproveCustomer(ctx context.Context, companyID, customerID int64) error
	ApprovedCustomers(ctx context.Context, companyID int64) ([]int64, error)
	RecordSale(ctx context.Context, sale *domain.Sale) error
	ListSales(ctx context.Context, companyID int64) ([]*domain.Sale, error)
}

type companyRepository struct {
	db *sql.DB
}

// NewCompanyRepository creates a new instance of CompanyRepository
func NewCompanyRepository(db *sql.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// CreateManager inserts a manager; the generated ID is written back.
func (r *companyRepository) CreateManager(ctx context.Context, manager *domain.Manager) error {
	query := `
		INSERT INTO managers (name, email, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query, manager.Name, manager.Email, manager.CreatedAt).Scan(&manager.ID)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}

	return nil
}

// CreateCompany inserts a company and assigns its manager in one
// transaction. The manager must exist and not already run a company.
func (r *companyRepository) CreateCompany(ctx context.Context, company *domain.Company) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO companies (name, manager_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	if err := tx.QueryRowContext(ctx, query, company.Name, company.ManagerID, company.CreatedAt).Scan(&company.ID); err != nil {
		return fmt.Errorf("failed to create company: %w", err)
	}

	result, err := tx.ExecContext(
		ctx,
		`UPDATE managers SET company_id = $1 WHERE id = $2 AND company_id IS NULL`,
		company.ID,
		company.ManagerID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign manager: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrManagerNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListCompanies returns all companies with manager name, product count
// and units sold.
func (r *companyRepository) ListCompanies(ctx context.Context) ([]*domain.CompanySummary, error) {
	query := `
		SELECT c.id, c.name, c.manager_id, c.created_at,
		       COALESCE(m.name, ''),
		       (SELECT COUNT(*) FROM products p WHERE p.company_id = c.id),
		       (SELECT COALESCE(SUM(s.quantity), 0) FROM company_sales s WHERE s.company_id = c.id)
		FROM companies c
		LEFT JOIN managers m ON m.id = c.manager_id
		ORDER BY c.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	summaries := []*domain.CompanySummary{}
	for rows.Next() {
		summary := &domain.CompanySummary{}
		err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.ManagerID,
			&summary.CreatedAt,
			&summary.ManagerName,
			&summary.ProductCount,
			&summary.UnitsSold,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating companies: %w", err)
	}

	return summaries, nil
}

// FindByManager returns the company run by the given manager.
func (r *companyRepository) FindByManager(ctx context.Context, managerID int64) (*domain.Company, error) {
	query := `
		SELECT id, name, manager_id, created_at
		FROM companies
		WHERE manager_id = $1
	`

	company := &domain.Company{}
	err := r.db.QueryRowContext(ctx, query, managerID).Scan(
		&company.ID,
		&company.Name,
		&company.ManagerID,
		&company.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("failed to find company by manager: %w", err)
	}

	return company, nil
}

// ApproveCustomer adds a customer to the company's approved set.
// Approving an already-approved customer is a no-op.
func (r *companyRepository) ApproveCustomer(ctx context.Context, companyID, customerID int64) error {
	query := `
		INSERT INTO company_customers (company_id, customer_id)
		VALUES ($1, $2)
		ON CONFLICT (company_id, customer_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, companyID, customerID); err != nil {
		return fmt.Errorf("failed to approve customer: %w", err)
	}

	return nil
}

// ApprovedCustomers lists the approved customer IDs for a company.
func (r *companyRepository) ApprovedCustomers(ctx context.Context, companyID int64) ([]int64, error) {
	query := `
		SELECT customer_id
		FROM company_customers
		WHERE company_id = $1
		ORDER BY customer_id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list approved customers: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan customer ID: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return ids, nil
}

// RecordSale appends a ledger entry and decrements the product's
// stock, guarded so stock never goes negative.
func (r *companyRepository) RecordSale(ctx context.Context, sale *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(
		ctx,
		`UPDATE products SET stock = stock - $1, updated_at = NOW() WHERE id = $2 AND stock >= $1`,
		sale.Quantity,
		sale.ProductID,
	)
	if err != nil {
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotEnoughStock
	}

	query := `
		INSERT INTO company_sales (id, company_id, product_id, quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := tx.ExecContext(ctx, query, sale.ID, sale.CompanyID, sale.ProductID, sale.Quantity, sale.CreatedAt); err != nil {
		return fmt.Errorf("failed to record sale: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListSales returns a company's sales ledger, newest first.
func (r *companyRepository) ListSales(ctx context.Context, companyID int64) ([]*domain.Sale, error) {
	query := `
		SELECT id, company_id, product_id, quantity, created_at
		FROM company_sales
		WHERE company_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	defer rows.Close()

	sales := []*domain.Sale{}
	for rows.Next() {
		sale := &domain.Sale{}
		if err := rows.Scan(&sale.ID, &sale.CompanyID, &sale.ProductID, &sale.Quantity, &sale.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan sale: %w", err)
		}
		sales = append(sales, sale)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sales: %w", err)
	}

	return sales, nil
}
