package domain

import (
	"time"

	"github.com/google/uuid"
)

// Company groups products under a manager. Each company keeps a sales
// ledger and a set of customers approved for discounts.
type Company struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	ManagerID int64     `json:"manager_id" db:"manager_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Manager is 1:1 with a company once assigned.
type Manager struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CompanyID *int64    `json:"company_id,omitempty" db:"company_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Sale is one entry in a company's sales ledger.
type Sale struct {
	ID        uuid.UUID `json:"id" db:"id"`
	CompanyID int64     `json:"company_id" db:"company_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CompanySummary is the company list row: company plus manager name,
// product count and units sold.
type CompanySummary struct {
	Company
	ManagerName  string `json:"manager_name"`
	ProductCount int    `json:"product_count"`
	UnitsSold    int    `json:"units_sold"`
}
