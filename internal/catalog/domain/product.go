package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog entry. Name and SKU are globally unique.
type Product struct {
	ID            int64           `json:"id" gorm:"primaryKey"`
	Name          string          `json:"name" gorm:"size:100;uniqueIndex:uk_products_name;not null"`
	Description   string          `json:"description" gorm:"size:500"`
	Price         decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	SKU           string          `json:"sku" gorm:"size:20;uniqueIndex:uk_products_sku;not null"`
	Category      Category        `json:"category" gorm:"size:20;index;not null"`
	StockQuantity int             `json:"stockQuantity" gorm:"not null;default:0"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Same reports whether two products refer to the same catalog entry.
// Identity is the (id, sku) pair, not full structural equality.
func (p *Product) Same(o *Product) bool {
	if o == nil {
		return false
	}
	return p.ID == o.ID && p.SKU == o.SKU
}

// InStock reports whether any quantity is available.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// CategoryCount is one row of the count-by-category statistic.
type CategoryCount struct {
	Category Category `json:"category"`
	Count    int64    `json:"count"`
}

// ProductRepository defines the contract for product data access.
//
// Lookups return ErrProductNotFound when no row matches. Create and Update
// return a *ConflictError when the datastore rejects a duplicate name or SKU,
// which backstops the uniqueness pre-checks in the usecase layer.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id int64) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	FindByName(ctx context.Context, name string) (*Product, error)
	FindAll(ctx context.Context, page PageRequest) (*Page, error)
	FindByCategory(ctx context.Context, category Category) ([]Product, error)
	FindByCategoryPaged(ctx context.Context, category Category, page PageRequest) (*Page, error)
	Search(ctx context.Context, term string, page PageRequest) (*Page, error)
	SearchInCategory(ctx context.Context, category Category, term string, page PageRequest) (*Page, error)
	FindLowStock(ctx context.Context, threshold int) ([]Product, error)
	FindOutOfStock(ctx context.Context) ([]Product, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, category Category) (int64, error)
	CountGroupedByCategory(ctx context.Context) ([]CategoryCount, error)
}
