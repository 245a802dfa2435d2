package query

import (
	"context"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// GetProductQuery represents the query to get a product by ID
type GetProductQuery struct {
	ID int64
}

// GetProductHandler handles get product query
type GetProductHandler struct {
	repo domain.ProductRepository
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(repo domain.ProductRepository) *GetProductHandler {
	return &GetProductHandler{repo: repo}
}

// Handle executes the get product query. Absence surfaces as
// domain.ErrProductNotFound; the caller decides whether that is an error.
func (h *GetProductHandler) Handle(ctx context.Context, q GetProductQuery) (*domain.Product, error) {
	return h.repo.FindByID(ctx, q.ID)
}

// GetProductBySKUQuery represents the query to get a product by SKU
type GetProductBySKUQuery struct {
	SKU string
}

// GetProductBySKUHandler handles get product by SKU query
type GetProductBySKUHandler struct {
	repo domain.ProductRepository
}

// NewGetProductBySKUHandler creates a new get product by SKU handler
func NewGetProductBySKUHandler(repo domain.ProductRepository) *GetProductBySKUHandler {
	return &GetProductBySKUHandler{repo: repo}
}

// Handle executes the get product by SKU query
func (h *GetProductBySKUHandler) Handle(ctx context.Context, q GetProductBySKUQuery) (*domain.Product, error) {
	return h.repo.FindBySKU(ctx, q.SKU)
}
