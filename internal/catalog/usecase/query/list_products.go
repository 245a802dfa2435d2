package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// ListProductsQuery represents the query to list products, optionally
// scoped to a category.
type ListProductsQuery struct {
	Page     domain.PageRequest
	Category domain.Category // empty = all categories
}

// ListProductsHandler handles paginated product listings
type ListProductsHandler struct {
	repo domain.ProductRepository
}

// NewListProductsHandler creates a new list products handler
func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// Handle executes the list products query
func (h *ListProductsHandler) Handle(ctx context.Context, q ListProductsQuery) (*domain.Page, error) {
	var page *domain.Page
	var err error

	if q.Category != "" {
		page, err = h.repo.FindByCategoryPaged(ctx, q.Category, q.Page)
	} else {
		page, err = h.repo.FindAll(ctx, q.Page)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	return page, nil
}

// CategoryProductsQuery is the unpaginated form of the category listing.
type CategoryProductsQuery struct {
	Category domain.Category
}

// CategoryProductsHandler handles the unpaginated category listing
type CategoryProductsHandler struct {
	repo domain.ProductRepository
}

// NewCategoryProductsHandler creates a new category products handler
func NewCategoryProductsHandler(repo domain.ProductRepository) *CategoryProductsHandler {
	return &CategoryProductsHandler{repo: repo}
}

// Handle executes the category products query
func (h *CategoryProductsHandler) Handle(ctx context.Context, q CategoryProductsQuery) ([]domain.Product, error) {
	products, err := h.repo.FindByCategory(ctx, q.Category)
	if err != nil {
		return nil, fmt.Errorf("failed to list products by category: %w", err)
	}
	return products, nil
}
