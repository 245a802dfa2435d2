package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// SearchProductsQuery represents a substring search across product fields.
// With no category the term matches name, description or SKU; with a
// category it matches name or description only, inside that category.
type SearchProductsQuery struct {
	Term     string
	Category domain.Category // empty = unscoped search
	Page     domain.PageRequest
}

// SearchProductsHandler handles product search queries
type SearchProductsHandler struct {
	repo domain.ProductRepository
}

// NewSearchProductsHandler creates a new search products handler
func NewSearchProductsHandler(repo domain.ProductRepository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

// Handle executes the search products query
func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProductsQuery) (*domain.Page, error) {
	var page *domain.Page
	var err error

	if q.Category != "" {
		page, err = h.repo.SearchInCategory(ctx, q.Category, q.Term, q.Page)
	} else {
		page, err = h.repo.Search(ctx, q.Term, q.Page)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	return page, nil
}
