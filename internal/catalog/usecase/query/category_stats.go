package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// CategoryCountQuery asks for the product count of one category.
type CategoryCountQuery struct {
	Category domain.Category
}

// CountByCategoryQuery asks for counts grouped by category. Categories with
// zero products do not appear in the result.
type CountByCategoryQuery struct{}

// CategoryStatsHandler handles aggregate category statistics
type CategoryStatsHandler struct {
	repo domain.ProductRepository
}

// NewCategoryStatsHandler creates a new category stats handler
func NewCategoryStatsHandler(repo domain.ProductRepository) *CategoryStatsHandler {
	return &CategoryStatsHandler{repo: repo}
}

// HandleCount executes the single-category count query
func (h *CategoryStatsHandler) HandleCount(ctx context.Context, q CategoryCountQuery) (int64, error) {
	count, err := h.repo.CountByCategory(ctx, q.Category)
	if err != nil {
		return 0, fmt.Errorf("failed to count products by category: %w", err)
	}
	return count, nil
}

// HandleGrouped executes the grouped count query
func (h *CategoryStatsHandler) HandleGrouped(ctx context.Context, _ CountByCategoryQuery) ([]domain.CategoryCount, error) {
	counts, err := h.repo.CountGroupedByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to group product counts: %w", err)
	}
	return counts, nil
}
