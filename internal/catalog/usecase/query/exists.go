package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// ExistsBySKUQuery checks whether a product with the SKU exists.
type ExistsBySKUQuery struct {
	SKU string
}

// ExistsByNameQuery checks whether a product with the name exists.
type ExistsByNameQuery struct {
	Name string
}

// ExistsHandler handles existence checks. The same checks back the
// uniqueness enforcement in the command handlers.
type ExistsHandler struct {
	repo domain.ProductRepository
}

// NewExistsHandler creates a new exists handler
func NewExistsHandler(repo domain.ProductRepository) *ExistsHandler {
	return &ExistsHandler{repo: repo}
}

// HandleBySKU executes the SKU existence check
func (h *ExistsHandler) HandleBySKU(ctx context.Context, q ExistsBySKUQuery) (bool, error) {
	exists, err := h.repo.ExistsBySKU(ctx, q.SKU)
	if err != nil {
		return false, fmt.Errorf("failed to check SKU existence: %w", err)
	}
	return exists, nil
}

// HandleByName executes the name existence check
func (h *ExistsHandler) HandleByName(ctx context.Context, q ExistsByNameQuery) (bool, error) {
	exists, err := h.repo.ExistsByName(ctx, q.Name)
	if err != nil {
		return false, fmt.Errorf("failed to check name existence: %w", err)
	}
	return exists, nil
}
