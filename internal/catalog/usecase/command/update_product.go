package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update a product. All
// mutable fields are replaced in one operation; id and createdAt are
// immutable.
type UpdateProductCommand struct {
	ID            int64
	Name          string
	Description   string
	Price         decimal.Decimal
	SKU           string
	Category      domain.Category
	StockQuantity int
}

// UpdateProductHandler handles product update command
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

// NewUpdateProductHandler creates a new update product handler
func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command. Uniqueness is re-checked only
// for fields whose value changed, so an update that keeps its own name and
// SKU never conflicts with itself.
func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProductCommand) (*domain.Product, error) {
	existing, err := h.repo.FindByID(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	if cmd.SKU != existing.SKU {
		taken, err := h.repo.ExistsBySKU(ctx, cmd.SKU)
		if err != nil {
			return nil, fmt.Errorf("failed to check SKU: %w", err)
		}
		if taken {
			return nil, &domain.ConflictError{Field: "SKU", Value: cmd.SKU}
		}
	}

	if cmd.Name != existing.Name {
		taken, err := h.repo.ExistsByName(ctx, cmd.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to check name: %w", err)
		}
		if taken {
			return nil, &domain.ConflictError{Field: "name", Value: cmd.Name}
		}
	}

	existing.Name = cmd.Name
	existing.Description = cmd.Description
	existing.Price = cmd.Price
	existing.SKU = cmd.SKU
	existing.Category = cmd.Category
	existing.StockQuantity = cmd.StockQuantity

	if err := h.repo.Update(ctx, existing); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return existing, nil
}
