package command

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// CreateProductCommand represents the command to create a new product.
// Field-level validation happens at the HTTP boundary before this command is
// built; this layer only enforces the uniqueness rules.
type CreateProductCommand struct {
	Name          string
	Description   string
	Price         decimal.Decimal
	SKU           string
	Category      domain.Category
	StockQuantity int
}

// CreateProductHandler handles product creation command
type CreateProductHandler struct {
	repo domain.ProductRepository
}

// NewCreateProductHandler creates a new create product handler
func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command. SKU uniqueness is checked
// before name uniqueness; the storage constraint backstops both checks
// against concurrent creates.
func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProductCommand) (*domain.Product, error) {
	taken, err := h.repo.ExistsBySKU(ctx, cmd.SKU)
	if err != nil {
		return nil, fmt.Errorf("failed to check SKU: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{Field: "SKU", Value: cmd.SKU}
	}

	taken, err = h.repo.ExistsByName(ctx, cmd.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to check name: %w", err)
	}
	if taken {
		return nil, &domain.ConflictError{Field: "name", Value: cmd.Name}
	}

	product := &domain.Product{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Price:         cmd.Price,
		SKU:           cmd.SKU,
		Category:      cmd.Category,
		StockQuantity: cmd.StockQuantity,
	}

	if err := h.repo.Create(ctx, product); err != nil {
		if domain.IsConflict(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
