package query

import (
	"context"
	"fmt"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// LowStockQuery asks for products with stock strictly below the threshold.
// The threshold itself is excluded; a negative threshold yields an empty
// list by construction and is not an error.
type LowStockQuery struct {
	Threshold int
}

// LowStockHandler handles low stock queries
type LowStockHandler struct {
	repo domain.ProductRepository
}

// NewLowStockHandler creates a new low stock handler
func NewLowStockHandler(repo domain.ProductRepository) *LowStockHandler {
	return &LowStockHandler{repo: repo}
}

// Handle executes the low stock query
func (h *LowStockHandler) Handle(ctx context.Context, q LowStockQuery) ([]domain.Product, error) {
	products, err := h.repo.FindLowStock(ctx, q.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to find low stock products: %w", err)
	}
	return products, nil
}

// OutOfStockQuery asks for products with exactly zero stock.
type OutOfStockQuery struct{}

// OutOfStockHandler handles out of stock queries
type OutOfStockHandler struct {
	repo domain.ProductRepository
}

// NewOutOfStockHandler creates a new out of stock handler
func NewOutOfStockHandler(repo domain.ProductRepository) *OutOfStockHandler {
	return &OutOfStockHandler{repo: repo}
}

// Handle executes the out of stock query
func (h *OutOfStockHandler) Handle(ctx context.Context, _ OutOfStockQuery) ([]domain.Product, error) {
	products, err := h.repo.FindOutOfStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to find out of stock products: %w", err)
	}
	return products, nil
}
