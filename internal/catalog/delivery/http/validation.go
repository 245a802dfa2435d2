package http

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// productRequest is the write payload for create and update. Price and
// stockQuantity are pointers so that absence can be told apart from zero.
type productRequest struct {
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	SKU           string           `json:"sku"`
	Category      string           `json:"category"`
	StockQuantity *int             `json:"stockQuantity"`
}

// Violation is one field-level validation failure.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

var (
	skuPattern = regexp.MustCompile(`^[A-Z0-9-]+$`)

	minPrice = decimal.RequireFromString("0.01")
	maxPrice = decimal.RequireFromString("99999.99")
)

// validateProductRequest applies the field-level rules, identically for
// create and update, and returns every violation rather than stopping at
// the first.
func validateProductRequest(req productRequest) []Violation {
	var violations []Violation

	add := func(field, message string) {
		violations = append(violations, Violation{Field: field, Message: message})
	}

	// Length bounds count characters, not bytes.
	switch nameLen := utf8.RuneCountInString(req.Name); {
	case req.Name == "":
		add("name", "Product name is required")
	case nameLen < 2 || nameLen > 100:
		add("name", "Product name must be between 2 and 100 characters")
	}

	if utf8.RuneCountInString(req.Description) > 500 {
		add("description", "Product description must not exceed 500 characters")
	}

	switch {
	case req.Price == nil:
		add("price", "Product price is required")
	case req.Price.LessThan(minPrice):
		add("price", "Product price must be at least 0.01")
	case req.Price.GreaterThan(maxPrice):
		add("price", "Product price must not exceed 99999.99")
	case !req.Price.Equal(req.Price.Round(2)):
		add("price", "Product price must have at most 2 fraction digits")
	}

	switch {
	case req.SKU == "":
		add("sku", "Product SKU is required")
	case len(req.SKU) < 3 || len(req.SKU) > 20:
		add("sku", "Product SKU must be between 3 and 20 characters")
	case !skuPattern.MatchString(req.SKU):
		add("sku", "Product SKU must contain only uppercase letters, numbers, and hyphens")
	}

	if req.Category == "" {
		add("category", "Product category is required")
	} else if _, err := domain.ParseCategory(req.Category); err != nil {
		add("category", fmt.Sprintf("Product category must be one of %v", domain.Categories()))
	}

	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		add("stockQuantity", "Stock quantity cannot be negative")
	}

	return violations
}
