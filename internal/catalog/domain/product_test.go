package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.Category
		wantErr bool
	}{
		{name: "exact match", input: "ELECTRONICS", want: domain.CategoryElectronics},
		{name: "lowercase", input: "electronics", want: domain.CategoryElectronics},
		{name: "mixed case", input: "BoOkS", want: domain.CategoryBooks},
		{name: "surrounding whitespace", input: "  toys  ", want: domain.CategoryToys},
		{name: "unknown", input: "GROCERIES", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := domain.ParseCategory(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCategoriesIsClosedSet(t *testing.T) {
	cats := domain.Categories()
	assert.Len(t, cats, 11)
	assert.Contains(t, cats, domain.CategoryOther)

	// Returned slice is a copy; mutating it must not affect the set.
	cats[0] = domain.Category("HACKED")
	assert.Contains(t, domain.Categories(), domain.CategoryElectronics)
}

func TestProductSame(t *testing.T) {
	a := &domain.Product{ID: 1, SKU: "ABC-123", Name: "Widget"}

	assert.True(t, a.Same(&domain.Product{ID: 1, SKU: "ABC-123", Name: "Renamed"}))
	assert.False(t, a.Same(&domain.Product{ID: 2, SKU: "ABC-123"}))
	assert.False(t, a.Same(&domain.Product{ID: 1, SKU: "XYZ-999"}))
	assert.False(t, a.Same(nil))
}

func TestProductInStock(t *testing.T) {
	assert.True(t, (&domain.Product{StockQuantity: 1}).InStock())
	assert.False(t, (&domain.Product{StockQuantity: 0}).InStock())
}

func TestIsConflict(t *testing.T) {
	err := &domain.ConflictError{Field: "SKU", Value: "ABC-123"}
	assert.True(t, domain.IsConflict(err))
	assert.False(t, domain.IsConflict(domain.ErrProductNotFound))
	assert.Equal(t, "product with SKU ABC-123 already exists", err.Error())
}
