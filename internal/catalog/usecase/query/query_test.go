package query_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
)

func seedCatalog(t *testing.T) *repository.MemoryProductRepository {
	t.Helper()
	repo := repository.NewMemoryProductRepository()

	products := []*domain.Product{
		{Name: "Gaming Laptop", Description: "High-end laptop", Price: decimal.RequireFromString("1299.99"), SKU: "LAP-001", Category: domain.CategoryElectronics, StockQuantity: 5},
		{Name: "Phone", Description: "A smartphone", Price: decimal.RequireFromString("699.00"), SKU: "PHO-001", Category: domain.CategoryElectronics, StockQuantity: 0},
		{Name: "Office Chair", Description: "Ergonomic chair", Price: decimal.RequireFromString("199.50"), SKU: "CHA-001", Category: domain.CategoryFurniture, StockQuantity: 12},
		{Name: "Standing Desk", Description: "Fits a laptop", Price: decimal.RequireFromString("349.00"), SKU: "DSK-001", Category: domain.CategoryFurniture, StockQuantity: 3},
		{Name: "Mystery Box", Description: "Contents unknown", Price: decimal.RequireFromString("9.99"), SKU: "LAPTOP-99", Category: domain.CategoryOther, StockQuantity: 8},
	}
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
	return repo
}

func TestGetProduct(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewGetProductHandler(repo)

	p, err := handler.Handle(context.Background(), query.GetProductQuery{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Gaming Laptop", p.Name)

	_, err = handler.Handle(context.Background(), query.GetProductQuery{ID: 999})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestGetProductBySKU(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewGetProductBySKUHandler(repo)

	p, err := handler.Handle(context.Background(), query.GetProductBySKUQuery{SKU: "CHA-001"})
	require.NoError(t, err)
	assert.Equal(t, "Office Chair", p.Name)

	_, err = handler.Handle(context.Background(), query.GetProductBySKUQuery{SKU: "NOPE-1"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestListProducts(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewListProductsHandler(repo)

	page, err := handler.Handle(context.Background(), query.ListProductsQuery{
		Page: domain.NewPageRequest(0, 2, "", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	assert.Len(t, page.Content, 2)
}

func TestListProductsScopedToCategory(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewListProductsHandler(repo)

	page, err := handler.Handle(context.Background(), query.ListProductsQuery{
		Page:     domain.NewPageRequest(0, 10, "", ""),
		Category: domain.CategoryFurniture,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	for _, p := range page.Content {
		assert.Equal(t, domain.CategoryFurniture, p.Category)
	}
}

func TestCategoryProductsUnpaginated(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewCategoryProductsHandler(repo)

	products, err := handler.Handle(context.Background(), query.CategoryProductsQuery{Category: domain.CategoryElectronics})
	require.NoError(t, err)
	assert.Len(t, products, 2)

	empty, err := handler.Handle(context.Background(), query.CategoryProductsQuery{Category: domain.CategoryBooks})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestSearchProductsCaseInsensitive(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewSearchProductsHandler(repo)

	// Matches name ("Gaming Laptop"), description ("Fits a laptop") and
	// SKU ("LAPTOP-99") regardless of case.
	page, err := handler.Handle(context.Background(), query.SearchProductsQuery{
		Term: "lApToP",
		Page: domain.NewPageRequest(0, 10, "", ""),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestSearchProductsNoMatches(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewSearchProductsHandler(repo)

	page, err := handler.Handle(context.Background(), query.SearchProductsQuery{
		Term: "submarine",
		Page: domain.NewPageRequest(0, 10, "", ""),
	})
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)
	assert.Empty(t, page.Content)
}

func TestSearchProductsInCategoryExcludesSKU(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewSearchProductsHandler(repo)

	// "Mystery Box" matches only via its SKU, which the category-scoped
	// search does not consider.
	page, err := handler.Handle(context.Background(), query.SearchProductsQuery{
		Term:     "laptop",
		Category: domain.CategoryOther,
		Page:     domain.NewPageRequest(0, 10, "", ""),
	})
	require.NoError(t, err)
	assert.Zero(t, page.TotalElements)

	scoped, err := handler.Handle(context.Background(), query.SearchProductsQuery{
		Term:     "laptop",
		Category: domain.CategoryFurniture,
		Page:     domain.NewPageRequest(0, 10, "", ""),
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), scoped.TotalElements)
	assert.Equal(t, "Standing Desk", scoped.Content[0].Name)
}

func TestLowStock(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewLowStockHandler(repo)

	products, err := handler.Handle(context.Background(), query.LowStockQuery{Threshold: 5})
	require.NoError(t, err)
	// Strictly below 5: Phone (0) and Standing Desk (3). Gaming Laptop sits
	// exactly at the threshold and is excluded.
	require.Len(t, products, 2)

	none, err := handler.Handle(context.Background(), query.LowStockQuery{Threshold: -10})
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestOutOfStock(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewOutOfStockHandler(repo)

	products, err := handler.Handle(context.Background(), query.OutOfStockQuery{})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Phone", products[0].Name)
}

func TestExists(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewExistsHandler(repo)

	ok, err := handler.HandleBySKU(context.Background(), query.ExistsBySKUQuery{SKU: "LAP-001"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = handler.HandleBySKU(context.Background(), query.ExistsBySKUQuery{SKU: "NOPE-1"})
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = handler.HandleByName(context.Background(), query.ExistsByNameQuery{Name: "Phone"})
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = handler.HandleByName(context.Background(), query.ExistsByNameQuery{Name: "Ghost"})
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCategoryStats(t *testing.T) {
	repo := seedCatalog(t)
	handler := query.NewCategoryStatsHandler(repo)

	n, err := handler.HandleCount(context.Background(), query.CategoryCountQuery{Category: domain.CategoryElectronics})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	counts, err := handler.HandleGrouped(context.Background(), query.CountByCategoryQuery{})
	require.NoError(t, err)
	// Empty categories are omitted from the grouping.
	require.Len(t, counts, 3)

	byCategory := make(map[domain.Category]int64)
	for _, c := range counts {
		byCategory[c.Category] = c.Count
	}
	assert.Equal(t, int64(2), byCategory[domain.CategoryElectronics])
	assert.Equal(t, int64(2), byCategory[domain.CategoryFurniture])
	assert.Equal(t, int64(1), byCategory[domain.CategoryOther])
}
