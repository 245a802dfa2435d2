package repository_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/repository"
)

func newProduct(name, sku string, category domain.Category, stock int) *domain.Product {
	return &domain.Product{
		Name:          name,
		Description:   "A " + name,
		Price:         decimal.RequireFromString("19.99"),
		SKU:           sku,
		Category:      category,
		StockQuantity: stock,
	}
}

func seed(t *testing.T, repo domain.ProductRepository, products ...*domain.Product) {
	t.Helper()
	for _, p := range products {
		require.NoError(t, repo.Create(context.Background(), p))
	}
}

func TestMemoryCreateAssignsIDAndTimestamps(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	p := newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5)

	require.NoError(t, repo.Create(context.Background(), p))

	assert.Equal(t, int64(1), p.ID)
	assert.False(t, p.CreatedAt.IsZero())
	assert.Equal(t, p.CreatedAt, p.UpdatedAt)

	q := newProduct("Mouse", "MOU-001", domain.CategoryElectronics, 5)
	require.NoError(t, repo.Create(context.Background(), q))
	assert.Equal(t, int64(2), q.ID)
}

func TestMemoryCreateConflicts(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo, newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5))

	err := repo.Create(context.Background(), newProduct("Other", "LAP-001", domain.CategoryElectronics, 1))
	require.Error(t, err)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SKU", conflict.Field)

	err = repo.Create(context.Background(), newProduct("Laptop", "OTH-001", domain.CategoryElectronics, 1))
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Field)
}

func TestMemoryFindByID(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	p := newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5)
	seed(t, repo, p)

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", found.Name)

	_, err = repo.FindByID(context.Background(), 999)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryFindBySKUAndName(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo, newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5))

	bySKU, err := repo.FindBySKU(context.Background(), "LAP-001")
	require.NoError(t, err)
	assert.Equal(t, "Laptop", bySKU.Name)

	byName, err := repo.FindByName(context.Background(), "Laptop")
	require.NoError(t, err)
	assert.Equal(t, "LAP-001", byName.SKU)

	_, err = repo.FindBySKU(context.Background(), "NOPE-1")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryFindAllPagination(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo,
		newProduct("Alpha", "SKU-001", domain.CategoryBooks, 1),
		newProduct("Bravo", "SKU-002", domain.CategoryBooks, 2),
		newProduct("Charlie", "SKU-003", domain.CategoryBooks, 3),
		newProduct("Delta", "SKU-004", domain.CategoryBooks, 4),
		newProduct("Echo", "SKU-005", domain.CategoryBooks, 5),
	)

	page, err := repo.FindAll(context.Background(), domain.NewPageRequest(0, 2, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(5), page.TotalElements)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Content, 2)
	assert.Equal(t, "Alpha", page.Content[0].Name)

	last, err := repo.FindAll(context.Background(), domain.NewPageRequest(2, 2, "", ""))
	require.NoError(t, err)
	require.Len(t, last.Content, 1)
	assert.Equal(t, "Echo", last.Content[0].Name)

	beyond, err := repo.FindAll(context.Background(), domain.NewPageRequest(10, 2, "", ""))
	require.NoError(t, err)
	assert.Empty(t, beyond.Content)
	assert.Equal(t, int64(5), beyond.TotalElements)
}

func TestMemoryFindAllSorting(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	cheap := newProduct("Cheap", "CHP-001", domain.CategoryToys, 1)
	cheap.Price = decimal.RequireFromString("1.50")
	dear := newProduct("Dear", "DEA-001", domain.CategoryToys, 1)
	dear.Price = decimal.RequireFromString("99.00")
	mid := newProduct("Mid", "MID-001", domain.CategoryToys, 1)
	mid.Price = decimal.RequireFromString("20.00")
	seed(t, repo, dear, cheap, mid)

	page, err := repo.FindAll(context.Background(), domain.NewPageRequest(0, 10, "price", "desc"))
	require.NoError(t, err)
	require.Len(t, page.Content, 3)
	assert.Equal(t, "Dear", page.Content[0].Name)
	assert.Equal(t, "Cheap", page.Content[2].Name)
}

func TestMemoryCategoryQueries(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo,
		newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5),
		newProduct("Phone", "PHO-001", domain.CategoryElectronics, 3),
		newProduct("Chair", "CHA-001", domain.CategoryFurniture, 2),
	)

	electronics, err := repo.FindByCategory(context.Background(), domain.CategoryElectronics)
	require.NoError(t, err)
	assert.Len(t, electronics, 2)

	page, err := repo.FindByCategoryPaged(context.Background(), domain.CategoryElectronics, domain.NewPageRequest(0, 1, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.TotalElements)
	assert.Len(t, page.Content, 1)

	none, err := repo.FindByCategory(context.Background(), domain.CategoryBooks)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestMemorySearchMatchesNameDescriptionAndSKU(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	byName := newProduct("Gaming Laptop", "LAP-001", domain.CategoryElectronics, 5)
	byDesc := newProduct("Desk", "DSK-001", domain.CategoryFurniture, 2)
	byDesc.Description = "a laptop stand"
	bySKU := newProduct("Mystery Box", "LAPTOP-99", domain.CategoryOther, 1)
	unrelated := newProduct("Chair", "CHA-001", domain.CategoryFurniture, 2)
	seed(t, repo, byName, byDesc, bySKU, unrelated)

	page, err := repo.Search(context.Background(), "LaPtOp", domain.NewPageRequest(0, 10, "", ""))
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.TotalElements)
}

func TestMemorySearchInCategoryIgnoresSKU(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	byName := newProduct("Gaming Laptop", "GAM-001", domain.CategoryElectronics, 5)
	bySKUOnly := newProduct("Mystery Box", "LAPTOP-99", domain.CategoryElectronics, 1)
	otherCategory := newProduct("Laptop Desk", "DSK-001", domain.CategoryFurniture, 2)
	seed(t, repo, byName, bySKUOnly, otherCategory)

	page, err := repo.SearchInCategory(context.Background(), domain.CategoryElectronics, "laptop", domain.NewPageRequest(0, 10, "", ""))
	require.NoError(t, err)
	require.Equal(t, int64(1), page.TotalElements)
	assert.Equal(t, "Gaming Laptop", page.Content[0].Name)
}

func TestMemoryStockQueries(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo,
		newProduct("Empty", "EMP-001", domain.CategoryToys, 0),
		newProduct("Low", "LOW-001", domain.CategoryToys, 5),
		newProduct("AtThreshold", "ATT-001", domain.CategoryToys, 10),
		newProduct("Plenty", "PLE-001", domain.CategoryToys, 50),
	)

	low, err := repo.FindLowStock(context.Background(), 10)
	require.NoError(t, err)
	// Strictly below: the product exactly at the threshold is excluded.
	assert.Len(t, low, 2)

	none, err := repo.FindLowStock(context.Background(), -1)
	require.NoError(t, err)
	assert.Empty(t, none)

	out, err := repo.FindOutOfStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Empty", out[0].Name)
}

func TestMemoryExists(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo, newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5))

	ok, err := repo.ExistsBySKU(context.Background(), "LAP-001")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsBySKU(context.Background(), "NOPE-1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = repo.ExistsByName(context.Background(), "Laptop")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryUpdate(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	p := newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5)
	other := newProduct("Phone", "PHO-001", domain.CategoryElectronics, 3)
	seed(t, repo, p, other)

	p.Name = "Laptop Pro"
	p.StockQuantity = 7
	require.NoError(t, repo.Update(context.Background(), p))

	found, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Laptop Pro", found.Name)
	assert.Equal(t, 7, found.StockQuantity)

	// Colliding with another product's SKU is rejected.
	p.SKU = "PHO-001"
	err = repo.Update(context.Background(), p)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SKU", conflict.Field)

	missing := newProduct("Ghost", "GHO-001", domain.CategoryOther, 0)
	missing.ID = 999
	assert.ErrorIs(t, repo.Update(context.Background(), missing), domain.ErrProductNotFound)
}

func TestMemoryDelete(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	p := newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5)
	seed(t, repo, p)

	require.NoError(t, repo.Delete(context.Background(), p.ID))
	assert.ErrorIs(t, repo.Delete(context.Background(), p.ID), domain.ErrProductNotFound)

	_, err := repo.FindByID(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestMemoryCategoryCounts(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	seed(t, repo,
		newProduct("Laptop", "LAP-001", domain.CategoryElectronics, 5),
		newProduct("Phone", "PHO-001", domain.CategoryElectronics, 3),
		newProduct("Chair", "CHA-001", domain.CategoryFurniture, 2),
	)

	n, err := repo.CountByCategory(context.Background(), domain.CategoryElectronics)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	n, err = repo.CountByCategory(context.Background(), domain.CategoryBooks)
	require.NoError(t, err)
	assert.Zero(t, n)

	counts, err := repo.CountGroupedByCategory(context.Background())
	require.NoError(t, err)
	// Only categories that have products appear.
	require.Len(t, counts, 2)
	assert.Equal(t, domain.CategoryElectronics, counts[0].Category)
	assert.Equal(t, int64(2), counts[0].Count)
	assert.Equal(t, domain.CategoryFurniture, counts[1].Category)
	assert.Equal(t, int64(1), counts[1].Count)
}
