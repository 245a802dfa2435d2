package command_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
)

func createCmd(name, sku string) command.CreateProductCommand {
	return command.CreateProductCommand{
		Name:          name,
		Description:   "A " + name,
		Price:         decimal.RequireFromString("49.99"),
		SKU:           sku,
		Category:      domain.CategoryElectronics,
		StockQuantity: 10,
	}
}

func TestCreateProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)

	p, err := handler.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "Laptop", p.Name)
	assert.False(t, p.CreatedAt.IsZero())

	stored, err := repo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.True(t, stored.Same(p))
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)

	_, err := handler.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), createCmd("Other", "LAP-001"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SKU", conflict.Field)
	assert.Equal(t, "LAP-001", conflict.Value)
}

func TestCreateProductDuplicateName(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)

	_, err := handler.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), createCmd("Laptop", "OTH-001"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "name", conflict.Field)
}

func TestCreateProductChecksSKUBeforeName(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewCreateProductHandler(repo)

	_, err := handler.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	// Both fields collide; the SKU conflict is reported.
	_, err = handler.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SKU", conflict.Field)
}

func TestUpdateProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	created, err := command.NewCreateProductHandler(repo).Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	handler := command.NewUpdateProductHandler(repo)
	updated, err := handler.Handle(context.Background(), command.UpdateProductCommand{
		ID:            created.ID,
		Name:          "Laptop Pro",
		Description:   "Faster",
		Price:         decimal.RequireFromString("99.99"),
		SKU:           "LAP-002",
		Category:      domain.CategoryElectronics,
		StockQuantity: 3,
	})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Laptop Pro", updated.Name)
	assert.Equal(t, "LAP-002", updated.SKU)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)
}

func TestUpdateProductKeepsOwnIdentity(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	created, err := command.NewCreateProductHandler(repo).Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	// Re-submitting the same name and SKU must not conflict with itself.
	handler := command.NewUpdateProductHandler(repo)
	updated, err := handler.Handle(context.Background(), command.UpdateProductCommand{
		ID:            created.ID,
		Name:          created.Name,
		Description:   "New description",
		Price:         created.Price,
		SKU:           created.SKU,
		Category:      created.Category,
		StockQuantity: 99,
	})
	require.NoError(t, err)
	assert.Equal(t, 99, updated.StockQuantity)
}

func TestUpdateProductConflictsWithOther(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	create := command.NewCreateProductHandler(repo)
	first, err := create.Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)
	_, err = create.Handle(context.Background(), createCmd("Phone", "PHO-001"))
	require.NoError(t, err)

	handler := command.NewUpdateProductHandler(repo)
	_, err = handler.Handle(context.Background(), command.UpdateProductCommand{
		ID:            first.ID,
		Name:          first.Name,
		Description:   first.Description,
		Price:         first.Price,
		SKU:           "PHO-001",
		Category:      first.Category,
		StockQuantity: first.StockQuantity,
	})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "SKU", conflict.Field)
}

func TestUpdateProductNotFound(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	handler := command.NewUpdateProductHandler(repo)

	_, err := handler.Handle(context.Background(), command.UpdateProductCommand{
		ID:    999,
		Name:  "Ghost",
		Price: decimal.RequireFromString("1.00"),
		SKU:   "GHO-001",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProduct(t *testing.T) {
	repo := repository.NewMemoryProductRepository()
	created, err := command.NewCreateProductHandler(repo).Handle(context.Background(), createCmd("Laptop", "LAP-001"))
	require.NoError(t, err)

	handler := command.NewDeleteProductHandler(repo)
	require.NoError(t, handler.Handle(context.Background(), command.DeleteProductCommand{ID: created.ID}))

	// Deleting again reports not found.
	assert.ErrorIs(t, handler.Handle(context.Background(), command.DeleteProductCommand{ID: created.ID}), domain.ErrProductNotFound)
}
