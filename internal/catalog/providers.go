package catalog

import (
	"database/sql"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the postgres-backed product repository,
// wrapped with tracing. The schema is created on first use.
func ProvideProductRepository(db *sql.DB) (domain.ProductRepository, error) {
	repo := repository.NewPostgresProductRepository(db)
	if err := repo.InitSchema(); err != nil {
		return nil, err
	}
	return repository.NewTracingProductRepository(repo), nil
}

// ProvideGormProductRepository provides the gorm-backed product repository,
// wrapped with tracing. Migration is the caller's responsibility.
func ProvideGormProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewTracingProductRepository(repository.NewGormProductRepository(db))
}

// Command Handlers Providers
func ProvideCreateProductHandler(repo domain.ProductRepository) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo)
}

// Query Handlers Providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideGetProductBySKUHandler(repo domain.ProductRepository) *query.GetProductBySKUHandler {
	return query.NewGetProductBySKUHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideSearchProductsHandler(repo domain.ProductRepository) *query.SearchProductsHandler {
	return query.NewSearchProductsHandler(repo)
}

func ProvideLowStockHandler(repo domain.ProductRepository) *query.LowStockHandler {
	return query.NewLowStockHandler(repo)
}

func ProvideOutOfStockHandler(repo domain.ProductRepository) *query.OutOfStockHandler {
	return query.NewOutOfStockHandler(repo)
}

func ProvideExistsHandler(repo domain.ProductRepository) *query.ExistsHandler {
	return query.NewExistsHandler(repo)
}

func ProvideCategoryStatsHandler(repo domain.ProductRepository) *query.CategoryStatsHandler {
	return query.NewCategoryStatsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
)

var GormRepositorySet = wire.NewSet(
	ProvideGormProductRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideGetProductBySKUHandler,
	ProvideListProductsHandler,
	ProvideSearchProductsHandler,
	ProvideLowStockHandler,
	ProvideOutOfStockHandler,
	ProvideExistsHandler,
	ProvideCategoryStatsHandler,
)

var AllHandlersSet = wire.NewSet(
	CommandHandlerSet,
	QueryHandlerSet,
)
