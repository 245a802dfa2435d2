//go:build wireinject
// +build wireinject

package catalog

import (
	"database/sql"

	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/tair/product-catalog/internal/catalog/delivery/http"
)

// InitializeHTTPHandler initializes the HTTP handler with all dependencies
// on top of a plain database/sql connection.
func InitializeHTTPHandler(db *sql.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		AllHandlersSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}

// InitializeGormHTTPHandler initializes the HTTP handler on top of a gorm
// connection.
func InitializeGormHTTPHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		GormRepositorySet,
		AllHandlersSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
