package http

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterSwaggerDocs registers the Swagger UI route
func RegisterSwaggerDocs(router *mux.Router, swaggerHandler http.Handler) {
	router.PathPrefix("/swagger/").Handler(swaggerHandler)
}

// CreateProduct godoc
// @Summary Create a new product
// @Description Create a product with a unique name and SKU
// @Tags Products
// @Accept json
// @Produce json
// @Param request body object{name=string,description=string,price=number,sku=string,category=string,stockQuantity=int} true "Product data"
// @Success 201 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,code=string,error=string,violations=array}
// @Failure 409 {object} object{success=bool,code=string,error=string}
// @Router /products [post]
func (h *CatalogHandler) CreateProductDoc() {}

// ListProducts godoc
// @Summary List all products
// @Description Get a paginated list of products
// @Tags Products
// @Produce json
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Param sort query string false "Sort field"
// @Param direction query string false "Sort direction (asc or desc)"
// @Success 200 {object} object{success=bool,data=object{content=array,totalElements=int,totalPages=int,number=int,size=int}}
// @Failure 500 {object} object{success=bool,code=string,error=string}
// @Router /products [get]
func (h *CatalogHandler) ListProductsDoc() {}

// GetProduct godoc
// @Summary Get product by ID
// @Description Get a specific product by its ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,code=string,error=string}
// @Router /products/{id} [get]
func (h *CatalogHandler) GetProductDoc() {}

// GetProductBySKU godoc
// @Summary Get product by SKU
// @Description Get a specific product by its SKU
// @Tags Products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 404 {object} object{success=bool,code=string,error=string}
// @Router /products/sku/{sku} [get]
func (h *CatalogHandler) GetProductBySKUDoc() {}

// GetProductsByCategory godoc
// @Summary List products in a category
// @Description Get a paginated list of products filtered by category
// @Tags Products
// @Produce json
// @Param category path string true "Product category"
// @Param page query int false "Page number (0-based)"
// @Param size query int false "Page size"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,code=string,error=string}
// @Router /products/category/{category} [get]
func (h *CatalogHandler) GetProductsByCategoryDoc() {}

// SearchProducts godoc
// @Summary Search products
// @Description Case-insensitive substring search over name, description and SKU
// @Tags Products
// @Produce json
// @Param searchTerm query string true "Search term"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,code=string,error=string}
// @Router /products/search [get]
func (h *CatalogHandler) SearchProductsDoc() {}

// SearchProductsByCategory godoc
// @Summary Search products within a category
// @Description Case-insensitive substring search over name and description, scoped to a category
// @Tags Products
// @Produce json
// @Param category path string true "Product category"
// @Param searchTerm query string true "Search term"
// @Success 200 {object} object{success=bool,data=object}
// @Failure 400 {object} object{success=bool,code=string,error=string}
// @Router /products/category/{category}/search [get]
func (h *CatalogHandler) SearchProductsByCategoryDoc() {}

// GetLowStockProducts godoc
// @Summary List low stock products
// @Description Products with stock strictly below the threshold
// @Tags Products
// @Produce json
// @Param threshold query int false "Stock threshold (default 10)"
// @Success 200 {object} object{success=bool,data=array}
// @Router /products/low-stock [get]
func (h *CatalogHandler) GetLowStockProductsDoc() {}

// GetOutOfStockProducts godoc
// @Summary List out of stock products
// @Description Products with zero stock
// @Tags Products
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /products/out-of-stock [get]
func (h *CatalogHandler) GetOutOfStockProductsDoc() {}

// UpdateProduct godoc
// @Summary Update a product
// @Description Replace all mutable fields of an existing product
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param request body object{name=string,description=string,price=number,sku=string,category=string,stockQuantity=int} true "Product data"
// @Success 200 {object} object{success=bool,message=string,data=object}
// @Failure 400 {object} object{success=bool,code=string,error=string,violations=array}
// @Failure 404 {object} object{success=bool,code=string,error=string}
// @Failure 409 {object} object{success=bool,code=string,error=string}
// @Router /products/{id} [put]
func (h *CatalogHandler) UpdateProductDoc() {}

// DeleteProduct godoc
// @Summary Delete a product
// @Description Permanently delete a product by ID
// @Tags Products
// @Param id path int true "Product ID"
// @Success 204 {string} string "No Content"
// @Failure 404 {object} object{success=bool,code=string,error=string}
// @Router /products/{id} [delete]
func (h *CatalogHandler) DeleteProductDoc() {}

// GetProductCountByCategory godoc
// @Summary Product counts grouped by category
// @Description One entry per category that has at least one product
// @Tags Statistics
// @Produce json
// @Success 200 {object} object{success=bool,data=array}
// @Router /products/statistics/count-by-category [get]
func (h *CatalogHandler) GetProductCountByCategoryDoc() {}

// ExistsBySKU godoc
// @Summary Check whether a SKU exists
// @Tags Products
// @Produce json
// @Param sku path string true "Product SKU"
// @Success 200 {object} object{success=bool,data=bool}
// @Router /products/exists/sku/{sku} [get]
func (h *CatalogHandler) ExistsBySKUDoc() {}

// ExistsByName godoc
// @Summary Check whether a product name exists
// @Tags Products
// @Produce json
// @Param name path string true "Product name"
// @Success 200 {object} object{success=bool,data=bool}
// @Router /products/exists/name/{name} [get]
func (h *CatalogHandler) ExistsByNameDoc() {}

// CountProductsByCategory godoc
// @Summary Count products in a category
// @Tags Statistics
// @Produce json
// @Param category path string true "Product category"
// @Success 200 {object} object{success=bool,data=int}
// @Failure 400 {object} object{success=bool,code=string,error=string}
// @Router /products/category/{category}/count [get]
func (h *CatalogHandler) CountProductsByCategoryDoc() {}

// HealthCheck godoc
// @Summary Health check
// @Description Check service health and database connectivity
// @Tags Health
// @Produce json
// @Success 200 {object} object{success=bool,message=string}
// @Failure 503 {object} object{success=bool,error=string}
// @Router /health [get]
func (h *CatalogHandler) HealthCheckDoc() {}
