package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/usecase/command"
	"github.com/tair/product-catalog/internal/catalog/usecase/query"
	"github.com/tair/product-catalog/pkg/logger"
)

// CatalogHandler handles HTTP requests for products using CQRS pattern
type CatalogHandler struct {
	// Command handlers
	createHandler *command.CreateProductHandler
	updateHandler *command.UpdateProductHandler
	deleteHandler *command.DeleteProductHandler

	// Query handlers
	getHandler      *query.GetProductHandler
	getBySKUHandler *query.GetProductBySKUHandler
	listHandler     *query.ListProductsHandler
	searchHandler   *query.SearchProductsHandler
	lowStockHandler *query.LowStockHandler
	outStockHandler *query.OutOfStockHandler
	existsHandler   *query.ExistsHandler
	statsHandler    *query.CategoryStatsHandler

	repo           domain.ProductRepository
	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	requestSummary *prometheus.SummaryVec
	totalProducts  prometheus.Gauge
}

// NewCatalogHandler creates a new catalog handler with manual DI
func NewCatalogHandler(repo domain.ProductRepository) *CatalogHandler {
	return NewCatalogHandlerWithDI(
		command.NewCreateProductHandler(repo),
		command.NewUpdateProductHandler(repo),
		command.NewDeleteProductHandler(repo),
		query.NewGetProductHandler(repo),
		query.NewGetProductBySKUHandler(repo),
		query.NewListProductsHandler(repo),
		query.NewSearchProductsHandler(repo),
		query.NewLowStockHandler(repo),
		query.NewOutOfStockHandler(repo),
		query.NewExistsHandler(repo),
		query.NewCategoryStatsHandler(repo),
		repo,
	)
}

// NewCatalogHandlerWithDI creates a new catalog handler; used by Wire.
func NewCatalogHandlerWithDI(
	createHandler *command.CreateProductHandler,
	updateHandler *command.UpdateProductHandler,
	deleteHandler *command.DeleteProductHandler,
	getHandler *query.GetProductHandler,
	getBySKUHandler *query.GetProductBySKUHandler,
	listHandler *query.ListProductsHandler,
	searchHandler *query.SearchProductsHandler,
	lowStockHandler *query.LowStockHandler,
	outStockHandler *query.OutOfStockHandler,
	existsHandler *query.ExistsHandler,
	statsHandler *query.CategoryStatsHandler,
	repo domain.ProductRepository,
) *CatalogHandler {
	requestCounter := registerCounterVec(prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_service_requests_total",
			Help: "Total number of requests to the catalog service",
		},
		[]string{"method", "endpoint", "status"},
	))

	requestLatency := registerHistogramVec(prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_service_request_duration_seconds",
			Help:    "Duration of catalog service requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	))

	requestSummary := registerSummaryVec(prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name: "catalog_service_request_duration_summary",
			Help: "Summary of request durations with client-side quantiles",
			Objectives: map[float64]float64{
				0.5:  0.05,
				0.9:  0.01,
				0.95: 0.01,
				0.99: 0.001,
			},
			MaxAge: 10 * time.Minute,
		},
		[]string{"method", "endpoint"},
	))

	totalProducts := registerGauge(prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_service_total_products",
			Help: "Total number of products in the catalog",
		},
	))

	return &CatalogHandler{
		createHandler:   createHandler,
		updateHandler:   updateHandler,
		deleteHandler:   deleteHandler,
		getHandler:      getHandler,
		getBySKUHandler: getBySKUHandler,
		listHandler:     listHandler,
		searchHandler:   searchHandler,
		lowStockHandler: lowStockHandler,
		outStockHandler: outStockHandler,
		existsHandler:   existsHandler,
		statsHandler:    statsHandler,
		repo:            repo,
		requestCounter:  requestCounter,
		requestLatency:  requestLatency,
		requestSummary:  requestSummary,
		totalProducts:   totalProducts,
	}
}

// Response is the JSON envelope for every endpoint. Failures carry a code
// (NOT_FOUND, CONFLICT, VALIDATION_FAILED, INTERNAL) and a message naming
// the offending field or value.
type Response struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message,omitempty"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Code       string      `json:"code,omitempty"`
	Violations []Violation `json:"violations,omitempty"`
}

const (
	codeNotFound   = "NOT_FOUND"
	codeConflict   = "CONFLICT"
	codeValidation = "VALIDATION_FAILED"
	codeInternal   = "INTERNAL"
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware wraps handlers with Prometheus metrics
func (h *CatalogHandler) metricsMiddleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()

		h.requestCounter.WithLabelValues(r.Method, endpoint, strconv.Itoa(rw.statusCode)).Inc()
		h.requestLatency.WithLabelValues(r.Method, endpoint).Observe(duration)
		h.requestSummary.WithLabelValues(r.Method, endpoint).Observe(duration)
	}
}

// RegisterRoutes wires the catalog routes. The id segment is constrained to
// digits so literal segments like /products/search never collide with it.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.ListProducts)).Methods("GET")
	router.HandleFunc("/products", h.metricsMiddleware("/products", h.CreateProduct)).Methods("POST")
	router.HandleFunc("/products/search", h.metricsMiddleware("/products/search", h.SearchProducts)).Methods("GET")
	router.HandleFunc("/products/low-stock", h.metricsMiddleware("/products/low-stock", h.GetLowStockProducts)).Methods("GET")
	router.HandleFunc("/products/out-of-stock", h.metricsMiddleware("/products/out-of-stock", h.GetOutOfStockProducts)).Methods("GET")
	router.HandleFunc("/products/statistics/count-by-category", h.metricsMiddleware("/products/statistics/count-by-category", h.GetProductCountByCategory)).Methods("GET")
	router.HandleFunc("/products/sku/{sku}", h.metricsMiddleware("/products/sku/{sku}", h.GetProductBySKU)).Methods("GET")
	router.HandleFunc("/products/exists/sku/{sku}", h.metricsMiddleware("/products/exists/sku/{sku}", h.ExistsBySKU)).Methods("GET")
	router.HandleFunc("/products/exists/name/{name}", h.metricsMiddleware("/products/exists/name/{name}", h.ExistsByName)).Methods("GET")
	router.HandleFunc("/products/category/{category}/search", h.metricsMiddleware("/products/category/{category}/search", h.SearchProductsByCategory)).Methods("GET")
	router.HandleFunc("/products/category/{category}/count", h.metricsMiddleware("/products/category/{category}/count", h.CountProductsByCategory)).Methods("GET")
	router.HandleFunc("/products/category/{category}", h.metricsMiddleware("/products/category/{category}", h.GetProductsByCategory)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", h.metricsMiddleware("/products/{id}", h.GetProduct)).Methods("GET")
	router.HandleFunc("/products/{id:[0-9]+}", h.metricsMiddleware("/products/{id}", h.UpdateProduct)).Methods("PUT")
	router.HandleFunc("/products/{id:[0-9]+}", h.metricsMiddleware("/products/{id}", h.DeleteProduct)).Methods("DELETE")
}

// CreateProduct handles POST /products
func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	cmd := command.CreateProductCommand{
		Name:          req.name,
		Description:   req.description,
		Price:         req.price,
		SKU:           req.sku,
		Category:      req.category,
		StockQuantity: req.stockQuantity,
	}

	product, err := h.createHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err, "Failed to create product")
		return
	}

	h.updateProductsMetric(r)

	respondJSON(w, http.StatusCreated, Response{
		Success: true,
		Message: "Product created successfully",
		Data:    product,
	})
}

// GetProduct handles GET /products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: id})
	if err != nil {
		h.respondError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// GetProductBySKU handles GET /products/sku/{sku}
func (h *CatalogHandler) GetProductBySKU(w http.ResponseWriter, r *http.Request) {
	sku := mux.Vars(r)["sku"]

	product, err := h.getBySKUHandler.Handle(r.Context(), query.GetProductBySKUQuery{SKU: sku})
	if err != nil {
		h.respondError(w, r, err, "Failed to get product")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: product})
}

// ListProducts handles GET /products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{Page: parsePageRequest(r)})
	if err != nil {
		h.respondError(w, r, err, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// GetProductsByCategory handles GET /products/category/{category}
func (h *CatalogHandler) GetProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.pathCategory(w, r)
	if !ok {
		return
	}

	page, err := h.listHandler.Handle(r.Context(), query.ListProductsQuery{
		Page:     parsePageRequest(r),
		Category: category,
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to list products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// SearchProducts handles GET /products/search
func (h *CatalogHandler) SearchProducts(w http.ResponseWriter, r *http.Request) {
	term, ok := h.searchTerm(w, r)
	if !ok {
		return
	}

	page, err := h.searchHandler.Handle(r.Context(), query.SearchProductsQuery{
		Term: term,
		Page: parsePageRequest(r),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to search products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// SearchProductsByCategory handles GET /products/category/{category}/search
func (h *CatalogHandler) SearchProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.pathCategory(w, r)
	if !ok {
		return
	}
	term, ok := h.searchTerm(w, r)
	if !ok {
		return
	}

	page, err := h.searchHandler.Handle(r.Context(), query.SearchProductsQuery{
		Term:     term,
		Category: category,
		Page:     parsePageRequest(r),
	})
	if err != nil {
		h.respondError(w, r, err, "Failed to search products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: page})
}

// GetLowStockProducts handles GET /products/low-stock
func (h *CatalogHandler) GetLowStockProducts(w http.ResponseWriter, r *http.Request) {
	threshold := 10
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, Response{
				Success: false,
				Code:    codeValidation,
				Error:   "threshold must be an integer",
			})
			return
		}
		threshold = parsed
	}

	products, err := h.lowStockHandler.Handle(r.Context(), query.LowStockQuery{Threshold: threshold})
	if err != nil {
		h.respondError(w, r, err, "Failed to get low stock products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// GetOutOfStockProducts handles GET /products/out-of-stock
func (h *CatalogHandler) GetOutOfStockProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.outStockHandler.Handle(r.Context(), query.OutOfStockQuery{})
	if err != nil {
		h.respondError(w, r, err, "Failed to get out of stock products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: products})
}

// UpdateProduct handles PUT /products/{id}
func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeAndValidate(w, r)
	if !ok {
		return
	}

	cmd := command.UpdateProductCommand{
		ID:            id,
		Name:          req.name,
		Description:   req.description,
		Price:         req.price,
		SKU:           req.sku,
		Category:      req.category,
		StockQuantity: req.stockQuantity,
	}

	product, err := h.updateHandler.Handle(r.Context(), cmd)
	if err != nil {
		h.respondError(w, r, err, "Failed to update product")
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Product updated successfully",
		Data:    product,
	})
}

// DeleteProduct handles DELETE /products/{id}
func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.deleteHandler.Handle(r.Context(), command.DeleteProductCommand{ID: id}); err != nil {
		h.respondError(w, r, err, "Failed to delete product")
		return
	}

	h.updateProductsMetric(r)

	w.WriteHeader(http.StatusNoContent)
}

// GetProductCountByCategory handles GET /products/statistics/count-by-category
func (h *CatalogHandler) GetProductCountByCategory(w http.ResponseWriter, r *http.Request) {
	counts, err := h.statsHandler.HandleGrouped(r.Context(), query.CountByCategoryQuery{})
	if err != nil {
		h.respondError(w, r, err, "Failed to get statistics")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: counts})
}

// CountProductsByCategory handles GET /products/category/{category}/count
func (h *CatalogHandler) CountProductsByCategory(w http.ResponseWriter, r *http.Request) {
	category, ok := h.pathCategory(w, r)
	if !ok {
		return
	}

	count, err := h.statsHandler.HandleCount(r.Context(), query.CategoryCountQuery{Category: category})
	if err != nil {
		h.respondError(w, r, err, "Failed to count products")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: count})
}

// ExistsBySKU handles GET /products/exists/sku/{sku}
func (h *CatalogHandler) ExistsBySKU(w http.ResponseWriter, r *http.Request) {
	sku := mux.Vars(r)["sku"]

	exists, err := h.existsHandler.HandleBySKU(r.Context(), query.ExistsBySKUQuery{SKU: sku})
	if err != nil {
		h.respondError(w, r, err, "Failed to check SKU")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: exists})
}

// ExistsByName handles GET /products/exists/name/{name}
func (h *CatalogHandler) ExistsByName(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	exists, err := h.existsHandler.HandleByName(r.Context(), query.ExistsByNameQuery{Name: name})
	if err != nil {
		h.respondError(w, r, err, "Failed to check name")
		return
	}

	respondJSON(w, http.StatusOK, Response{Success: true, Data: exists})
}

// RegisterHealthCheck registers /health. The db may be nil for the in-memory
// driver.
func (h *CatalogHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			if err := db.Ping(); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, Response{
					Success: false,
					Error:   "Database unavailable",
				})
				return
			}
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Catalog service is healthy",
		})
	}).Methods("GET")
}

// validatedRequest carries the typed fields of a request that passed
// field-level validation.
type validatedRequest struct {
	name          string
	description   string
	price         decimal.Decimal
	sku           string
	category      domain.Category
	stockQuantity int
}

func (h *CatalogHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request) (*validatedRequest, bool) {
	var req productRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Code:    codeValidation,
			Error:   "Invalid request body",
		})
		return nil, false
	}

	if violations := validateProductRequest(req); len(violations) > 0 {
		respondJSON(w, http.StatusBadRequest, Response{
			Success:    false,
			Code:       codeValidation,
			Error:      "Validation failed",
			Violations: violations,
		})
		return nil, false
	}

	category, _ := domain.ParseCategory(req.Category)
	stock := 0
	if req.StockQuantity != nil {
		stock = *req.StockQuantity
	}

	return &validatedRequest{
		name:          req.Name,
		description:   req.Description,
		price:         *req.Price,
		sku:           req.SKU,
		category:      category,
		stockQuantity: stock,
	}, true
}

func (h *CatalogHandler) pathCategory(w http.ResponseWriter, r *http.Request) (domain.Category, bool) {
	category, err := domain.ParseCategory(mux.Vars(r)["category"])
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Code:    codeValidation,
			Error:   err.Error(),
		})
		return "", false
	}
	return category, true
}

func (h *CatalogHandler) searchTerm(w http.ResponseWriter, r *http.Request) (string, bool) {
	term := r.URL.Query().Get("searchTerm")
	if term == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Code:    codeValidation,
			Error:   "searchTerm is required",
		})
		return "", false
	}
	return term, true
}

// respondError maps domain errors onto HTTP status codes: not found to 404,
// conflict to 409, anything else to a generic 500.
func (h *CatalogHandler) respondError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	var conflict *domain.ConflictError

	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Code:    codeNotFound,
			Error:   domain.ErrProductNotFound.Error(),
		})
	case errors.As(err, &conflict):
		logger.Warn(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusConflict, Response{
			Success: false,
			Code:    codeConflict,
			Error:   conflict.Error(),
		})
	case errors.Is(err, domain.ErrInvalidInput):
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Code:    codeValidation,
			Error:   err.Error(),
		})
	default:
		logger.Error(r.Context()).Err(err).Msg(logMsg)
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Code:    codeInternal,
			Error:   "Internal server error",
		})
	}
}

// pathID parses the {id} segment. The route pattern restricts it to digits,
// but a long enough digit run still overflows int64; such an id cannot exist,
// so it reports not found rather than clamping.
func (h *CatalogHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		respondJSON(w, http.StatusNotFound, Response{
			Success: false,
			Code:    codeNotFound,
			Error:   domain.ErrProductNotFound.Error(),
		})
		return 0, false
	}
	return id, true
}

func parsePageRequest(r *http.Request) domain.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	size, _ := strconv.Atoi(q.Get("size"))
	return domain.NewPageRequest(page, size, q.Get("sort"), q.Get("direction"))
}

// updateProductsMetric refreshes the total products gauge
func (h *CatalogHandler) updateProductsMetric(r *http.Request) {
	counts, err := h.repo.CountGroupedByCategory(r.Context())
	if err != nil {
		return
	}
	var total int64
	for _, c := range counts {
		total += c.Count
	}
	h.totalProducts.Set(float64(total))
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func registerCounterVec(c *prometheus.CounterVec) *prometheus.CounterVec {
	var are prometheus.AlreadyRegisteredError
	if err := prometheus.Register(c); errors.As(err, &are) {
		return are.ExistingCollector.(*prometheus.CounterVec)
	}
	return c
}

func registerHistogramVec(c *prometheus.HistogramVec) *prometheus.HistogramVec {
	var are prometheus.AlreadyRegisteredError
	if err := prometheus.Register(c); errors.As(err, &are) {
		return are.ExistingCollector.(*prometheus.HistogramVec)
	}
	return c
}

func registerSummaryVec(c *prometheus.SummaryVec) *prometheus.SummaryVec {
	var are prometheus.AlreadyRegisteredError
	if err := prometheus.Register(c); errors.As(err, &are) {
		return are.ExistingCollector.(*prometheus.SummaryVec)
	}
	return c
}

func registerGauge(c prometheus.Gauge) prometheus.Gauge {
	var are prometheus.AlreadyRegisteredError
	if err := prometheus.Register(c); errors.As(err, &are) {
		return are.ExistingCollector.(prometheus.Gauge)
	}
	return c
}
