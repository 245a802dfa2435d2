package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/tair/product-catalog/docs"
	"github.com/tair/product-catalog/internal/catalog"
	httpDelivery "github.com/tair/product-catalog/internal/catalog/delivery/http"
	"github.com/tair/product-catalog/internal/catalog/domain"
	"github.com/tair/product-catalog/internal/catalog/repository"
	"github.com/tair/product-catalog/pkg/database"
	"github.com/tair/product-catalog/pkg/logger"
	"github.com/tair/product-catalog/pkg/tracing"
)

func main() {
	// Initialize logger
	serviceName := getEnv("OTEL_SERVICE_NAME", "catalog-service")
	isDevelopment := getEnv("ENVIRONMENT", "development") == "development"
	logger.Init(serviceName, getEnv("LOG_LEVEL", "info"), isDevelopment)

	logger.Logger.Info().
		Str("service", serviceName).
		Str("environment", getEnv("ENVIRONMENT", "development")).
		Msg("Starting catalog service")

	// Initialize tracer
	tp, err := tracing.InitTracer(serviceName)
	if err != nil {
		logger.Logger.Error().Err(err).Msg("Failed to initialize tracer")
	} else {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := tracing.Shutdown(ctx, tp); err != nil {
				logger.Logger.Error().Err(err).Msg("Failed to shutdown tracer")
			}
		}()
	}

	handler, db, err := buildHandler()
	if err != nil {
		logger.Logger.Fatal().Err(err).Msg("Failed to initialize handler")
	}
	if db != nil {
		defer db.Close()
	}

	logger.Logger.Info().Msg("Catalog handler initialized")

	// Start HTTP server
	httpPort := getEnv("HTTP_PORT", "8080")
	srv := newHTTPServer(handler, db, httpPort)

	go func() {
		logger.Logger.Info().
			Str("port", httpPort).
			Str("metrics_endpoint", "/metrics").
			Str("swagger_endpoint", "/swagger/index.html").
			Msg("HTTP server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal().Err(err).Msg("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error().Err(err).Msg("Forced shutdown")
	}
}

// buildHandler wires the catalog handler for the configured storage driver.
// The returned *sql.DB is nil for the memory driver.
func buildHandler() (*httpDelivery.CatalogHandler, *sql.DB, error) {
	dbConfig := database.Config{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", "postgres"),
		DBName:   getEnv("DB_NAME", "catalogdb"),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	switch driver := getEnv("DB_DRIVER", "postgres"); driver {
	case "postgres":
		db, err := database.NewPostgresConnection(dbConfig)
		if err != nil {
			return nil, nil, err
		}
		handler, err := catalog.InitializeHTTPHandler(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return handler, db, nil

	case "gorm":
		db, err := database.NewGormConnection(dbConfig)
		if err != nil {
			return nil, nil, err
		}
		if err := db.AutoMigrate(&domain.Product{}); err != nil {
			return nil, nil, err
		}
		handler, err := catalog.InitializeGormHTTPHandler(db)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, nil, err
		}
		return handler, sqlDB, nil

	case "memory":
		repo := repository.NewTracingProductRepository(repository.NewMemoryProductRepository())
		return httpDelivery.NewCatalogHandler(repo), nil, nil

	default:
		logger.Logger.Fatal().Str("driver", driver).Msg("Unknown DB_DRIVER")
		return nil, nil, nil
	}
}

func newHTTPServer(handler *httpDelivery.CatalogHandler, db *sql.DB, port string) *http.Server {
	// Setup router
	router := mux.NewRouter()

	// Register routes
	handler.RegisterRoutes(router)

	// Health check endpoint
	handler.RegisterHealthCheck(router, db)

	// Prometheus metrics endpoint
	router.Handle("/metrics", promhttp.Handler())

	// Swagger UI
	httpDelivery.RegisterSwaggerDocs(router, httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	// CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	root := httpDelivery.TracingMiddleware("catalog-service",
		httpDelivery.RequestLoggingMiddleware(c.Handler(router)))

	return &http.Server{
		Addr:    ":" + port,
		Handler: root,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
