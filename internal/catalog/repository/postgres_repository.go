package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

const productColumns = "id, name, description, price, sku, category, stock_quantity, created_at, updated_at"

// PostgresProductRepository implements ProductRepository with hand-written
// parameterized SQL over database/sql.
type PostgresProductRepository struct {
	db *sql.DB
}

// NewPostgresProductRepository creates a new PostgreSQL product repository
func NewPostgresProductRepository(db *sql.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// InitSchema creates the products table, its uniqueness constraints and the
// secondary indexes backing the query patterns.
func (r *PostgresProductRepository) InitSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			description VARCHAR(500),
			price NUMERIC(10,2) NOT NULL,
			sku VARCHAR(20) NOT NULL,
			category VARCHAR(20) NOT NULL,
			stock_quantity INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMP NOT NULL DEFAULT NOW(),
			CONSTRAINT uk_products_sku UNIQUE (sku),
			CONSTRAINT uk_products_name UNIQUE (name)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_products_name ON products (name)`,
		`CREATE INDEX IF NOT EXISTS idx_products_sku ON products (sku)`,
		`CREATE INDEX IF NOT EXISTS idx_products_category ON products (category)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Create inserts a new product. Both timestamps are assigned here; the
// generated id is read back into the product.
func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	query := `
		INSERT INTO products (name, description, price, sku, category, stock_quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`

	now := time.Now().UTC().Truncate(time.Microsecond)
	product.CreatedAt = now
	product.UpdatedAt = now

	err := r.db.QueryRowContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Category,
		product.StockQuantity,
		product.CreatedAt,
		product.UpdatedAt,
	).Scan(&product.ID)

	if err != nil {
		return r.translateError(err, product, "failed to create product")
	}

	return nil
}

// FindByID retrieves a product by ID
func (r *PostgresProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// FindBySKU retrieves a product by its exact SKU
func (r *PostgresProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1`
	return r.queryOne(ctx, query, sku)
}

// FindByName retrieves a product by its exact name
func (r *PostgresProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE name = $1`
	return r.queryOne(ctx, query, name)
}

// FindAll returns one page of products plus totals.
func (r *PostgresProductRepository) FindAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM products`)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products ORDER BY %s %s LIMIT $1 OFFSET $2`,
		productColumns, page.SortColumn(), sortDirection(page),
	)
	products, err := r.queryMany(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return domain.NewPage(products, total, page), nil
}

// FindByCategory returns every product in a category, unpaginated.
func (r *PostgresProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE category = $1 ORDER BY id`
	return r.queryMany(ctx, query, category)
}

// FindByCategoryPaged returns one page of products in a category.
func (r *PostgresProductRepository) FindByCategoryPaged(ctx context.Context, category domain.Category, page domain.PageRequest) (*domain.Page, error) {
	total, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, category)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE category = $1 ORDER BY %s %s LIMIT $2 OFFSET $3`,
		productColumns, page.SortColumn(), sortDirection(page),
	)
	products, err := r.queryMany(ctx, query, category, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return domain.NewPage(products, total, page), nil
}

// Search matches the term case-insensitively as a substring of name,
// description or SKU.
func (r *PostgresProductRepository) Search(ctx context.Context, term string, page domain.PageRequest) (*domain.Page, error) {
	where := `name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%'`

	total, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE `+where, term)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY %s %s LIMIT $2 OFFSET $3`,
		productColumns, where, page.SortColumn(), sortDirection(page),
	)
	products, err := r.queryMany(ctx, query, term, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return domain.NewPage(products, total, page), nil
}

// SearchInCategory restricts the search to one category. SKU is not matched
// in this variant.
func (r *PostgresProductRepository) SearchInCategory(ctx context.Context, category domain.Category, term string, page domain.PageRequest) (*domain.Page, error) {
	where := `category = $1 AND (name ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')`

	total, err := r.count(ctx, `SELECT COUNT(*) FROM products WHERE `+where, category, term)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(
		`SELECT %s FROM products WHERE %s ORDER BY %s %s LIMIT $3 OFFSET $4`,
		productColumns, where, page.SortColumn(), sortDirection(page),
	)
	products, err := r.queryMany(ctx, query, category, term, page.Limit(), page.Offset())
	if err != nil {
		return nil, err
	}

	return domain.NewPage(products, total, page), nil
}

// FindLowStock returns products with stock strictly below the threshold.
func (r *PostgresProductRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock_quantity < $1 ORDER BY id`
	return r.queryMany(ctx, query, threshold)
}

// FindOutOfStock returns products with zero stock.
func (r *PostgresProductRepository) FindOutOfStock(ctx context.Context) ([]domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE stock_quantity = 0 ORDER BY id`
	return r.queryMany(ctx, query)
}

// ExistsBySKU checks whether any product carries the SKU
func (r *PostgresProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE sku = $1)`, sku)
}

// ExistsByName checks whether any product carries the name
func (r *PostgresProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE name = $1)`, name)
}

// Update replaces all mutable fields and refreshes updated_at. The id and
// created_at columns are never touched.
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, sku = $4, category = $5, stock_quantity = $6, updated_at = $7
		WHERE id = $8
	`

	product.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	result, err := r.db.ExecContext(
		ctx,
		query,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Category,
		product.StockQuantity,
		product.UpdatedAt,
		product.ID,
	)
	if err != nil {
		return r.translateError(err, product, "failed to update product")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// Delete removes a product permanently.
func (r *PostgresProductRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrProductNotFound
	}

	return nil
}

// CountByCategory returns the number of products in one category
func (r *PostgresProductRepository) CountByCategory(ctx context.Context, category domain.Category) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM products WHERE category = $1`, category)
}

// CountGroupedByCategory returns one row per category that has at least one
// product; empty categories are omitted.
func (r *PostgresProductRepository) CountGroupedByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	query := `SELECT category, COUNT(*) FROM products GROUP BY category ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	defer rows.Close()

	counts := []domain.CategoryCount{}
	for rows.Next() {
		var c domain.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

func (r *PostgresProductRepository) queryOne(ctx context.Context, query string, args ...interface{}) (*domain.Product, error) {
	product := &domain.Product{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&product.ID,
		&product.Name,
		&product.Description,
		&product.Price,
		&product.SKU,
		&product.Category,
		&product.StockQuantity,
		&product.CreatedAt,
		&product.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return product, nil
}

func (r *PostgresProductRepository) queryMany(ctx context.Context, query string, args ...interface{}) ([]domain.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		err := rows.Scan(
			&product.ID,
			&product.Name,
			&product.Description,
			&product.Price,
			&product.SKU,
			&product.Category,
			&product.StockQuantity,
			&product.CreatedAt,
			&product.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}

	return products, rows.Err()
}

func (r *PostgresProductRepository) count(ctx context.Context, query string, args ...interface{}) (int64, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *PostgresProductRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return exists, nil
}

// translateError maps a unique-violation from the datastore onto the domain
// conflict error. This covers the race where two requests pass the uniqueness
// pre-check concurrently; the constraint rejects the loser.
func (r *PostgresProductRepository) translateError(err error, product *domain.Product, msg string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		switch pqErr.Constraint {
		case "uk_products_sku":
			return &domain.ConflictError{Field: "SKU", Value: product.SKU}
		case "uk_products_name":
			return &domain.ConflictError{Field: "name", Value: product.Name}
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func sortDirection(page domain.PageRequest) string {
	if page.Descending {
		return "DESC"
	}
	return "ASC"
}
