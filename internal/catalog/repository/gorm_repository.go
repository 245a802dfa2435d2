package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// GormProductRepository implements ProductRepository on GORM. It is the
// alternate storage path, selected with DB_DRIVER=gorm.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM product repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Product{})
}

func (r *GormProductRepository) Create(ctx context.Context, product *domain.Product) error {
	now := time.Now().UTC().Truncate(time.Microsecond)
	product.CreatedAt = now
	product.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return r.translateError(ctx, err, product, "failed to create product")
	}
	return nil
}

func (r *GormProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, "sku = ?", sku)
}

func (r *GormProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *GormProductRepository) FindAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	return r.paged(ctx, r.db.WithContext(ctx).Model(&domain.Product{}), page)
}

func (r *GormProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Where("category = ?", category).Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindByCategoryPaged(ctx context.Context, category domain.Category, page domain.PageRequest) (*domain.Page, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).Where("category = ?", category)
	return r.paged(ctx, tx, page)
}

func (r *GormProductRepository) Search(ctx context.Context, term string, page domain.PageRequest) (*domain.Page, error) {
	pattern := "%" + term + "%"
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("name ILIKE ? OR description ILIKE ? OR sku ILIKE ?", pattern, pattern, pattern)
	return r.paged(ctx, tx, page)
}

func (r *GormProductRepository) SearchInCategory(ctx context.Context, category domain.Category, term string, page domain.PageRequest) (*domain.Page, error) {
	pattern := "%" + term + "%"
	tx := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("category = ?", category).
		Where("name ILIKE ? OR description ILIKE ?", pattern, pattern)
	return r.paged(ctx, tx, page)
}

func (r *GormProductRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Where("stock_quantity < ?", threshold).Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) FindOutOfStock(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := r.db.WithContext(ctx).Where("stock_quantity = 0").Order("id").Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}
	return products, nil
}

func (r *GormProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.existsWhere(ctx, "sku = ?", sku)
}

func (r *GormProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	return r.existsWhere(ctx, "name = ?", name)
}

func (r *GormProductRepository) Update(ctx context.Context, product *domain.Product) error {
	product.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)

	result := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":           product.Name,
			"description":    product.Description,
			"price":          product.Price,
			"sku":            product.SKU,
			"category":       product.Category,
			"stock_quantity": product.StockQuantity,
			"updated_at":     product.UpdatedAt,
		})
	if result.Error != nil {
		return r.translateError(ctx, result.Error, product, "failed to update product")
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *GormProductRepository) CountByCategory(ctx context.Context, category domain.Category) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where("category = ?", category).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

func (r *GormProductRepository) CountGroupedByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	counts := []domain.CategoryCount{}
	err := r.db.WithContext(ctx).Model(&domain.Product{}).
		Select("category, COUNT(*) AS count").
		Group("category").
		Order("category").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}
	return counts, nil
}

func (r *GormProductRepository) findOne(ctx context.Context, cond string, arg interface{}) (*domain.Product, error) {
	var product domain.Product
	err := r.db.WithContext(ctx).Where(cond, arg).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return &product, nil
}

func (r *GormProductRepository) existsWhere(ctx context.Context, cond string, arg interface{}) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where(cond, arg).Limit(1).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check product existence: %w", err)
	}
	return count > 0, nil
}

func (r *GormProductRepository) paged(ctx context.Context, tx *gorm.DB, page domain.PageRequest) (*domain.Page, error) {
	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	var products []domain.Product
	order := fmt.Sprintf("%s %s", page.SortColumn(), sortDirection(page))
	err := tx.Order(order).Limit(page.Limit()).Offset(page.Offset()).Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return domain.NewPage(products, total, page), nil
}

// translateError maps GORM's duplicated-key error to the domain conflict.
// GORM does not expose the violated constraint, so the colliding field is
// resolved with a follow-up existence check.
func (r *GormProductRepository) translateError(ctx context.Context, err error, product *domain.Product, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		if taken, checkErr := r.existsOther(ctx, "sku = ?", product.SKU, product.ID); checkErr == nil && taken {
			return &domain.ConflictError{Field: "SKU", Value: product.SKU}
		}
		return &domain.ConflictError{Field: "name", Value: product.Name}
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (r *GormProductRepository) existsOther(ctx context.Context, cond string, arg interface{}, id int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Product{}).Where(cond, arg).Where("id <> ?", id).Count(&count).Error
	return count > 0, err
}
