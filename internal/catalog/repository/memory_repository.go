package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

// MemoryProductRepository is an in-memory ProductRepository. It backs the
// test suites and the DB_DRIVER=memory mode for local runs, and enforces the
// same uniqueness backstop as the SQL implementations.
type MemoryProductRepository struct {
	mu       sync.RWMutex
	products map[int64]domain.Product
	nextID   int64
}

// NewMemoryProductRepository creates an empty in-memory repository
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{
		products: make(map[int64]domain.Product),
		nextID:   1,
	}
}

func (r *MemoryProductRepository) Create(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.products {
		if p.SKU == product.SKU {
			return &domain.ConflictError{Field: "SKU", Value: product.SKU}
		}
		if p.Name == product.Name {
			return &domain.ConflictError{Field: "name", Value: product.Name}
		}
	}

	now := time.Now().UTC().Truncate(time.Microsecond)
	product.ID = r.nextID
	r.nextID++
	product.CreatedAt = now
	product.UpdatedAt = now

	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) FindByID(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return &p, nil
}

func (r *MemoryProductRepository) FindBySKU(_ context.Context, sku string) (*domain.Product, error) {
	return r.findFirst(func(p domain.Product) bool { return p.SKU == sku })
}

func (r *MemoryProductRepository) FindByName(_ context.Context, name string) (*domain.Product, error) {
	return r.findFirst(func(p domain.Product) bool { return p.Name == name })
}

func (r *MemoryProductRepository) FindAll(_ context.Context, page domain.PageRequest) (*domain.Page, error) {
	matches := r.filter(func(domain.Product) bool { return true })
	return paginate(matches, page), nil
}

func (r *MemoryProductRepository) FindByCategory(_ context.Context, category domain.Category) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.Category == category }), nil
}

func (r *MemoryProductRepository) FindByCategoryPaged(_ context.Context, category domain.Category, page domain.PageRequest) (*domain.Page, error) {
	matches := r.filter(func(p domain.Product) bool { return p.Category == category })
	return paginate(matches, page), nil
}

func (r *MemoryProductRepository) Search(_ context.Context, term string, page domain.PageRequest) (*domain.Page, error) {
	t := strings.ToLower(term)
	matches := r.filter(func(p domain.Product) bool {
		return containsFold(p.Name, t) || containsFold(p.Description, t) || containsFold(p.SKU, t)
	})
	return paginate(matches, page), nil
}

func (r *MemoryProductRepository) SearchInCategory(_ context.Context, category domain.Category, term string, page domain.PageRequest) (*domain.Page, error) {
	t := strings.ToLower(term)
	matches := r.filter(func(p domain.Product) bool {
		// SKU is deliberately not matched in the category-scoped variant.
		return p.Category == category && (containsFold(p.Name, t) || containsFold(p.Description, t))
	})
	return paginate(matches, page), nil
}

func (r *MemoryProductRepository) FindLowStock(_ context.Context, threshold int) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.StockQuantity < threshold }), nil
}

func (r *MemoryProductRepository) FindOutOfStock(_ context.Context) ([]domain.Product, error) {
	return r.filter(func(p domain.Product) bool { return p.StockQuantity == 0 }), nil
}

func (r *MemoryProductRepository) ExistsBySKU(_ context.Context, sku string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.SKU == sku {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryProductRepository) ExistsByName(_ context.Context, name string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if p.Name == name {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryProductRepository) Update(_ context.Context, product *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.products[product.ID]
	if !ok {
		return domain.ErrProductNotFound
	}

	for id, p := range r.products {
		if id == product.ID {
			continue
		}
		if p.SKU == product.SKU {
			return &domain.ConflictError{Field: "SKU", Value: product.SKU}
		}
		if p.Name == product.Name {
			return &domain.ConflictError{Field: "name", Value: product.Name}
		}
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC().Truncate(time.Microsecond)
	r.products[product.ID] = *product
	return nil
}

func (r *MemoryProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return domain.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *MemoryProductRepository) CountByCategory(_ context.Context, category domain.Category) (int64, error) {
	return int64(len(r.filter(func(p domain.Product) bool { return p.Category == category }))), nil
}

func (r *MemoryProductRepository) CountGroupedByCategory(_ context.Context) ([]domain.CategoryCount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byCategory := make(map[domain.Category]int64)
	for _, p := range r.products {
		byCategory[p.Category]++
	}

	counts := make([]domain.CategoryCount, 0, len(byCategory))
	for c, n := range byCategory {
		counts = append(counts, domain.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })
	return counts, nil
}

func (r *MemoryProductRepository) findFirst(match func(domain.Product) bool) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.products {
		if match(p) {
			found := p
			return &found, nil
		}
	}
	return nil, domain.ErrProductNotFound
}

// filter returns matching products ordered by id.
func (r *MemoryProductRepository) filter(match func(domain.Product) bool) []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matches := []domain.Product{}
	for _, p := range r.products {
		if match(p) {
			matches = append(matches, p)
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].ID < matches[j].ID })
	return matches
}

func paginate(matches []domain.Product, page domain.PageRequest) *domain.Page {
	sortProducts(matches, page)

	total := int64(len(matches))
	start := page.Offset()
	if start > len(matches) {
		start = len(matches)
	}
	end := start + page.Limit()
	if end > len(matches) {
		end = len(matches)
	}
	return domain.NewPage(matches[start:end], total, page)
}

func sortProducts(products []domain.Product, page domain.PageRequest) {
	col := page.SortColumn()
	less := func(a, b domain.Product) bool {
		switch col {
		case "name":
			return a.Name < b.Name
		case "description":
			return a.Description < b.Description
		case "price":
			return a.Price.LessThan(b.Price)
		case "sku":
			return a.SKU < b.SKU
		case "category":
			return a.Category < b.Category
		case "stock_quantity":
			return a.StockQuantity < b.StockQuantity
		case "created_at":
			return a.CreatedAt.Before(b.CreatedAt)
		case "updated_at":
			return a.UpdatedAt.Before(b.UpdatedAt)
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(products, func(i, j int) bool {
		if page.Descending {
			return less(products[j], products[i])
		}
		return less(products[i], products[j])
	})
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}
