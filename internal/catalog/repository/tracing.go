package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tair/product-catalog/internal/catalog/domain"
)

var tracer = otel.Tracer("catalog-repository")

// TracingProductRepository decorates any ProductRepository with OpenTelemetry
// spans. It satisfies the same interface, so it stacks on top of the
// postgres, gorm or memory implementations.
type TracingProductRepository struct {
	inner domain.ProductRepository
}

// NewTracingProductRepository wraps a repository with tracing
func NewTracingProductRepository(inner domain.ProductRepository) *TracingProductRepository {
	return &TracingProductRepository{inner: inner}
}

func (r *TracingProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("product.name", product.Name),
			attribute.String("product.sku", product.SKU),
			attribute.String("product.category", product.Category.String()),
		),
	)
	defer span.End()

	err := r.inner.Create(ctx, product)
	if err != nil {
		recordError(span, err)
		return err
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	return nil
}

func (r *TracingProductRepository) FindByID(ctx context.Context, id int64) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(attribute.Int64("product.id", id)),
	)
	defer span.End()

	product, err := r.inner.FindByID(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.String("product.sku", product.SKU))
	return product, nil
}

func (r *TracingProductRepository) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindBySKU",
		trace.WithAttributes(attribute.String("product.sku", sku)),
	)
	defer span.End()

	product, err := r.inner.FindBySKU(ctx, sku)
	if err != nil {
		recordError(span, err)
		return nil, err
	}

	span.SetAttributes(attribute.Int64("product.id", product.ID))
	return product, nil
}

func (r *TracingProductRepository) FindByName(ctx context.Context, name string) (*domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByName",
		trace.WithAttributes(attribute.String("product.name", name)),
	)
	defer span.End()

	product, err := r.inner.FindByName(ctx, name)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	return product, nil
}

func (r *TracingProductRepository) FindAll(ctx context.Context, page domain.PageRequest) (*domain.Page, error) {
	ctx, span := tracer.Start(ctx, "repository.FindAll", trace.WithAttributes(pageAttributes(page)...))
	defer span.End()

	result, err := r.inner.FindAll(ctx, page)
	return recordPage(span, result, err)
}

func (r *TracingProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByCategory",
		trace.WithAttributes(attribute.String("query.category", category.String())),
	)
	defer span.End()

	products, err := r.inner.FindByCategory(ctx, category)
	return recordList(span, products, err)
}

func (r *TracingProductRepository) FindByCategoryPaged(ctx context.Context, category domain.Category, page domain.PageRequest) (*domain.Page, error) {
	attrs := append(pageAttributes(page), attribute.String("query.category", category.String()))
	ctx, span := tracer.Start(ctx, "repository.FindByCategoryPaged", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := r.inner.FindByCategoryPaged(ctx, category, page)
	return recordPage(span, result, err)
}

func (r *TracingProductRepository) Search(ctx context.Context, term string, page domain.PageRequest) (*domain.Page, error) {
	attrs := append(pageAttributes(page), attribute.String("query.term", term))
	ctx, span := tracer.Start(ctx, "repository.Search", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := r.inner.Search(ctx, term, page)
	return recordPage(span, result, err)
}

func (r *TracingProductRepository) SearchInCategory(ctx context.Context, category domain.Category, term string, page domain.PageRequest) (*domain.Page, error) {
	attrs := append(pageAttributes(page),
		attribute.String("query.category", category.String()),
		attribute.String("query.term", term),
	)
	ctx, span := tracer.Start(ctx, "repository.SearchInCategory", trace.WithAttributes(attrs...))
	defer span.End()

	result, err := r.inner.SearchInCategory(ctx, category, term, page)
	return recordPage(span, result, err)
}

func (r *TracingProductRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindLowStock",
		trace.WithAttributes(attribute.Int("query.threshold", threshold)),
	)
	defer span.End()

	products, err := r.inner.FindLowStock(ctx, threshold)
	return recordList(span, products, err)
}

func (r *TracingProductRepository) FindOutOfStock(ctx context.Context) ([]domain.Product, error) {
	ctx, span := tracer.Start(ctx, "repository.FindOutOfStock")
	defer span.End()

	products, err := r.inner.FindOutOfStock(ctx)
	return recordList(span, products, err)
}

func (r *TracingProductRepository) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ExistsBySKU",
		trace.WithAttributes(attribute.String("product.sku", sku)),
	)
	defer span.End()

	exists, err := r.inner.ExistsBySKU(ctx, sku)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("result.exists", exists))
	return exists, nil
}

func (r *TracingProductRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	ctx, span := tracer.Start(ctx, "repository.ExistsByName",
		trace.WithAttributes(attribute.String("product.name", name)),
	)
	defer span.End()

	exists, err := r.inner.ExistsByName(ctx, name)
	if err != nil {
		recordError(span, err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("result.exists", exists))
	return exists, nil
}

func (r *TracingProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := tracer.Start(ctx, "repository.Update",
		trace.WithAttributes(
			attribute.Int64("product.id", product.ID),
			attribute.String("product.sku", product.SKU),
		),
	)
	defer span.End()

	if err := r.inner.Update(ctx, product); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) Delete(ctx context.Context, id int64) error {
	ctx, span := tracer.Start(ctx, "repository.Delete",
		trace.WithAttributes(attribute.Int64("product.id", id)),
	)
	defer span.End()

	if err := r.inner.Delete(ctx, id); err != nil {
		recordError(span, err)
		return err
	}
	return nil
}

func (r *TracingProductRepository) CountByCategory(ctx context.Context, category domain.Category) (int64, error) {
	ctx, span := tracer.Start(ctx, "repository.CountByCategory",
		trace.WithAttributes(attribute.String("query.category", category.String())),
	)
	defer span.End()

	count, err := r.inner.CountByCategory(ctx, category)
	if err != nil {
		recordError(span, err)
		return 0, err
	}
	span.SetAttributes(attribute.Int64("result.count", count))
	return count, nil
}

func (r *TracingProductRepository) CountGroupedByCategory(ctx context.Context) ([]domain.CategoryCount, error) {
	ctx, span := tracer.Start(ctx, "repository.CountGroupedByCategory")
	defer span.End()

	counts, err := r.inner.CountGroupedByCategory(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(counts)))
	return counts, nil
}

func pageAttributes(page domain.PageRequest) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.Int("query.page", page.Page),
		attribute.Int("query.size", page.Size),
		attribute.String("query.sort", page.SortColumn()),
		attribute.Bool("query.descending", page.Descending),
	}
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

func recordPage(span trace.Span, page *domain.Page, err error) (*domain.Page, error) {
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("result.total", page.TotalElements))
	return page, nil
}

func recordList(span trace.Span, products []domain.Product, err error) ([]domain.Product, error) {
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("result.count", len(products)))
	return products, nil
}
