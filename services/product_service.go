package services

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"net/http"
	"strconv"
	"strings"

	"catalog-service/models"
	"catalog-service/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	// DefaultPage and DefaultLimit apply when the listing query omits them.
	DefaultPage  = 1
	DefaultLimit = 5
)

const skuSuffixChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// ProductService defines the catalog business logic.
type ProductService interface {
	ListProducts(ctx context.Context, q *models.ProductQuery) (*models.ProductPage, *ServiceError)
	Remove(ctx context.Context, id uint) *ServiceError
	DeletedPercentage(ctx context.Context) (string, *ServiceError)
	ActivePercentage(ctx context.Context, q *models.StatsQuery) (float64, *ServiceError)
	LowStock(ctx context.Context, threshold int) ([]models.Product, *ServiceError)
	UpsertFromExternal(ctx context.Context, record *models.ExternalRecord) (*models.Product, *ServiceError)
	UpsertFromContentful(ctx context.Context, entry models.ContentfulEntry) (*models.Product, *ServiceError)
	BulkCreateFromContentful(ctx context.Context, entries []models.ContentfulEntry) ([]models.Product, *ServiceError)
	ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, *ServiceError)
}

type productServiceImpl struct {
	repo   repository.ProductRepository
	logger *zap.Logger
}

// NewProductService creates a new ProductService.
func NewProductService(repo repository.ProductRepository, logger *zap.Logger) ProductService {
	return &productServiceImpl{repo: repo, logger: logger}
}

// ListProducts executes a paginated count+fetch and shapes the envelope.
func (s *productServiceImpl) ListProducts(ctx context.Context, q *models.ProductQuery) (*models.ProductPage, *ServiceError) {
	page := q.Page
	if page == 0 {
		page = DefaultPage
	}
	limit := q.Limit
	if limit == 0 {
		limit = DefaultLimit
	}

	products, total, err := s.repo.Search(ctx, q, page, limit)
	if err != nil {
		s.logger.Error("Product search failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to query products"}
	}
	if products == nil {
		products = []models.Product{}
	}

	return &models.ProductPage{
		Data:       products,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: int64(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

// Remove soft-deletes a product. A second call on the same id reports
// NotFound because the lookup excludes already-deleted rows.
func (s *productServiceImpl) Remove(ctx context.Context, id uint) *ServiceError {
	product, err := s.repo.FindActiveByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return &ServiceError{StatusCode: http.StatusNotFound, Message: fmt.Sprintf("Product with ID %d not found", id)}
		}
		s.logger.Error("Product lookup failed", zap.Uint("id", id), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load product"}
	}

	product.IsDeleted = true
	if err := s.repo.Save(ctx, product); err != nil {
		s.logger.Error("Product soft delete failed", zap.Uint("id", id), zap.Error(err))
		return &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to delete product"}
	}
	return nil
}

// DeletedPercentage reports the deleted share as a formatted string.
func (s *productServiceImpl) DeletedPercentage(ctx context.Context) (string, *ServiceError) {
	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Product count failed", zap.Error(err))
		return "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to count products"}
	}
	deleted, err := s.repo.CountDeleted(ctx)
	if err != nil {
		s.logger.Error("Deleted product count failed", zap.Error(err))
		return "", &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to count products"}
	}

	percentage := 0.0
	if total > 0 {
		percentage = float64(deleted) / float64(total) * 100
	}
	return fmt.Sprintf("Deleted percentage: %s%%", strconv.FormatFloat(percentage, 'f', -1, 64)), nil
}

// ActivePercentage reports the non-deleted share, optionally narrowed by
// the stats filters, as a bare number.
func (s *productServiceImpl) ActivePercentage(ctx context.Context, q *models.StatsQuery) (float64, *ServiceError) {
	matching, err := s.repo.CountActive(ctx, q)
	if err != nil {
		s.logger.Error("Active product count failed", zap.Error(err))
		return 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to count products"}
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		s.logger.Error("Product count failed", zap.Error(err))
		return 0, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to count products"}
	}

	if total == 0 {
		return 0, nil
	}
	return float64(matching) / float64(total) * 100, nil
}

// LowStock returns non-deleted products with stock strictly below threshold.
func (s *productServiceImpl) LowStock(ctx context.Context, threshold int) ([]models.Product, *ServiceError) {
	products, err := s.repo.FindLowStock(ctx, threshold)
	if err != nil {
		s.logger.Error("Low stock query failed", zap.Int("threshold", threshold), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to query products"}
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// UpsertFromExternal creates or overwrites a product from a generic
// external record. The SKU is synthesized on every call and the stock is
// randomized in [1,50]; the content-source path keeps source values
// instead (see UpsertFromContentful).
func (s *productServiceImpl) UpsertFromExternal(ctx context.Context, record *models.ExternalRecord) (*models.Product, *ServiceError) {
	sku := fmt.Sprintf("EXT-%s-%s", record.ID, randomSKUSuffix(6))

	brand := record.Brand
	if brand == "" {
		brand = "Unknown"
	}
	color := record.Color
	if color == "" {
		color = "Unknown"
	}

	existing, err := s.repo.FindByExternalID(ctx, record.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		s.logger.Error("External product lookup failed", zap.String("external_id", record.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load product"}
	}

	if existing != nil {
		existing.SKU = sku
		existing.Name = record.Title
		existing.Brand = brand
		existing.Model = record.Title
		existing.Category = record.Category
		existing.Color = color
		existing.Price = record.Price
		existing.Currency = "USD"
		existing.Stock = rand.Intn(50) + 1
		if err := s.repo.Save(ctx, existing); err != nil {
			s.logger.Error("External product update failed", zap.String("external_id", record.ID), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save product"}
		}
		return existing, nil
	}

	product := &models.Product{
		SKU:        sku,
		Name:       record.Title,
		Brand:      brand,
		Model:      record.Title,
		Category:   record.Category,
		Color:      color,
		Price:      record.Price,
		Currency:   "USD",
		Stock:      rand.Intn(50) + 1,
		ExternalID: record.ID,
	}
	if err := s.repo.Create(ctx, product); err != nil {
		s.logger.Error("External product create failed", zap.String("external_id", record.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save product"}
	}
	return product, nil
}

// UpsertFromContentful creates or overwrites a product from a content-API
// entry, keeping the source-provided SKU and stock.
func (s *productServiceImpl) UpsertFromContentful(ctx context.Context, entry models.ContentfulEntry) (*models.Product, *ServiceError) {
	mapped := mapContentfulEntry(entry)

	existing, err := s.repo.FindByExternalID(ctx, entry.Sys.ID)
	if err != nil && err != gorm.ErrRecordNotFound {
		s.logger.Error("External product lookup failed", zap.String("external_id", entry.Sys.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to load product"}
	}

	if existing != nil {
		existing.SKU = mapped.SKU
		existing.Name = mapped.Name
		existing.Brand = mapped.Brand
		existing.Model = mapped.Model
		existing.Category = mapped.Category
		existing.Color = mapped.Color
		existing.Price = mapped.Price
		existing.Currency = mapped.Currency
		existing.Stock = mapped.Stock
		if err := s.repo.Save(ctx, existing); err != nil {
			s.logger.Error("External product update failed", zap.String("external_id", entry.Sys.ID), zap.Error(err))
			return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save product"}
		}
		return existing, nil
	}

	if err := s.repo.Create(ctx, &mapped); err != nil {
		s.logger.Error("External product create failed", zap.String("external_id", entry.Sys.ID), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save product"}
	}
	return &mapped, nil
}

// BulkCreateFromContentful maps and persists entries in one batch write.
// No existence check is performed here; callers pre-filter known ids.
func (s *productServiceImpl) BulkCreateFromContentful(ctx context.Context, entries []models.ContentfulEntry) ([]models.Product, *ServiceError) {
	products := make([]models.Product, 0, len(entries))
	for _, entry := range entries {
		products = append(products, mapContentfulEntry(entry))
	}

	if err := s.repo.CreateBatch(ctx, products); err != nil {
		s.logger.Error("Bulk product create failed", zap.Int("count", len(products)), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to save products"}
	}
	return products, nil
}

// ExistingExternalIDs returns the subset of ids already present in the store.
func (s *productServiceImpl) ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, *ServiceError) {
	existing, err := s.repo.ExistingExternalIDs(ctx, externalIDs)
	if err != nil {
		s.logger.Error("External id lookup failed", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusInternalServerError, Message: "Failed to query products"}
	}
	return existing, nil
}

func mapContentfulEntry(entry models.ContentfulEntry) models.Product {
	currency := entry.Fields.Currency
	if currency == "" {
		currency = "USD"
	}
	return models.Product{
		SKU:        entry.Fields.SKU,
		Name:       entry.Fields.Name,
		Brand:      entry.Fields.Brand,
		Model:      entry.Fields.Model,
		Category:   entry.Fields.Category,
		Color:      entry.Fields.Color,
		Price:      entry.Fields.Price,
		Currency:   currency,
		Stock:      entry.Fields.Stock,
		ExternalID: entry.Sys.ID,
	}
}

func randomSKUSuffix(n int) string {
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(skuSuffixChars[rand.Intn(len(skuSuffixChars))])
	}
	return b.String()
}
