package repository

import (
	"context"

	"catalog-service/models"

	"gorm.io/gorm"
)

// ProductRepository defines data-access operations for catalog products.
type ProductRepository interface {
	Search(ctx context.Context, q *models.ProductQuery, page, limit int) ([]models.Product, int64, error)
	FindActiveByID(ctx context.Context, id uint) (*models.Product, error)
	FindByExternalID(ctx context.Context, externalID string) (*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	CreateBatch(ctx context.Context, products []models.Product) error
	Save(ctx context.Context, product *models.Product) error
	Count(ctx context.Context) (int64, error)
	CountDeleted(ctx context.Context) (int64, error)
	CountActive(ctx context.Context, q *models.StatsQuery) (int64, error)
	FindLowStock(ctx context.Context, threshold int) ([]models.Product, error)
	ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error)
}

// GormProductRepository implements ProductRepository using GORM.
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository.
func NewGormProductRepository(db *gorm.DB) ProductRepository {
	return &GormProductRepository{db: db}
}

// Search runs a count+fetch over the AND-combined filter set. Soft-deleted
// rows are not excluded from listing results.
func (r *GormProductRepository) Search(ctx context.Context, q *models.ProductQuery, page, limit int) ([]models.Product, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if q.SKU != "" {
		query = query.Where("sku ILIKE ?", "%"+q.SKU+"%")
	}
	if q.Name != "" {
		query = query.Where("name ILIKE ?", "%"+q.Name+"%")
	}
	if q.Brand != "" {
		query = query.Where("brand ILIKE ?", "%"+q.Brand+"%")
	}
	if q.Model != "" {
		query = query.Where("model ILIKE ?", "%"+q.Model+"%")
	}
	if q.Category != "" {
		query = query.Where("category ILIKE ?", "%"+q.Category+"%")
	}
	if q.Color != "" {
		query = query.Where("color ILIKE ?", "%"+q.Color+"%")
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}
	if q.Currency != "" {
		query = query.Where("currency = ?", q.Currency)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var products []models.Product
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, 0, err
	}

	return products, total, nil
}

// FindActiveByID looks up a product by id, excluding soft-deleted rows.
func (r *GormProductRepository) FindActiveByID(ctx context.Context, id uint) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) FindByExternalID(ctx context.Context, externalID string) (*models.Product, error) {
	var p models.Product
	if err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *GormProductRepository) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *GormProductRepository) CreateBatch(ctx context.Context, products []models.Product) error {
	return r.db.WithContext(ctx).Create(&products).Error
}

func (r *GormProductRepository) Save(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *GormProductRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}

func (r *GormProductRepository) CountDeleted(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_deleted = ?", true).
		Count(&total).Error
	return total, err
}

// CountActive counts non-deleted products narrowed by the stats filters.
// The HasPrice=false branch queries a NULL price against a NOT NULL
// column and can match nothing.
func (r *GormProductRepository) CountActive(ctx context.Context, q *models.StatsQuery) (int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("is_deleted = ?", false)

	if q.HasPrice != nil {
		if *q.HasPrice {
			query = query.Where("price >= ?", 0)
		} else {
			query = query.Where("price IS NULL")
		}
	}

	switch {
	case q.StartDate != nil && q.EndDate != nil:
		query = query.Where("created_at >= ? AND created_at < ?", *q.StartDate, *q.EndDate)
	case q.StartDate != nil:
		query = query.Where("created_at >= ?", *q.StartDate)
	case q.EndDate != nil:
		query = query.Where("created_at < ?", *q.EndDate)
	}

	var total int64
	err := query.Count(&total).Error
	return total, err
}

func (r *GormProductRepository) FindLowStock(ctx context.Context, threshold int) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("stock < ? AND is_deleted = ?", threshold, false).
		Find(&products).Error
	return products, err
}

// ExistingExternalIDs returns the subset of the given external ids that
// are already stored. An empty candidate set returns without a query.
func (r *GormProductRepository) ExistingExternalIDs(ctx context.Context, externalIDs []string) ([]string, error) {
	if len(externalIDs) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.WithContext(ctx).Model(&models.Product{}).
		Where("external_id IN ?", externalIDs).
		Pluck("external_id", &existing).Error
	return existing, err
}
