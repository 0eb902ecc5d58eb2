package services_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"catalog-service/models"
	"catalog-service/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ---- mock repository ----

type mockProductRepo struct {
	products   map[uint]*models.Product
	byExternal map[string]*models.Product

	searchProducts []models.Product
	searchTotal    int64
	searchErr      error
	lastQuery      *models.ProductQuery
	lastPage       int
	lastLimit      int

	created  []*models.Product
	saved    []*models.Product
	batches  [][]models.Product
	batchErr error

	total       int64
	deleted     int64
	activeCount int64
	countErr    error
	lastStats   *models.StatsQuery

	lowStock    []models.Product
	lowStockErr error

	existing     []string
	existingErr  error
	lastExisting []string
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{
		products:   make(map[uint]*models.Product),
		byExternal: make(map[string]*models.Product),
	}
}

func (m *mockProductRepo) Search(_ context.Context, q *models.ProductQuery, page, limit int) ([]models.Product, int64, error) {
	m.lastQuery, m.lastPage, m.lastLimit = q, page, limit
	return m.searchProducts, m.searchTotal, m.searchErr
}

func (m *mockProductRepo) FindActiveByID(_ context.Context, id uint) (*models.Product, error) {
	p, ok := m.products[id]
	if !ok || p.IsDeleted {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) FindByExternalID(_ context.Context, externalID string) (*models.Product, error) {
	p, ok := m.byExternal[externalID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (m *mockProductRepo) Create(_ context.Context, product *models.Product) error {
	m.created = append(m.created, product)
	return nil
}

func (m *mockProductRepo) CreateBatch(_ context.Context, products []models.Product) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	m.batches = append(m.batches, products)
	return nil
}

func (m *mockProductRepo) Save(_ context.Context, product *models.Product) error {
	m.saved = append(m.saved, product)
	m.products[product.ID] = product
	return nil
}

func (m *mockProductRepo) Count(_ context.Context) (int64, error) {
	return m.total, m.countErr
}

func (m *mockProductRepo) CountDeleted(_ context.Context) (int64, error) {
	return m.deleted, m.countErr
}

func (m *mockProductRepo) CountActive(_ context.Context, q *models.StatsQuery) (int64, error) {
	m.lastStats = q
	return m.activeCount, m.countErr
}

func (m *mockProductRepo) FindLowStock(_ context.Context, _ int) ([]models.Product, error) {
	return m.lowStock, m.lowStockErr
}

func (m *mockProductRepo) ExistingExternalIDs(_ context.Context, externalIDs []string) ([]string, error) {
	m.lastExisting = externalIDs
	return m.existing, m.existingErr
}

func newTestProductService(repo *mockProductRepo) services.ProductService {
	logger, _ := zap.NewDevelopment()
	return services.NewProductService(repo, logger)
}

// ---- listing ----

func TestListProducts_Defaults(t *testing.T) {
	repo := newMockProductRepo()
	repo.searchProducts = []models.Product{{ID: 1}, {ID: 2}}
	repo.searchTotal = 12
	svc := newTestProductService(repo)

	page, err := svc.ListProducts(context.Background(), &models.ProductQuery{})
	assert.Nil(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 5, page.Limit)
	assert.Equal(t, int64(12), page.Total)
	assert.Equal(t, int64(3), page.TotalPages)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 1, repo.lastPage)
	assert.Equal(t, 5, repo.lastLimit)
}

func TestListProducts_EchoesPageAndLimit(t *testing.T) {
	repo := newMockProductRepo()
	repo.searchTotal = 21
	svc := newTestProductService(repo)

	page, err := svc.ListProducts(context.Background(), &models.ProductQuery{Page: 3, Limit: 10})
	assert.Nil(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 10, page.Limit)
	assert.Equal(t, int64(3), page.TotalPages)
}

func TestListProducts_EmptyResult(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	page, err := svc.ListProducts(context.Background(), &models.ProductQuery{})
	assert.Nil(t, err)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, int64(0), page.TotalPages)
	assert.NotNil(t, page.Data)
	assert.Len(t, page.Data, 0)
}

func TestListProducts_RepoError(t *testing.T) {
	repo := newMockProductRepo()
	repo.searchErr = errors.New("db down")
	svc := newTestProductService(repo)

	_, svcErr := svc.ListProducts(context.Background(), &models.ProductQuery{})
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusInternalServerError, svcErr.StatusCode)
}

// ---- soft delete ----

func TestRemove_NotFound(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	svcErr := svc.Remove(context.Background(), 42)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestRemove_MarksDeletedAndSecondCallFails(t *testing.T) {
	repo := newMockProductRepo()
	repo.products[7] = &models.Product{ID: 7, SKU: "SKU-7"}
	svc := newTestProductService(repo)

	svcErr := svc.Remove(context.Background(), 7)
	assert.Nil(t, svcErr)
	assert.True(t, repo.products[7].IsDeleted)
	assert.Len(t, repo.saved, 1)

	svcErr = svc.Remove(context.Background(), 7)
	assert.NotNil(t, svcErr)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

// ---- statistics ----

func TestDeletedPercentage_EmptyStore(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	report, err := svc.DeletedPercentage(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "Deleted percentage: 0%", report)
}

func TestDeletedPercentage_QuarterDeleted(t *testing.T) {
	repo := newMockProductRepo()
	repo.total = 100
	repo.deleted = 25
	svc := newTestProductService(repo)

	report, err := svc.DeletedPercentage(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "Deleted percentage: 25%", report)
}

func TestActivePercentage_ZeroTotal(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	pct, err := svc.ActivePercentage(context.Background(), &models.StatsQuery{})
	assert.Nil(t, err)
	assert.Equal(t, 0.0, pct)
}

func TestActivePercentage_PassesFilters(t *testing.T) {
	repo := newMockProductRepo()
	repo.total = 10
	repo.activeCount = 6
	hasPrice := true
	svc := newTestProductService(repo)

	pct, err := svc.ActivePercentage(context.Background(), &models.StatsQuery{HasPrice: &hasPrice})
	assert.Nil(t, err)
	assert.Equal(t, 60.0, pct)
	assert.NotNil(t, repo.lastStats)
	assert.Equal(t, &hasPrice, repo.lastStats.HasPrice)
}

func TestLowStock_Passthrough(t *testing.T) {
	repo := newMockProductRepo()
	repo.lowStock = []models.Product{{ID: 1, Stock: 5}, {ID: 2, Stock: 8}}
	svc := newTestProductService(repo)

	products, err := svc.LowStock(context.Background(), 10)
	assert.Nil(t, err)
	assert.Len(t, products, 2)
}

func TestLowStock_EmptyIsNotNil(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	products, err := svc.LowStock(context.Background(), 10)
	assert.Nil(t, err)
	assert.NotNil(t, products)
	assert.Len(t, products, 0)
}

// ---- upserts ----

func TestUpsertFromExternal_CreatesWithSynthesizedSKU(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	record := &models.ExternalRecord{ID: "ext-9", Title: "Gizmo", Category: "Gadgets", Price: 10.5}
	product, err := svc.UpsertFromExternal(context.Background(), record)
	assert.Nil(t, err)
	assert.Len(t, repo.created, 1)

	assert.True(t, strings.HasPrefix(product.SKU, "EXT-ext-9-"))
	assert.Len(t, strings.TrimPrefix(product.SKU, "EXT-ext-9-"), 6)
	assert.Equal(t, "Unknown", product.Brand)
	assert.Equal(t, "Unknown", product.Color)
	assert.Equal(t, "Gizmo", product.Model)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, "ext-9", product.ExternalID)
	assert.GreaterOrEqual(t, product.Stock, 1)
	assert.LessOrEqual(t, product.Stock, 50)
}

func TestUpsertFromExternal_OverwritesExisting(t *testing.T) {
	repo := newMockProductRepo()
	repo.byExternal["ext-9"] = &models.Product{ID: 3, ExternalID: "ext-9", Name: "Old", Brand: "Oldbrand"}
	svc := newTestProductService(repo)

	record := &models.ExternalRecord{ID: "ext-9", Title: "New", Brand: "Fresh", Color: "Blue", Price: 3}
	product, err := svc.UpsertFromExternal(context.Background(), record)
	assert.Nil(t, err)
	assert.Len(t, repo.saved, 1)
	assert.Empty(t, repo.created)
	assert.Equal(t, uint(3), product.ID)
	assert.Equal(t, "New", product.Name)
	assert.Equal(t, "Fresh", product.Brand)
	assert.Equal(t, "Blue", product.Color)
}

func TestUpsertFromContentful_KeepsSourceSKUAndStock(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	entry := models.ContentfulEntry{
		Sys:    models.ContentfulSys{ID: "c-7"},
		Fields: models.ContentfulFields{SKU: "SRC-7", Name: "Widget", Stock: 13},
	}
	product, err := svc.UpsertFromContentful(context.Background(), entry)
	assert.Nil(t, err)
	assert.Equal(t, "SRC-7", product.SKU)
	assert.Equal(t, 13, product.Stock)
	assert.Equal(t, "USD", product.Currency)
	assert.Equal(t, "c-7", product.ExternalID)
}

func TestBulkCreateFromContentful_MapsAllEntries(t *testing.T) {
	repo := newMockProductRepo()
	svc := newTestProductService(repo)

	entries := []models.ContentfulEntry{
		{Sys: models.ContentfulSys{ID: "c-1"}, Fields: models.ContentfulFields{SKU: "A", Currency: "EUR"}},
		{Sys: models.ContentfulSys{ID: "c-2"}, Fields: models.ContentfulFields{SKU: "B"}},
	}
	products, err := svc.BulkCreateFromContentful(context.Background(), entries)
	assert.Nil(t, err)
	assert.Len(t, products, 2)
	assert.Len(t, repo.batches, 1)
	assert.Equal(t, "EUR", products[0].Currency)
	assert.Equal(t, "USD", products[1].Currency)
	assert.Equal(t, "c-2", products[1].ExternalID)
}

func TestExistingExternalIDs_Passthrough(t *testing.T) {
	repo := newMockProductRepo()
	repo.existing = []string{"c-1"}
	svc := newTestProductService(repo)

	existing, err := svc.ExistingExternalIDs(context.Background(), []string{"c-1", "c-2"})
	assert.Nil(t, err)
	assert.Equal(t, []string{"c-1"}, existing)
	assert.Equal(t, []string{"c-1", "c-2"}, repo.lastExisting)
}
