package services

import (
	"context"
	"net/http"
	"time"

	"catalog-service/models"

	"go.uber.org/zap"
)

// CacheInvalidator drops cached listing state after catalog writes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

// ExternalAPIService proxies live fetches from the content source and runs
// the scheduled pull-and-diff synchronization job.
type ExternalAPIService struct {
	client   ContentfulClient
	products ProductService
	cache    CacheInvalidator
	logger   *zap.Logger
}

// NewExternalAPIService creates a new ExternalAPIService. cache may be nil.
func NewExternalAPIService(client ContentfulClient, products ProductService, cache CacheInvalidator, logger *zap.Logger) *ExternalAPIService {
	return &ExternalAPIService{client: client, products: products, cache: cache, logger: logger}
}

// FetchProducts performs a live fetch and flattens the entries. No
// persistence side effect.
func (s *ExternalAPIService) FetchProducts(ctx context.Context) (*models.ExternalProductList, *ServiceError) {
	list, err := s.client.FetchEntries(ctx)
	if err != nil {
		s.logger.Error("Error fetching from Contentful API", zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to fetch products from external source"}
	}

	data := make([]models.ExternalProduct, 0, len(list.Items))
	for _, item := range list.Items {
		data = append(data, models.ExternalProduct{
			ID:        item.Sys.ID,
			SKU:       item.Fields.SKU,
			Name:      item.Fields.Name,
			Brand:     item.Fields.Brand,
			Model:     item.Fields.Model,
			Category:  item.Fields.Category,
			Color:     item.Fields.Color,
			Price:     item.Fields.Price,
			Currency:  item.Fields.Currency,
			Stock:     item.Fields.Stock,
			CreatedAt: item.Sys.CreatedAt,
			UpdatedAt: item.Sys.UpdatedAt,
		})
	}

	return &models.ExternalProductList{
		Data:  data,
		Total: list.Total,
		Skip:  list.Skip,
		Limit: list.Limit,
	}, nil
}

// SyncProducts runs one pull-and-diff pass: fetch a page of entries,
// drop the ids already stored and bulk-insert the remainder. Returns the
// number of inserted products. Failures end the run; the next scheduled
// tick is the only retry.
func (s *ExternalAPIService) SyncProducts(ctx context.Context) (int, error) {
	s.logger.Info("Starting fetch from Contentful API")

	list, err := s.client.FetchEntries(ctx)
	if err != nil {
		s.logger.Error("Error fetching from Contentful API", zap.Error(err))
		return 0, err
	}

	externalIDs := make([]string, 0, len(list.Items))
	for _, item := range list.Items {
		externalIDs = append(externalIDs, item.Sys.ID)
	}

	existing, svcErr := s.products.ExistingExternalIDs(ctx, externalIDs)
	if svcErr != nil {
		s.logger.Error("Error loading existing external ids", zap.Error(svcErr))
		return 0, svcErr
	}

	known := make(map[string]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	newEntries := make([]models.ContentfulEntry, 0, len(list.Items))
	for _, item := range list.Items {
		if !known[item.Sys.ID] {
			newEntries = append(newEntries, item)
		}
	}

	if len(newEntries) == 0 {
		s.logger.Info("No new products to save from Contentful API")
		return 0, nil
	}

	if _, svcErr := s.products.BulkCreateFromContentful(ctx, newEntries); svcErr != nil {
		s.logger.Error("Error bulk saving products", zap.Error(svcErr))
		return 0, svcErr
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}

	s.logger.Info("Processed new products from Contentful API", zap.Int("count", len(newEntries)))
	return len(newEntries), nil
}

// StartScheduler launches the timer-driven sync dispatch. Runs are not
// serialized against overlap; a manual trigger may race a scheduled tick.
func (s *ExternalAPIService) StartScheduler(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		s.logger.Info("Product sync scheduler started", zap.Duration("interval", interval))
		for {
			select {
			case <-ctx.Done():
				s.logger.Info("Product sync scheduler stopped")
				return
			case <-ticker.C:
				if _, err := s.SyncProducts(ctx); err != nil {
					s.logger.Error("Scheduled product sync failed", zap.Error(err))
				}
			}
		}
	}()
}
