package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-service/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"
	DefaultCacheTTL        = 5 * time.Minute
)

// CacheManager keeps a version-keyed Redis cache of listing responses.
// Bumping the version on any catalog mutation invalidates every cached
// page at once. A nil manager disables caching.
type CacheManager struct {
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCacheManager(rdb *redis.Client, logger *zap.Logger) *CacheManager {
	return &CacheManager{redis: rdb, ttl: DefaultCacheTTL, logger: logger}
}

// GetProductList retrieves a cached listing page for the given query.
func (cm *CacheManager) GetProductList(ctx context.Context, q *models.ProductQuery) (*models.ProductPage, bool) {
	if cm == nil || cm.redis == nil {
		return nil, false
	}

	version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err != nil {
		return nil, false
	}

	cached, err := cm.redis.Get(ctx, cm.listKey(version, q)).Result()
	if err != nil {
		return nil, false
	}

	var page models.ProductPage
	if err := json.Unmarshal([]byte(cached), &page); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return &page, true
}

// SetProductListAsync caches a listing page without blocking the request.
func (cm *CacheManager) SetProductListAsync(q *models.ProductQuery, page *models.ProductPage) {
	if cm == nil || cm.redis == nil {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
		if err != nil {
			if err != redis.Nil {
				return
			}
			version = 1
			if err := cm.redis.Set(ctx, CacheVersionKey, version, 0).Err(); err != nil {
				return
			}
		}

		data, err := json.Marshal(page)
		if err != nil {
			cm.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(ctx, cm.listKey(version, q), data, cm.ttl).Err(); err != nil {
			cm.logger.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// Invalidate bumps the cache version so stale pages are never served.
func (cm *CacheManager) Invalidate(ctx context.Context) {
	if cm == nil || cm.redis == nil {
		return
	}
	if err := cm.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		cm.logger.Warn("Failed to bump product cache version", zap.Error(err))
	}
}

func (cm *CacheManager) listKey(version int64, q *models.ProductQuery) string {
	minPrice, maxPrice := "", ""
	if q.MinPrice != nil {
		minPrice = fmt.Sprintf("%g", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%g", *q.MaxPrice)
	}
	return fmt.Sprintf("%s%d:%s:%s:%s:%s:%s:%s:%s:%s:%s:%d:%d",
		ProductListCachePrefix, version,
		q.SKU, q.Name, q.Brand, q.Model, q.Category, q.Color,
		minPrice, maxPrice, q.Currency, q.Page, q.Limit)
}
