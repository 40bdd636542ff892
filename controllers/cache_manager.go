package controllers

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"tienda-backend/models"
)

const (
	productCacheKeyPrefix  = "product:detail:"
	productListCacheKey    = "products:all:v:"
	productCacheVersionKey = "products:version"

	cacheTTL = 5 * time.Minute
)

// CacheManager caches the product catalog in Redis. List entries are keyed
// by a version counter; bumping it invalidates every cached list at once.
// A nil manager (or nil client) disables caching entirely.
type CacheManager struct {
	redis  *redis.Client
	logger *zap.Logger
}

// NewCacheManager creates a new CacheManager. client may be nil.
func NewCacheManager(client *redis.Client, logger *zap.Logger) *CacheManager {
	return &CacheManager{redis: client, logger: logger}
}

func (cm *CacheManager) enabled() bool {
	return cm != nil && cm.redis != nil
}

// GetProduct returns a cached product, if present.
func (cm *CacheManager) GetProduct(ctx context.Context, id string) (*models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}
	data, err := cm.redis.Get(ctx, productCacheKeyPrefix+id).Result()
	if err != nil {
		return nil, false
	}
	var p models.Product
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &p, true
}

// SetProduct caches one product asynchronously.
func (cm *CacheManager) SetProduct(id string, product *models.Product) {
	if !cm.enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		data, err := json.Marshal(product)
		if err != nil {
			cm.logger.Warn("Failed to marshal product for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(ctx, productCacheKeyPrefix+id, data, cacheTTL).Err(); err != nil {
			cm.logger.Warn("Failed to cache product", zap.Error(err))
		}
	}()
}

// GetProductList returns the cached catalog listing, if present.
func (cm *CacheManager) GetProductList(ctx context.Context) ([]models.Product, bool) {
	if !cm.enabled() {
		return nil, false
	}
	version, err := cm.version(ctx)
	if err != nil {
		return nil, false
	}
	data, err := cm.redis.Get(ctx, cm.listKey(version)).Result()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal([]byte(data), &products); err != nil {
		cm.logger.Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductList caches the catalog listing asynchronously.
func (cm *CacheManager) SetProductList(products []models.Product) {
	if !cm.enabled() {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.version(ctx)
		if err != nil {
			return
		}
		data, err := json.Marshal(products)
		if err != nil {
			cm.logger.Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(ctx, cm.listKey(version), data, cacheTTL).Err(); err != nil {
			cm.logger.Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// InvalidateProduct drops one product entry and bumps the list version.
// Called on every catalog write.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, id string) {
	if !cm.enabled() {
		return
	}
	if err := cm.redis.Incr(ctx, productCacheVersionKey).Err(); err != nil {
		cm.logger.Warn("Failed to bump product cache version", zap.Error(err))
	}
	if id == "" {
		return
	}
	if err := cm.redis.Del(ctx, productCacheKeyPrefix+id).Err(); err != nil {
		cm.logger.Warn("Failed to delete cached product", zap.Error(err))
	}
}

func (cm *CacheManager) version(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, productCacheVersionKey).Int64()
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, productCacheVersionKey, 1, 0).Err(); err != nil {
			return 0, err
		}
		return 1, nil
	}
	return ver, err
}

func (cm *CacheManager) listKey(version int64) string {
	return productListCacheKey + strconv.FormatInt(version, 10)
}
