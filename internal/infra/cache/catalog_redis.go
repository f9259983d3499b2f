package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/barbershop-booking/internal/domain/catalog"
	"github.com/BruksfildServices01/barbershop-booking/internal/metrics"
)

const catalogKeyPrefix = "catalog:shop:"

func catalogKey(shopID uuid.UUID) string {
	return catalogKeyPrefix + shopID.String()
}

// CatalogRedis stores ShopCatalogs as JSON with a TTL. Errors are logged
// and reported as misses.
type CatalogRedis struct {
	rdb     redis.Cmdable
	ttl     time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
}

func NewCatalogRedis(rdb redis.Cmdable, ttl time.Duration, log *zap.Logger, m *metrics.Metrics) *CatalogRedis {
	if log == nil {
		log = zap.NewNop()
	}
	return &CatalogRedis{rdb: rdb, ttl: ttl, log: log, metrics: m}
}

func (c *CatalogRedis) Get(ctx context.Context, shopID uuid.UUID) (*catalog.ShopCatalog, bool) {
	raw, err := c.rdb.Get(ctx, catalogKey(shopID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("catalog cache get failed", zap.String("barbershop_id", shopID.String()), zap.Error(err))
		}
		c.metrics.CacheLookup(false)
		return nil, false
	}

	var out catalog.ShopCatalog
	if err := json.Unmarshal(raw, &out); err != nil {
		c.log.Warn("catalog cache entry unreadable", zap.String("barbershop_id", shopID.String()), zap.Error(err))
		c.metrics.CacheLookup(false)
		return nil, false
	}

	c.metrics.CacheLookup(true)
	return &out, true
}

func (c *CatalogRedis) Set(ctx context.Context, sc *catalog.ShopCatalog) {
	raw, err := json.Marshal(sc)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, catalogKey(sc.Barbershop.ID), raw, c.ttl).Err(); err != nil {
		c.log.Warn("catalog cache set failed", zap.String("barbershop_id", sc.Barbershop.ID.String()), zap.Error(err))
	}
}

func (c *CatalogRedis) Invalidate(ctx context.Context, shopID uuid.UUID) {
	if err := c.rdb.Del(ctx, catalogKey(shopID)).Err(); err != nil {
		c.log.Warn("catalog cache invalidate failed", zap.String("barbershop_id", shopID.String()), zap.Error(err))
	}
}

var _ catalog.Cache = (*CatalogRedis)(nil)
