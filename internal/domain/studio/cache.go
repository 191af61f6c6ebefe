package studio

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const listCacheKey = "studios:all"

// CachedCatalog is a cache-aside decorator around a Catalog. Studios are
// read-only for this service, so the whole catalog is cached under one key
// with a TTL. A nil redis client (Redis disabled) falls straight through
// to the inner catalog.
type CachedCatalog struct {
	inner Catalog
	redis *redis.Client // nil if Redis disabled
	ttl   time.Duration
}

// NewCachedCatalog wraps a catalog with a Redis cache.
func NewCachedCatalog(inner Catalog, rdb *redis.Client, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		inner: inner,
		redis: rdb,
		ttl:   ttl,
	}
}

// List returns all studios, serving from cache when possible.
func (c *CachedCatalog) List(ctx context.Context) ([]Studio, error) {
	if studios, ok := c.cachedList(ctx); ok {
		return studios, nil
	}

	studios, err := c.inner.List(ctx)
	if err != nil {
		return nil, err
	}

	c.storeList(ctx, studios)
	return studios, nil
}

// FindByIDs filters the cached catalog by id, falling back to the inner
// catalog on a cache miss.
func (c *CachedCatalog) FindByIDs(ctx context.Context, ids []string) ([]Studio, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	if studios, ok := c.cachedList(ctx); ok {
		wanted := make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[id] = true
		}
		var matched []Studio
		for _, s := range studios {
			if wanted[s.ID] {
				matched = append(matched, s)
			}
		}
		return matched, nil
	}

	return c.inner.FindByIDs(ctx, ids)
}

func (c *CachedCatalog) cachedList(ctx context.Context) ([]Studio, bool) {
	if c.redis == nil {
		return nil, false
	}

	data, err := c.redis.Get(ctx, listCacheKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Msg("Failed to read studio cache")
		}
		return nil, false
	}

	var studios []Studio
	if err := json.Unmarshal(data, &studios); err != nil {
		log.Warn().Err(err).Msg("Corrupt studio cache entry, ignoring")
		return nil, false
	}
	return studios, true
}

func (c *CachedCatalog) storeList(ctx context.Context, studios []Studio) {
	if c.redis == nil {
		return
	}

	data, err := json.Marshal(studios)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, listCacheKey, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("Failed to write studio cache")
	}
}
