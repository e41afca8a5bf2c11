package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"groomroute_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// CachedProvider wraps a Provider with a Redis geocode cache. Addresses do
// not move, so successful lookups are safe to reuse for the configured TTL.
// Failed lookups are never cached; a transient upstream problem should not
// pin an address as unresolvable.
type CachedProvider struct {
	inner Provider
	rdb   *redis.Client
	ttl   time.Duration
	log   *logger.Logger
}

// NewCachedProvider wraps a provider with a geocode cache.
func NewCachedProvider(inner Provider, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CachedProvider {
	return &CachedProvider{inner: inner, rdb: rdb, ttl: ttl, log: log}
}

func (p *CachedProvider) Name() string { return p.inner.Name() }

// Geocode serves from cache when possible. Cache failures fall through to
// the live provider.
func (p *CachedProvider) Geocode(ctx context.Context, address string) GeocodeResult {
	key := cacheKey(address)

	raw, err := p.rdb.Get(ctx, key).Result()
	if err == nil {
		var cached GeocodeResult
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return cached
		}
	} else if !errors.Is(err, redis.Nil) {
		p.log.Warn("geocode cache read failed", "error", err)
	}

	result := p.inner.Geocode(ctx, address)
	if result.Status == GeocodeFailed {
		return result
	}

	if encoded, err := json.Marshal(result); err == nil {
		if err := p.rdb.Set(ctx, key, encoded, p.ttl).Err(); err != nil {
			p.log.Warn("geocode cache write failed", "error", err)
		}
	}

	return result
}

// OptimizeRoute passes straight through; stop sets vary per request and are
// not worth caching.
func (p *CachedProvider) OptimizeRoute(ctx context.Context, req RouteRequest) (*RouteResult, error) {
	return p.inner.OptimizeRoute(ctx, req)
}

func cacheKey(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	return fmt.Sprintf("geocode:%s", normalized)
}

var _ Provider = (*CachedProvider)(nil)
