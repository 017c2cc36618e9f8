package cache

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"kolan-weather/datasource"
	"kolan-weather/metrics"
	"kolan-weather/models"

	"golang.org/x/sync/singleflight"
)

// flightTimeout bounds an upstream call shared by concurrent misses on one key
const flightTimeout = 30 * time.Second

// shared runs fn once per key for all concurrent callers. The call runs detached from the
// context of the caller that started it; each caller stops waiting when its own context is done.
func shared[T any](ctx context.Context, group *singleflight.Group, key string, fn func(context.Context) (T, error)) (T, error) {
	ch := group.DoChan(key, func() (interface{}, error) {
		flightCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flightTimeout)
		defer cancel()
		return fn(flightCtx)
	})

	var zero T
	select {
	case <-ctx.Done():
		return zero, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return zero, res.Err
		}
		return res.Val.(T), nil
	}
}

// CachedGeocoder wraps a Geocoder and adds caching functionality
type CachedGeocoder struct {
	source         datasource.Geocoder
	cache          map[string]cacheEntry
	mutex          sync.RWMutex
	group          singleflight.Group
	cacheDuration  time.Duration
	cacheHitCount  int
	cacheMissCount int
}

// cacheEntry represents cached search results with their timestamp
type cacheEntry struct {
	Places    []models.Place
	Timestamp time.Time
}

// NewCachedGeocoder creates a new cached wrapper around a geocoder
func NewCachedGeocoder(source datasource.Geocoder, cacheDuration time.Duration) *CachedGeocoder {
	return &CachedGeocoder{
		source:        source,
		cache:         make(map[string]cacheEntry),
		cacheDuration: cacheDuration,
	}
}

// Name returns the name of the underlying geocoder with [Cached] suffix
func (c *CachedGeocoder) Name() string {
	return c.source.Name() + " [Cached]"
}

func searchKey(q datasource.SearchQuery) string {
	return fmt.Sprintf("%s|%d|%s", q.Language, q.Count, strings.ToLower(strings.TrimSpace(q.Name)))
}

// Search looks up places, using cache when available
func (c *CachedGeocoder) Search(ctx context.Context, q datasource.SearchQuery) ([]models.Place, error) {
	if !datasource.Searchable(q.Name) {
		return []models.Place{}, nil
	}
	key := searchKey(q)

	c.mutex.RLock()
	entry, found := c.cache[key]
	c.mutex.RUnlock()

	if found && time.Since(entry.Timestamp) < c.cacheDuration {
		c.mutex.Lock()
		c.cacheHitCount++
		c.mutex.Unlock()
		metrics.CacheLookups.WithLabelValues("search", "hit").Inc()

		slog.Debug("search cache hit", "query", q.Name, "lang", q.Language,
			"age", time.Since(entry.Timestamp).Round(time.Second))
		return entry.Places, nil
	}

	c.mutex.Lock()
	c.cacheMissCount++
	c.mutex.Unlock()
	metrics.CacheLookups.WithLabelValues("search", "miss").Inc()

	return shared(ctx, &c.group, key, func(ctx context.Context) ([]models.Place, error) {
		places, err := c.source.Search(ctx, q)
		if err != nil {
			return nil, err
		}

		c.mutex.Lock()
		c.cache[key] = cacheEntry{
			Places:    places,
			Timestamp: time.Now(),
		}
		c.mutex.Unlock()
		return places, nil
	})
}

// Prune removes entries older than the cache duration and returns how many were dropped
func (c *CachedGeocoder) Prune() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	pruned := 0
	for key, entry := range c.cache {
		if time.Since(entry.Timestamp) >= c.cacheDuration {
			delete(c.cache, key)
			pruned++
		}
	}
	return pruned
}

// CacheStats returns statistics about cache hits and misses
func (c *CachedGeocoder) CacheStats() (hits, misses int) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.cacheHitCount, c.cacheMissCount
}

// Ensure CachedGeocoder implements the Geocoder interface
var _ datasource.Geocoder = (*CachedGeocoder)(nil)
