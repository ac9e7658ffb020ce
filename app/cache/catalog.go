package cache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/tsib-catalog/app/feed"
	"github.com/lysyi3m/tsib-catalog/app/metrics"
	"golang.org/x/sync/singleflight"
)

const buildKey = "catalog"

// Cache keeps the last successfully built catalog for ttl. Concurrent callers
// that find it stale share a single fetch and build.
type Cache struct {
	fetcher FetcherInterface
	builder BuilderInterface
	ttl     time.Duration
	now     func() time.Time

	mu      sync.RWMutex
	catalog feed.Catalog
	builtAt time.Time

	group singleflight.Group
}

type Stats struct {
	Populated bool
	BuiltAt   time.Time
	Age       time.Duration
	Fresh     bool
}

func NewCache(fetcher FetcherInterface, builder BuilderInterface, ttl time.Duration) *Cache {
	return &Cache{
		fetcher: fetcher,
		builder: builder,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached catalog, rebuilding it when missing or stale. A
// failed rebuild leaves the previous entry untouched and returns the error;
// the stale catalog is not served in its place.
func (c *Cache) Get(ctx context.Context) (feed.Catalog, error) {
	if catalog, ok := c.fresh(); ok {
		metrics.CacheRequests.WithLabelValues("hit").Inc()
		return catalog, nil
	}

	ch := c.group.DoChan(buildKey, func() (interface{}, error) {
		// Another caller may have stored a fresh catalog while this one waited.
		if catalog, ok := c.fresh(); ok {
			return catalog, nil
		}
		metrics.CacheRequests.WithLabelValues("miss").Inc()
		return c.rebuild(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(feed.Catalog), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (c *Cache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.catalog == nil {
		return Stats{}
	}

	age := c.now().Sub(c.builtAt)
	return Stats{
		Populated: true,
		BuiltAt:   c.builtAt,
		Age:       age,
		Fresh:     age < c.ttl,
	}
}

func (c *Cache) fresh() (feed.Catalog, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.catalog == nil || c.now().Sub(c.builtAt) >= c.ttl {
		return nil, false
	}
	return c.catalog, true
}

func (c *Cache) rebuild(ctx context.Context) (feed.Catalog, error) {
	started := c.now()

	data, err := c.fetcher.Run(ctx)
	if err != nil {
		metrics.Builds.WithLabelValues("fetch_error").Inc()
		slog.Error("Feed fetch failed", "error", err)
		return nil, err
	}

	catalog, err := c.builder.Run(data)
	if err != nil {
		metrics.Builds.WithLabelValues("parse_error").Inc()
		slog.Error("Catalog build failed", "bytes", len(data), "error", err)
		return nil, err
	}

	// The entry is stamped with the time the rebuild started.
	c.mu.Lock()
	c.catalog = catalog
	c.builtAt = started
	c.mu.Unlock()

	duration := c.now().Sub(started)
	metrics.Builds.WithLabelValues("success").Inc()
	metrics.BuildDuration.Observe(duration.Seconds())
	for key, offers := range catalog {
		metrics.CatalogOffers.WithLabelValues(key).Set(float64(len(offers)))
	}

	slog.Info("Catalog refreshed",
		"duration", duration,
		"sections", len(catalog))

	return catalog, nil
}
