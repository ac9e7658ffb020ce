package tasks

import (
	"context"

	"github.com/lysyi3m/tsib-catalog/app/feed"
)

// CatalogCacheInterface is the part of the catalog cache the tasks rely on.
type CatalogCacheInterface interface {
	Get(ctx context.Context) (feed.Catalog, error)
}
