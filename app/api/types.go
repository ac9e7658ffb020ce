package api

import (
	"context"

	"github.com/lysyi3m/tsib-catalog/app/cache"
	"github.com/lysyi3m/tsib-catalog/app/feed"
)

type CatalogCacheInterface interface {
	Get(ctx context.Context) (feed.Catalog, error)
	Stats() cache.Stats
}

var _ CatalogCacheInterface = (*cache.Cache)(nil)

type Handler struct {
	catalogCache CatalogCacheInterface
	version      string
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}
