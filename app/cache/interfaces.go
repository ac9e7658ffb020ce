package cache

import (
	"context"

	"github.com/lysyi3m/tsib-catalog/app/feed"
)

// FetcherInterface downloads raw feed bytes.
type FetcherInterface interface {
	Run(ctx context.Context) ([]byte, error)
}

// BuilderInterface turns raw feed bytes into a catalog.
type BuilderInterface interface {
	Run(data []byte) (feed.Catalog, error)
}

var (
	_ FetcherInterface = (*feed.Fetcher)(nil)
	_ BuilderInterface = (*feed.Builder)(nil)
)
