package tasks

import (
	"context"
	"fmt"
	"log/slog"
)

type RefreshCatalogTask struct {
	Task
	catalogCache CatalogCacheInterface
}

func NewRefreshCatalogTask(catalogCache CatalogCacheInterface) *RefreshCatalogTask {
	return &RefreshCatalogTask{
		Task:         NewTask(TaskTypeRefreshCatalog),
		catalogCache: catalogCache,
	}
}

// Execute goes through the cache, so a fresh catalog costs nothing and a
// stale one is rebuilt before a request has to wait for it.
func (t *RefreshCatalogTask) Execute(ctx context.Context) error {
	catalog, err := t.catalogCache.Get(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh catalog: %w", err)
	}

	total := 0
	for _, offers := range catalog {
		total += len(offers)
	}

	slog.Debug("Task completed",
		"type", string(t.Type),
		"duration", t.GetDuration(),
		"offers", total)

	return nil
}
