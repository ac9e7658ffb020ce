package tasks

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler periodically runs a catalog refresh so the cache is warmed off
// the request path. Failed runs are logged and retried on the next tick.
type Scheduler struct {
	catalogCache CatalogCacheInterface
	interval     time.Duration
	taskTimeout  time.Duration
	ctx          context.Context
	cancel       context.CancelFunc
	wg           sync.WaitGroup
}

func NewScheduler(catalogCache CatalogCacheInterface, interval time.Duration) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		catalogCache: catalogCache,
		interval:     interval,
		taskTimeout:  time.Minute,
		ctx:          ctx,
		cancel:       cancel,
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		s.executeTask(NewRefreshCatalogTask(s.catalogCache))

		for {
			select {
			case <-s.ctx.Done():
				return
			case <-ticker.C:
				s.executeTask(NewRefreshCatalogTask(s.catalogCache))
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

func (s *Scheduler) executeTask(task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(s.ctx, s.taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Task execution failed",
			"type", string(task.GetType()),
			"id", task.GetID(),
			"duration", task.GetDuration(),
			"error", err)
	}
}
