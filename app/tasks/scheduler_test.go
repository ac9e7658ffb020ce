package tasks

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lysyi3m/tsib-catalog/app/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// MockCatalogCache counts refreshes and optionally fails them
type MockCatalogCache struct {
	calls atomic.Int32
	err   error
}

func (m *MockCatalogCache) Get(ctx context.Context) (feed.Catalog, error) {
	m.calls.Add(1)
	if m.err != nil {
		return nil, m.err
	}
	return feed.Catalog{"massagers": {{}}, "injectors": {}}, nil
}

func TestRefreshCatalogTask(t *testing.T) {
	mock := &MockCatalogCache{}
	task := NewRefreshCatalogTask(mock)

	assert.Equal(t, TaskTypeRefreshCatalog, task.GetType())
	assert.NotEmpty(t, task.GetID())
	assert.Equal(t, time.Duration(0), task.GetDuration())

	task.Start()
	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, int32(1), mock.calls.Load())
}

func TestRefreshCatalogTaskError(t *testing.T) {
	cause := &feed.FetchError{URL: "https://t-sib.ru", StatusCode: 503}
	task := NewRefreshCatalogTask(&MockCatalogCache{err: cause})

	err := task.Execute(context.Background())
	require.Error(t, err)

	var fetchErr *feed.FetchError
	assert.True(t, errors.As(err, &fetchErr))
}

func TestSchedulerRunsOnStartAndOnTick(t *testing.T) {
	mock := &MockCatalogCache{}
	scheduler := NewScheduler(mock, 10*time.Millisecond)

	scheduler.Start()
	require.Eventually(t, func() bool { return mock.calls.Load() >= 3 }, time.Second, 5*time.Millisecond)
	scheduler.Stop()

	calls := mock.calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, calls, mock.calls.Load(), "no refreshes after Stop")
}

func TestSchedulerKeepsRunningAfterFailure(t *testing.T) {
	mock := &MockCatalogCache{err: errors.New("feed down")}
	scheduler := NewScheduler(mock, 10*time.Millisecond)

	scheduler.Start()
	defer scheduler.Stop()

	require.Eventually(t, func() bool { return mock.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
}
