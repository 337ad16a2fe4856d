package service_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"chat-gate-service/cache"
	"chat-gate-service/conf"
	"chat-gate-service/domain"
	"chat-gate-service/repository"
	"chat-gate-service/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	lock sync.Mutex
	now  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.now = c.now.Add(d)
}

func newThrottling(clock *fakeClock) service.Throttling {
	store := repository.NewMemoryRateLimit(cache.NewWithClock(clock.Now))
	return service.NewThrottling(store, conf.RateLimit{}, clock.Now)
}

func TestThrottlingFixedWindow(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	clock := newFakeClock()
	throttling := newThrottling(clock)
	ctx := context.Background()

	for i := 1; i <= conf.DefaultMaxRequests; i++ {
		result, err := throttling.AllowRateLimit(ctx, "203.0.113.7")
		require.NoError(err)
		require.True(result.Allow, "request %d", i)
		require.EqualValues(conf.DefaultMaxRequests-i, result.Remaining)
		clock.Advance(time.Second)
	}

	result, err := throttling.AllowRateLimit(ctx, "203.0.113.7")
	require.NoError(err)
	require.False(result.Allow)
	require.EqualValues(50*time.Second, result.RetryAfter)

	result, err = throttling.AllowRateLimit(ctx, "198.51.100.1")
	require.NoError(err)
	require.True(result.Allow)
}

func TestThrottlingWindowReset(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	clock := newFakeClock()
	throttling := newThrottling(clock)
	ctx := context.Background()

	for i := 0; i < conf.DefaultMaxRequests+5; i++ {
		_, err := throttling.AllowRateLimit(ctx, "client")
		require.NoError(err)
	}

	clock.Advance(time.Minute)
	result, err := throttling.AllowRateLimit(ctx, "client")
	require.NoError(err)
	require.False(result.Allow, "window boundary is still inside the window")

	clock.Advance(time.Millisecond)
	result, err = throttling.AllowRateLimit(ctx, "client")
	require.NoError(err)
	require.True(result.Allow)
	require.EqualValues(conf.DefaultMaxRequests-1, result.Remaining)
}

func TestThrottlingRejectedRequestsAreCounted(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	clock := newFakeClock()
	store := repository.NewMemoryRateLimit(cache.NewWithClock(clock.Now))
	throttling := service.NewThrottling(store, conf.RateLimit{MaxRequests: 2, WindowInSec: 10}, clock.Now)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := throttling.AllowRateLimit(ctx, "client")
		require.NoError(err)
	}

	entry, err := store.Get(ctx, "client")
	require.NoError(err)
	require.EqualValues(4, entry.Count)
	require.True(entry.ResetTime.Equal(clock.Now().Add(10 * time.Second)))
}

func TestThrottlingConcurrentBurst(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	clock := newFakeClock()
	throttling := newThrottling(clock)
	clientId := uuid.New().String()

	allowed := atomic.Int32{}
	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, err := throttling.AllowRateLimit(context.Background(), clientId)
			if err == nil && result.Allow {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(conf.DefaultMaxRequests, allowed.Load())
}

type brokenStore struct{}

func (brokenStore) Get(ctx context.Context, clientId string) (*domain.RateLimitEntry, error) {
	return nil, errors.New("connection refused")
}

func (brokenStore) Set(ctx context.Context, clientId string, entry domain.RateLimitEntry) error {
	return errors.New("connection refused")
}

func TestThrottlingStoreError(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	throttling := service.NewThrottling(brokenStore{}, conf.RateLimit{}, time.Now)
	result, err := throttling.AllowRateLimit(context.Background(), "client")
	require.Error(err)
	require.Nil(result)
}

func TestThrottlingResetTimeSurvivesStore(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	clock := &fakeClock{now: time.Date(2026, 3, 1, 12, 0, 0, 987654321, time.UTC)}
	store := repository.NewMemoryRateLimit(cache.NewWithClock(clock.Now))
	throttling := service.NewThrottling(store, conf.RateLimit{MaxRequests: 1, WindowInSec: 10}, clock.Now)
	ctx := context.Background()

	_, err := throttling.AllowRateLimit(ctx, "client")
	require.NoError(err)
	result, err := throttling.AllowRateLimit(ctx, "client")
	require.NoError(err)
	require.False(result.Allow)

	entry, err := store.Get(ctx, "client")
	require.NoError(err)
	require.Equal(result.RetryAfter, entry.ResetTime.Sub(clock.Now()))
	require.Equal(10*time.Second-654321*time.Nanosecond, result.RetryAfter)
}
