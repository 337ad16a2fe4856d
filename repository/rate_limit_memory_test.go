package repository_test

import (
	"context"
	"testing"
	"time"

	"chat-gate-service/cache"
	"chat-gate-service/domain"
	"chat-gate-service/repository"

	"github.com/stretchr/testify/require"
)

func TestMemoryRateLimit(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	memory := cache.NewWithClock(clock)
	repo := repository.NewMemoryRateLimit(memory)
	ctx := context.Background()

	_, err := repo.Get(ctx, "client")
	require.ErrorIs(err, domain.ErrRateLimitCacheMiss)

	entry := domain.RateLimitEntry{Count: 3, ResetTime: now.Add(time.Minute)}
	err = repo.Set(ctx, "client", entry)
	require.NoError(err)

	stored, err := repo.Get(ctx, "client")
	require.NoError(err)
	require.EqualValues(3, stored.Count)
	require.True(entry.ResetTime.Equal(stored.ResetTime))

	now = now.Add(time.Minute + time.Millisecond)
	_, err = repo.Get(ctx, "client")
	require.ErrorIs(err, domain.ErrRateLimitCacheMiss)
	require.EqualValues(1, memory.Sweep())
	require.Zero(memory.Len())
}

func TestMemoryRateLimitPrecision(t *testing.T) {
	t.Parallel()
	require := require.New(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC)
	repo := repository.NewMemoryRateLimit(cache.NewWithClock(func() time.Time { return now }))
	ctx := context.Background()

	entry := domain.RateLimitEntry{Count: 1, ResetTime: now.Add(time.Minute)}
	err := repo.Set(ctx, "client", entry)
	require.NoError(err)

	stored, err := repo.Get(ctx, "client")
	require.NoError(err)
	require.True(entry.ResetTime.Truncate(time.Millisecond).Equal(stored.ResetTime))
}
