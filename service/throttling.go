package service

import (
	"context"
	"sync"
	"time"

	"chat-gate-service/conf"
	"chat-gate-service/domain"

	"github.com/cespare/xxhash/v2"
	"github.com/pkg/errors"
)

const (
	lockShards = 64
)

type RateLimitStore interface {
	Get(ctx context.Context, clientId string) (*domain.RateLimitEntry, error)
	Set(ctx context.Context, clientId string, entry domain.RateLimitEntry) error
}

type keyLocks struct {
	shards [lockShards]sync.Mutex
}

func (l *keyLocks) lock(key string) func() {
	mu := &l.shards[xxhash.Sum64String(key)%lockShards]
	mu.Lock()
	return mu.Unlock
}

// Throttling is a fixed window counter per client.
// Rejected requests still count against the current window.
type Throttling struct {
	store       RateLimitStore
	locks       *keyLocks
	maxRequests int
	window      time.Duration
	now         func() time.Time
}

func NewThrottling(store RateLimitStore, config conf.RateLimit, now func() time.Time) Throttling {
	return Throttling{
		store:       store,
		locks:       &keyLocks{},
		maxRequests: config.GetMaxRequests(),
		window:      config.GetWindow(),
		now:         now,
	}
}

func (s Throttling) AllowRateLimit(ctx context.Context, clientId string) (*domain.RateLimitResult, error) {
	unlock := s.locks.lock(clientId)
	defer unlock()

	now := s.now()
	entry, err := s.store.Get(ctx, clientId)
	switch {
	case errors.Is(err, domain.ErrRateLimitCacheMiss):
		entry = s.newEntry(now)
	case err != nil:
		return nil, errors.WithMessage(err, "rate limit store get")
	case entry.Expired(now):
		entry = s.newEntry(now)
	default:
		entry.Count++
	}

	err = s.store.Set(ctx, clientId, *entry)
	if err != nil {
		return nil, errors.WithMessage(err, "rate limit store set")
	}

	if entry.Count > s.maxRequests {
		return &domain.RateLimitResult{
			Allow:      false,
			Remaining:  0,
			RetryAfter: entry.ResetTime.Sub(now),
		}, nil
	}
	return &domain.RateLimitResult{
		Allow:      true,
		Remaining:  s.maxRequests - entry.Count,
		RetryAfter: -1,
	}, nil
}

func (s Throttling) newEntry(now time.Time) *domain.RateLimitEntry {
	return &domain.RateLimitEntry{
		Count:     1,
		// stores keep millisecond precision
		ResetTime: now.Add(s.window).Truncate(time.Millisecond),
	}
}
