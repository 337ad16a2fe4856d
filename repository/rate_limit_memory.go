package repository

import (
	"context"

	"chat-gate-service/cache"
	"chat-gate-service/domain"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
)

type MemoryRateLimit struct {
	cache *cache.Cache
}

func NewMemoryRateLimit(cache *cache.Cache) MemoryRateLimit {
	return MemoryRateLimit{
		cache: cache,
	}
}

func (r MemoryRateLimit) Get(ctx context.Context, clientId string) (*domain.RateLimitEntry, error) {
	data, ok := r.cache.Get(clientId)
	if !ok {
		return nil, domain.ErrRateLimitCacheMiss
	}

	result := domain.RateLimitEntry{}
	err := json.Unmarshal(data, &result)
	if err != nil {
		return nil, errors.WithMessage(err, "json unmarshal rate limit entry")
	}

	return &result, nil
}

// Set stores the entry encoded the same way as in redis,
// so ResetTime keeps millisecond precision only.
func (r MemoryRateLimit) Set(ctx context.Context, clientId string, entry domain.RateLimitEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return errors.WithMessage(err, "json marshal rate limit entry")
	}

	r.cache.Set(clientId, value, entry.ResetTime)

	return nil
}
