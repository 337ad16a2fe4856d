package repository

import (
	"context"
	"fmt"
	"time"

	"chat-gate-service/domain"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"github.com/txix-open/isp-kit/json"
)

const (
	// key outlives the window by this much
	redisExpireGrace = time.Second
)

type RedisRateLimit struct {
	cli redis.UniversalClient
}

func NewRedisRateLimit(cli redis.UniversalClient) RedisRateLimit {
	return RedisRateLimit{
		cli: cli,
	}
}

func (r RedisRateLimit) Get(ctx context.Context, clientId string) (*domain.RateLimitEntry, error) {
	data, err := r.cli.Get(ctx, r.key(clientId)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, domain.ErrRateLimitCacheMiss
	}
	if err != nil {
		return nil, errors.WithMessage(err, "get")
	}

	result := domain.RateLimitEntry{}
	err = json.Unmarshal(data, &result)
	if err != nil {
		return nil, errors.WithMessage(err, "json unmarshal rate limit entry")
	}

	return &result, nil
}

func (r RedisRateLimit) Set(ctx context.Context, clientId string, entry domain.RateLimitEntry) error {
	value, err := json.Marshal(entry)
	if err != nil {
		return errors.WithMessage(err, "json marshal rate limit entry")
	}

	err = r.cli.SetArgs(ctx, r.key(clientId), value, redis.SetArgs{
		ExpireAt: entry.ResetTime.Add(redisExpireGrace),
	}).Err()
	if err != nil {
		return errors.WithMessage(err, "set")
	}

	return nil
}

func (r RedisRateLimit) key(clientId string) string {
	return fmt.Sprintf("chat_rate_limit:%s", clientId)
}
