package middleware

import (
	"context"
	"net/http"

	"chat-gate-service/domain"
	"chat-gate-service/httperrors"
	"chat-gate-service/request"

	"github.com/pkg/errors"
)

type Throttler interface {
	AllowRateLimit(ctx context.Context, clientId string) (*domain.RateLimitResult, error)
}

func Throttling(throttler Throttler) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			clientId, err := ctx.ClientId()
			if err != nil {
				return errors.WithMessage(err, "throttling: get client id")
			}

			result, err := throttler.AllowRateLimit(ctx.Context(), clientId)
			if err != nil {
				return errors.WithMessage(err, "throttling: allow rate limit")
			}
			if !result.Allow {
				return httperrors.NewBilingual(
					http.StatusTooManyRequests,
					domain.TooManyRequestsMessage,
					domain.TooManyRequestsMessageEn,
					errors.Errorf("throttling: rate limit has been reached for client '%s'", clientId),
				).WithRetryAfter(result.RetryAfter)
			}

			return next.Handle(ctx)
		})
	}
}
