package middleware

import (
	"net/http"

	"chat-gate-service/domain"
	"chat-gate-service/httperrors"
	"chat-gate-service/request"

	"github.com/pkg/errors"
)

const (
	originHeader = "Origin"
)

// Origin rejects browser requests from unknown sites.
// Requests without Origin header pass through.
func Origin(allowedOrigins []string) Middleware {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[origin] = true
	}
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			origin := ctx.Request().Header.Get(originHeader)
			if origin != "" && !allowed[origin] {
				return httperrors.New(
					http.StatusForbidden,
					domain.ForbiddenMessage,
					errors.Errorf("origin: '%s' is not allowed", origin),
				)
			}
			return next.Handle(ctx)
		})
	}
}
