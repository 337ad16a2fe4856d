package middleware

import (
	"net/http"
	"strings"

	"chat-gate-service/domain"
	"chat-gate-service/httperrors"
	"chat-gate-service/request"

	"github.com/pkg/errors"
)

const (
	allowedHeaders = "Content-Type"
)

// Cors answers preflight requests before any other check runs.
func Cors(allowedOrigin string, allowedMethods ...string) Middleware {
	methods := strings.Join(append(allowedMethods, http.MethodOptions), ", ")
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			if ctx.Request().Method != http.MethodOptions {
				return next.Handle(ctx)
			}

			header := ctx.ResponseWriter().Header()
			header.Set("Access-Control-Allow-Origin", allowedOrigin)
			header.Set("Access-Control-Allow-Methods", methods)
			header.Set("Access-Control-Allow-Headers", allowedHeaders)
			ctx.ResponseWriter().WriteHeader(http.StatusOK)
			return nil
		})
	}
}

func Method(allowed ...string) Middleware {
	methods := make(map[string]bool, len(allowed))
	for _, method := range allowed {
		methods[method] = true
	}
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			method := ctx.Request().Method
			if !methods[method] {
				return httperrors.New(
					http.StatusMethodNotAllowed,
					domain.MethodNotAllowedMessage,
					errors.Errorf("method: '%s' is not allowed", method),
				)
			}
			return next.Handle(ctx)
		})
	}
}
