package middleware

import (
	"net/http"

	"chat-gate-service/httperrors"
	"chat-gate-service/request"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
)

type HttpError interface {
	StatusCode() int
	WriteError(w http.ResponseWriter) error
}

// ErrorHandler converts every error into a json response.
// Errors that carry no client-facing message become 502.
func ErrorHandler(logger log.Logger) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			err := next.Handle(ctx)
			if err == nil {
				return nil
			}

			var httpErr HttpError
			if !errors.As(err, &httpErr) {
				httpErr = httperrors.ServiceUnavailable(err)
			}

			if httpErr.StatusCode() < http.StatusInternalServerError {
				logger.Debug(ctx.Context(), err, log.Int("statusCode", httpErr.StatusCode()))
			} else {
				logger.Error(ctx.Context(), err, log.Int("statusCode", httpErr.StatusCode()))
			}

			return httpErr.WriteError(ctx.ResponseWriter())
		})
	}
}
