package middleware

import (
	"chat-gate-service/request"
)

type StatusCounter interface {
	UpdateStatusCounter(statusCode int)
}

func Metrics(counter StatusCounter) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			writer := &writerWrapper{ResponseWriter: ctx.ResponseWriter()}
			ctx.SetResponseWriter(writer)

			err := next.Handle(ctx)

			counter.UpdateStatusCounter(writer.StatusCode())
			return err
		})
	}
}
