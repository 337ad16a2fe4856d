package middleware

import (
	"net/http"

	"chat-gate-service/domain"
	"chat-gate-service/httperrors"
	"chat-gate-service/request"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/log"
)

type ClientResolver interface {
	Resolve(req *http.Request) (string, bool)
}

func ClientAddress(resolver ClientResolver) Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx *request.Context) error {
			clientId, ok := resolver.Resolve(ctx.Request())
			if !ok {
				return httperrors.New(
					http.StatusBadRequest,
					domain.ClientAddressRequiredMessage,
					errors.New("client address: client address is missing"),
				)
			}

			ctx.Identify(clientId)
			ctx.SetContext(log.ToContext(ctx.Context(), log.String("clientId", clientId)))

			return next.Handle(ctx)
		})
	}
}
