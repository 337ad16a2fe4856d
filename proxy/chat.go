package proxy

import (
	"context"
	"io"
	"net/http"
	"time"

	"chat-gate-service/domain"
	"chat-gate-service/httperrors"
	"chat-gate-service/request"
	"chat-gate-service/service"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/json"
)

const (
	timestampLayout = "2006-01-02T15:04:05.000Z07:00"
)

type Webhook interface {
	Send(ctx context.Context, req domain.WebhookRequest) (any, error)
}

type UpstreamObserver interface {
	UpdateUpstreamDuration(duration time.Duration, err error)
}

type ChatConfig struct {
	AllowedOrigin    string
	Source           string
	MaxMessageLength int
}

type Chat struct {
	webhook  Webhook
	observer UpstreamObserver
	config   ChatConfig
	now      func() time.Time
}

func NewChat(webhook Webhook, observer UpstreamObserver, config ChatConfig, now func() time.Time) Chat {
	return Chat{
		webhook:  webhook,
		observer: observer,
		config:   config,
		now:      now,
	}
}

func (p Chat) Handle(ctx *request.Context) error {
	receivedAt := p.now()

	clientId, err := ctx.ClientId()
	if err != nil {
		return errors.WithMessage(err, "chat: get client id")
	}

	data, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.WithMessage(err, "chat: read request body")
	}
	message, err := service.ParseMessage(data)
	if err != nil {
		return errors.WithMessage(err, "chat")
	}

	message = service.SanitizeMessage(message, p.config.MaxMessageLength)
	if message == "" {
		return httperrors.New(
			http.StatusBadRequest,
			domain.MessageRequiredMessage,
			errors.New("chat: empty message"),
		)
	}

	startedAt := time.Now()
	resp, err := p.webhook.Send(ctx.Context(), domain.WebhookRequest{
		Message:   message,
		Timestamp: receivedAt.UTC().Format(timestampLayout),
		Source:    p.config.Source,
		Ip:        clientId,
		UserAgent: ctx.Request().UserAgent(),
	})
	if errors.Is(err, domain.ErrWebhookNotConfigured) {
		return httperrors.New(
			http.StatusInternalServerError,
			domain.NotConfiguredMessage,
			errors.WithMessage(err, "chat"),
		)
	}
	p.observer.UpdateUpstreamDuration(time.Since(startedAt), err)
	if err != nil {
		return httperrors.ServiceUnavailable(errors.WithMessage(err, "chat: send to webhook"))
	}

	writer := ctx.ResponseWriter()
	writer.Header().Set("Content-Type", "application/json")
	writer.Header().Set("Access-Control-Allow-Origin", p.config.AllowedOrigin)
	writer.WriteHeader(http.StatusOK)
	err = json.NewEncoder(writer).Encode(domain.ChatResponse{
		Success: true,
		Reply:   service.PickReply(resp),
	})
	if err != nil {
		return errors.WithMessage(err, "chat: write response")
	}
	return nil
}
