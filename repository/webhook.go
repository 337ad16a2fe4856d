package repository

import (
	"context"
	"net/url"
	"time"

	"chat-gate-service/domain"

	"github.com/pkg/errors"
	"github.com/txix-open/isp-kit/http/httpcli"
)

type Webhook struct {
	cli     *httpcli.Client
	url     string
	timeout time.Duration
}

func NewWebhook(cli *httpcli.Client, url string, timeout time.Duration) Webhook {
	return Webhook{
		cli:     cli,
		url:     url,
		timeout: timeout,
	}
}

// Send posts the request and returns the decoded upstream body.
// Any non-2xx status is reported as an error.
func (r Webhook) Send(ctx context.Context, req domain.WebhookRequest) (any, error) {
	if r.url == "" {
		return nil, domain.ErrWebhookNotConfigured
	}

	var resp any
	_, err := r.cli.Post(r.url).
		JsonRequestBody(req).
		JsonResponseBody(&resp).
		StatusCodeToError().
		Timeout(r.timeout).
		Do(ctx)
	if err != nil {
		return nil, errors.WithMessage(withoutUrl(err), "webhook call")
	}

	return resp, nil
}

// withoutUrl keeps the webhook address out of logs.
func withoutUrl(err error) error {
	var errResp httpcli.ErrorResponse
	if errors.As(err, &errResp) {
		return errors.Errorf("unexpected status code %d, body=%s", errResp.StatusCode, errResp.Body)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return errors.WithMessage(urlErr.Err, urlErr.Op)
	}
	return err
}
