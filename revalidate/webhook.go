package revalidate

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
)

// SecretHeader carries the shared secret expected by the frontend.
const SecretHeader = "X-Revalidate-Secret"

// Webhook posts targets to the frontend's on-demand revalidation endpoint.
type Webhook struct {
	client *resty.Client
	url    string
}

func NewWebhook(url, secret string) *Webhook {
	client := resty.New().
		SetTimeout(5*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(200*time.Millisecond).
		SetHeader(SecretHeader, secret)
	return &Webhook{client: client, url: url}
}

func (w *Webhook) Revalidate(ctx context.Context, target Target) error {
	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(target).
		Post(w.url)
	if err != nil {
		return errors.Wrap(err, "revalidate webhook")
	}
	if resp.IsError() {
		return errors.Errorf("revalidate webhook: status %d: %s", resp.StatusCode(), resp.String())
	}
	return nil
}
