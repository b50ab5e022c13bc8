package notify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Client delivers push notifications to users' devices.
type Client interface {
	Push(ctx context.Context, req PushRequest) error
}

// PushRequest is one notification to deliver.
type PushRequest struct {
	Topic   string
	Title   string
	Message string
}

// HTTPClient is a resty-backed implementation of Client talking to an
// ntfy-compatible push gateway: POST <base>/<topic> with the message body.
type HTTPClient struct {
	httpClient *resty.Client
}

// NewHTTPClient builds a push client for the configured gateway base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetTimeout(10 * time.Second)

	return &HTTPClient{httpClient: restyClient}
}

func (c *HTTPClient) Push(ctx context.Context, req PushRequest) error {
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetHeader("Title", req.Title).
		SetBody(req.Message).
		Post("/" + req.Topic)
	if err != nil {
		return fmt.Errorf("push notification: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("push notification: gateway returned %s", resp.Status())
	}

	return nil
}

// NopClient discards notifications. Used when no push gateway is configured.
type NopClient struct{}

func (NopClient) Push(ctx context.Context, req PushRequest) error {
	return nil
}
