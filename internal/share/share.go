// Package share posts the daily status update to the social platform's
// webhook. Platform specifics stay behind the webhook; this client only
// owns the outbound HTTP call.
package share

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const requestTimeout = 30 * time.Second

type statusPayload struct {
	Text string `json:"text"`
}

// Client posts status updates to a configured webhook URL.
type Client struct {
	http       *resty.Client
	webhookURL string
}

// New creates a Client posting to webhookURL, authenticating with token
// when it is non-empty.
func New(webhookURL, token string) *Client {
	httpClient := resty.New().SetTimeout(requestTimeout)
	if token != "" {
		httpClient.SetAuthToken(token)
	}

	return &Client{
		http:       httpClient,
		webhookURL: webhookURL,
	}
}

// Share posts today's status update. The caller treats the call as
// fire-and-forget; an error only surfaces in logs.
func (c *Client) Share(ctx context.Context) error {
	response, err := c.http.R().
		SetContext(ctx).
		SetBody(statusPayload{
			Text: fmt.Sprintf("Daily update for %s", time.Now().Format("2006-01-02")),
		}).
		Post(c.webhookURL)
	if err != nil {
		return fmt.Errorf(
			"in internal/share/share.go/Share(): error while webhook `Post()` calling: %w",
			err,
		)
	}

	if response.IsError() {
		return fmt.Errorf("share webhook responded with status %d", response.StatusCode())
	}

	return nil
}
