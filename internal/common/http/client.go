// internal/common/http/client.go
package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"mafatih/internal/common/metrics"
)

// Client is a thin wrapper over net/http that labels every outbound call
// with the service it talks to.
type Client struct {
	httpClient *http.Client
	service    string
}

func NewClient(service string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		service: service,
	}
}

// NewClientWith wraps a caller-provided client, e.g. one built by httptest.
func NewClientWith(service string, hc *http.Client) *Client {
	if hc == nil {
		hc = &http.Client{}
	}
	return &Client{httpClient: hc, service: service}
}

func (c *Client) Service() string {
	return c.service
}

func (c *Client) Do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	metrics.ExternalRequestDuration.WithLabelValues(c.service).Observe(time.Since(start).Seconds())

	outcome := "error"
	if err == nil {
		outcome = strconv.Itoa(resp.StatusCode)
	}
	metrics.ExternalRequestsTotal.WithLabelValues(c.service, outcome).Inc()

	return resp, err
}

func (c *Client) DoWithContext(ctx context.Context, req *http.Request) (*http.Response, error) {
	return c.Do(req.WithContext(ctx))
}
