// Package catalog is the client for the Islam House content API (v3). List
// failures degrade to a bundled offline catalog; single-book lookups
// surface ErrNotFound or *FetchError to the caller.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"mafatih/internal/common/cache"
	"mafatih/internal/common/config"
	commonhttp "mafatih/internal/common/http"
	"mafatih/internal/common/logger"
)

const (
	Service = "islamhouse"

	DefaultProxyURL = "http://localhost:5173/api/islamhouse-v3"
	DefaultBaseURL  = "https://api3.islamhouse.com/v3/paV29H2gm56kvLPy"
	DefaultTimeout  = 15 * time.Second

	diagnosticTimeout = 5 * time.Second
)

var ErrNotFound = errors.New("CATALOG_NOT_FOUND")

// FetchError is a failed round trip to the API. Status is zero for
// transport and decode failures.
type FetchError struct {
	Status  int
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("islamhouse: %s (status %d)", e.Message, e.Status)
	}
	if e.Err != nil {
		return fmt.Sprintf("islamhouse: %s: %v", e.Message, e.Err)
	}
	return "islamhouse: " + e.Message
}

func (e *FetchError) Unwrap() error { return e.Err }

// Result wraps a list response. UsingFallback is true when Data came from
// the offline catalog, and Err then carries the failure that caused it.
type Result[T any] struct {
	Data          T
	UsingFallback bool
	Err           error
}

type Client struct {
	baseURL    string
	production bool
	http       *commonhttp.Client
	cache      *cache.Cache
	logger     logger.Logger
}

// NewClient wires a client against baseURL. httpClient and c are optional.
func NewClient(baseURL string, production bool, httpClient *commonhttp.Client, c *cache.Cache, log logger.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultProxyURL
		if production {
			baseURL = DefaultBaseURL
		}
	}
	if httpClient == nil {
		httpClient = commonhttp.NewClient(Service, DefaultTimeout)
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		production: production,
		http:       httpClient,
		cache:      c,
		logger:     log.With(map[string]interface{}{"component": "catalog"}),
	}
}

// NewFromConfig picks the proxy path in development and the upstream URL
// in production.
func NewFromConfig(cfg config.IslamHouseConfig, production bool, c *cache.Cache, log logger.Logger) *Client {
	timeout := config.GetDuration(cfg.Timeout)
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewClient(cfg.ResolveBaseURL(production), production, commonhttp.NewClient(Service, timeout), c, log)
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// do performs one request and decodes the JSON response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body interface{}, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &FetchError{Message: "failed to encode request", Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &FetchError{Message: "failed to build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &FetchError{Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return &FetchError{Status: resp.StatusCode, Message: c.statusMessage(resp.StatusCode)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &FetchError{Message: "failed to decode response", Err: err}
	}
	return nil
}

func (c *Client) statusMessage(status int) string {
	switch {
	case status == http.StatusNotFound && c.production:
		return "API endpoint not found (404) - The Islam House API may have changed or been discontinued"
	case status == http.StatusNotFound:
		return "API endpoint not found (404) - Check if the proxy is configured correctly"
	case status == http.StatusForbidden:
		return "Access forbidden (403) - API access denied or authentication required"
	case status >= 500:
		return "Server error - The Islam House API server is experiencing issues"
	default:
		return fmt.Sprintf("HTTP %d: %s", status, http.StatusText(status))
	}
}

// Diagnostic is the outcome of TestConnection.
type Diagnostic struct {
	Working    bool      `json:"working"`
	Status     int       `json:"status,omitempty"`
	Message    string    `json:"message"`
	BaseURL    string    `json:"baseUrl"`
	Production bool      `json:"production"`
	DurationMs int64     `json:"durationMs"`
	CheckedAt  time.Time `json:"checkedAt"`
}

// TestConnection probes the categories endpoint.
func (c *Client) TestConnection(ctx context.Context) Diagnostic {
	ctx, cancel := context.WithTimeout(ctx, diagnosticTimeout)
	defer cancel()

	start := time.Now()
	diag := Diagnostic{BaseURL: c.baseURL, Production: c.production}

	var raw json.RawMessage
	err := c.do(ctx, http.MethodGet, "/categories", url.Values{"lang": {"ar"}}, nil, &raw)
	diag.DurationMs = time.Since(start).Milliseconds()
	diag.CheckedAt = time.Now().UTC()

	if err == nil {
		diag.Working = true
		diag.Status = http.StatusOK
		diag.Message = "Islam House API is reachable"
		return diag
	}

	var fetchErr *FetchError
	if errors.As(err, &fetchErr) && fetchErr.Status != 0 {
		diag.Status = fetchErr.Status
		diag.Message = fetchErr.Message
	} else if errors.Is(err, context.DeadlineExceeded) {
		diag.Message = "Request timeout - API took too long to respond"
	} else {
		diag.Message = "Network connectivity issue: " + err.Error()
	}

	c.logger.Warn("Islam House connectivity check failed", map[string]interface{}{
		"status":  diag.Status,
		"message": diag.Message,
	})
	return diag
}
