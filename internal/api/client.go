package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds every request issued by a Client.
const DefaultTimeout = 15 * time.Second

// The remote service rejects requests without a browser-looking referer.
const referer = "https://order.dominos.com/en/pages/order/"

// ErrHTTPStatus indicates the remote service answered with a non-success
// HTTP status. No retry is attempted at this layer.
var ErrHTTPStatus = errors.New("unexpected http status")

// Client issues JSON requests against the remote ordering service with a
// bounded timeout and the fixed header set the service expects.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a Client. A non-positive timeout falls back to
// DefaultTimeout; a nil logger falls back to slog.Default.
func NewClient(timeout time.Duration, log *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &loggingTransport{
				base: http.DefaultTransport,
				log:  log,
			},
		},
	}
}

// PostJSON sends body as a JSON document and decodes the JSON response.
func (c *Client) PostJSON(ctx context.Context, url string, body any) (map[string]any, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.doJSON(req)
}

// GetJSON fetches and decodes a JSON document.
func (c *Client) GetJSON(ctx context.Context, url string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	return c.doJSON(req)
}

// GetBytes fetches a raw document, e.g. the XML tracker payload.
func (c *Client) GetBytes(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return data, nil
}

func (c *Client) doJSON(req *http.Request) (map[string]any, error) {
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return decoded, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Referer", referer)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %d for %s %s", ErrHTTPStatus, resp.StatusCode, req.Method, req.URL.Path)
	}
	return resp, nil
}

// loggingTransport logs every outbound request
type loggingTransport struct {
	base http.RoundTripper
	log  *slog.Logger
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.log.Error("http request failed",
			"method", req.Method,
			"path", req.URL.Path,
			"error", err,
		)
		return nil, err
	}

	t.log.Debug("http request",
		"method", req.Method,
		"path", req.URL.Path,
		"status", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return resp, nil
}
