// Package gateway wraps outbound calls to the upstream stock platform:
// base-URL handling, API-key and cache-bypass headers, deterministic query
// serialization and uniform decoding of upstream errors.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrNotConfigured means the upstream base URL is missing. Callers surface
// it as a proxy configuration error, never as an upstream failure.
var ErrNotConfigured = errors.New("gateway base URL is not configured")

// ClientAccountHeader carries the tenant id on every upstream call.
const ClientAccountHeader = "client-account-id"

// HTTPError is a non-2xx upstream response. Message holds the structured
// error extracted from a JSON body when one was present, Body the raw bytes
// so proxies can relay the response untouched.
type HTTPError struct {
	Status  int
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("upstream responded %d: %s", e.Status, e.Message)
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	log     *zap.Logger
}

func New(baseURL, apiKey string, log *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 30 * time.Second},
		log:     log,
	}
}

// Configured reports whether a base URL is set.
func (c *Client) Configured() bool {
	return c.baseURL != ""
}

// CallOptions describes one upstream request. Empty query values are
// omitted; nothing else is rewritten.
type CallOptions struct {
	Method      string
	Query       map[string]string
	Headers     map[string]string
	Body        io.Reader
	ContentType string
}

// Call performs one upstream request and returns the response body.
// Inventory state changes constantly, so every request bypasses caches.
// Non-2xx responses come back as *HTTPError; the body is JSON-parsed for a
// structured message with a raw-text fallback.
func (c *Client) Call(ctx context.Context, path string, opts CallOptions) ([]byte, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(opts.Query) > 0 {
		values := url.Values{}
		for k, v := range opts.Query {
			if v != "" {
				values.Set(k, v)
			}
		}
		if encoded := values.Encode(); encoded != "" {
			endpoint += "?" + encoded
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, opts.Body)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	if opts.ContentType != "" {
		req.Header.Set("Content-Type", opts.ContentType)
	}
	for k, v := range opts.Headers {
		if v != "" {
			req.Header.Set(k, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read upstream response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{Status: resp.StatusCode, Message: errorMessage(body), Body: body}
		c.log.Warn("upstream error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("message", httpErr.Message))
		return nil, httpErr
	}

	return body, nil
}

// errorMessage extracts a structured error from a JSON body, falling back
// to the raw text.
func errorMessage(body []byte) string {
	var parsed struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Error != "" {
			return parsed.Error
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "upstream returned an empty error body"
	}
	return text
}
