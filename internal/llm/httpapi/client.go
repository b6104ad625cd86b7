// Package httpapi is the JSON-over-HTTP base shared by the provider backends.
// It owns auth headers, the HTTP client, and the error types the backends
// surface to the dispatcher.
package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultTimeout applies when no *http.Client is supplied.
const DefaultTimeout = 60 * time.Second

// Auth describes how the API key is attached to each request.
type Auth struct {
	Key    string // API key value.
	Header string // Header name (default: "Authorization").
	Scheme string // Scheme prefix (default: "Bearer" when Header is "Authorization").
}

// ErrorParser extracts a vendor error code and message from a non-2xx body.
// Returning an empty message makes the raw body the message.
type ErrorParser func(body []byte) (code, message string)

// Client sends JSON requests to one provider API.
type Client struct {
	Provider   string            // Name used in error messages, e.g. "gemini".
	BaseURL    string            // API base URL (no trailing slash).
	Auth       Auth              // Authentication settings.
	Headers    map[string]string // Extra headers applied to every request.
	HTTP       *http.Client      // Falls back to a client with DefaultTimeout.
	ParseError ErrorParser       // Optional vendor error body parser.
}

var fallbackClient = &http.Client{Timeout: DefaultTimeout}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return fallbackClient
}

// NewRequest builds a request against BaseURL+path with auth and custom
// headers applied.
func (c *Client) NewRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}

	if c.Auth.Key != "" {
		header := c.Auth.Header
		if header == "" {
			header = "Authorization"
		}
		value := c.Auth.Key
		if header == "Authorization" {
			scheme := c.Auth.Scheme
			if scheme == "" {
				scheme = "Bearer"
			}
			value = scheme + " " + value
		} else if c.Auth.Scheme != "" {
			value = c.Auth.Scheme + " " + value
		}
		req.Header.Set(header, value)
	}

	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}
	return req, nil
}

// PostJSON marshals payload, POSTs it to path and decodes a 2xx body into
// dest. Transport failures come back as *TransportError and non-2xx
// responses as *StatusError.
func (c *Client) PostJSON(ctx context.Context, path string, payload, dest any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%s: marshal payload: %w", c.Provider, err)
	}

	req, err := c.NewRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: build request: %w", c.Provider, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req) //nolint:gosec // URL comes from provider config, not user input.
	if err != nil {
		return &TransportError{Provider: c.Provider, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Provider: c.Provider, Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		se := &StatusError{Provider: c.Provider, StatusCode: resp.StatusCode}
		if c.ParseError != nil {
			se.Code, se.Message = c.ParseError(raw)
		}
		if se.Message == "" {
			se.Message = string(bytes.TrimSpace(raw))
		}
		return se
	}

	if dest == nil {
		return nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("%s: decode response: %w", c.Provider, err)
	}
	return nil
}
