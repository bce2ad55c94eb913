// Package api is the HTTP client for the remote focus-session service.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// isoMillis matches the instant format the service expects in query strings.
const isoMillis = "2006-01-02T15:04:05.000Z07:00"

// Config holds connection settings for the focus API.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	MaxRetries int
}

// Client talks to the focus API. A zero token sends unauthenticated requests.
type Client struct {
	cfg   Config
	base  *url.URL
	http  *http.Client
	token string
}

// ValidateBaseURL checks that raw is present and parses as an absolute URL.
func ValidateBaseURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, fmt.Errorf("API URL is required")
	}
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API URL %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid API URL %q: scheme must be http or https", raw)
	}
	return u, nil
}

// NewClient creates a Client for cfg.BaseURL.
func NewClient(cfg Config) (*Client, error) {
	base, err := ValidateBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, err
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	return &Client{
		cfg:  cfg,
		base: base,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}, nil
}

// WithToken returns a copy of c that sends the bearer token on every request.
func (c *Client) WithToken(token string) *Client {
	cp := *c
	cp.token = token
	return &cp
}

// BaseURL returns the normalized service URL.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// do sends one JSON request. Idempotent requests are retried on transport
// failures and 5xx responses; others are sent exactly once. out may be nil.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
	}

	attempts := 1
	if idempotent(method) {
		attempts += c.cfg.MaxRetries
	}

	var lastErr error
	tries := 0
	for tries < attempts {
		tries++
		retry, err := c.attempt(ctx, method, path, query, payload, out)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retry || ctx.Err() != nil {
			break
		}
	}

	switch {
	case errors.Is(ctx.Err(), context.Canceled):
		return fmt.Errorf("focus API request cancelled: %w", ctx.Err())
	case ctx.Err() != nil:
		return ErrTimeout
	case errors.Is(lastErr, ErrUnauthorized), errors.Is(lastErr, ErrInvalidPayload):
		return lastErr
	case isConnectionError(lastErr):
		return ErrUnavailable
	case tries > 1:
		return fmt.Errorf("%w: %v", ErrRetryExhausted, lastErr)
	default:
		return lastErr
	}
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return true
	}
	return false
}

func (c *Client) attempt(ctx context.Context, method, path string, query url.Values, payload []byte, out any) (retry bool, err error) {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return true, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return true, fmt.Errorf("reading response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return false, ErrUnauthorized
	case resp.StatusCode >= 500:
		return true, fmt.Errorf("focus API returned status %d: %s", resp.StatusCode, truncate(respBody))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return false, fmt.Errorf("focus API returned status %d: %s", resp.StatusCode, truncate(respBody))
	}

	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return false, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func truncate(b []byte) string {
	const max = 200
	s := strings.TrimSpace(string(b))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
