// Package api is the authenticated request pipeline: a thin HTTP client that
// attaches the live credential to every outbound request outside the auth
// namespace and classifies every failure into a stable error taxonomy.
// It never retries; callers decide what a failure means for them.
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
	"strings"
	"time"

	"github.com/glucotrack/glucotrack/internal/logging"
	"github.com/google/uuid"
)

// authNamespace prefixes backend paths that must never carry a bearer token.
const authNamespace = "/auth"

// DefaultTimeout is the fixed per-request ceiling.
const DefaultTimeout = 10 * time.Second

// TokenFunc returns the current bearer token, read fresh for every request so
// a credential change takes effect on the very next call. Empty string means
// no credential.
type TokenFunc func(ctx context.Context) (string, error)

// ReadyFunc blocks until the session layer has finished hydrating.
type ReadyFunc func(ctx context.Context) error

// Client performs JSON calls against the backend.
type Client struct {
	baseURL        string
	http           *http.Client
	log            logging.Logger
	token          TokenFunc
	ready          ReadyFunc
	onUnauthorized func(ctx context.Context)
}

// Option customizes a Client.
type Option func(*Client)

// WithTokenFunc wires the credential source.
func WithTokenFunc(fn TokenFunc) Option {
	return func(c *Client) { c.token = fn }
}

// WithReadyFunc wires the hydration gate awaited before credentials are attached.
func WithReadyFunc(fn ReadyFunc) Option {
	return func(c *Client) { c.ready = fn }
}

// WithOnUnauthorized wires the forced-logout hook invoked on any 401.
func WithOnUnauthorized(fn func(ctx context.Context)) Option {
	return func(c *Client) { c.onUnauthorized = fn }
}

// WithHTTPClient replaces the underlying HTTP client (tests).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New builds a pipeline client for the given base URL.
func New(baseURL string, timeout time.Duration, log logging.Logger, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get performs a GET request and returns the raw response body.
func (c *Client) Get(ctx context.Context, path string) ([]byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

// Post marshals body as JSON and performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body any) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *Client) do(ctx context.Context, method, path string, body any) ([]byte, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encoding request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	if !strings.HasPrefix(path, authNamespace) {
		if c.ready != nil {
			if err := c.ready(ctx); err != nil {
				return nil, err
			}
		}
		if c.token != nil {
			token, err := c.token(ctx)
			if err != nil {
				c.log.Warn(ctx, "could not read credential, sending unauthenticated", "error", err)
			} else if token != "" {
				req.Header.Set("Authorization", "Bearer "+token)
			}
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.classifyTransport(ctx, method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransport(ctx, method, path, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return data, nil
	}
	return nil, c.classifyStatus(ctx, method, path, resp.StatusCode, data)
}

func (c *Client) classifyTransport(ctx context.Context, method, path string, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		c.log.Warn(ctx, "request timed out", "method", method, "path", path)
		return &Error{Kind: KindTimeout, Message: MsgTimeout}
	}

	c.log.Warn(ctx, "request failed without response", "method", method, "path", path, "error", err)
	return &Error{Kind: KindNetwork, Message: MsgNetwork}
}

func (c *Client) classifyStatus(ctx context.Context, method, path string, status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		c.log.Warn(ctx, "unauthorized response, invalidating session", "method", method, "path", path)
		if c.onUnauthorized != nil {
			c.onUnauthorized(ctx)
		}
		return &Error{Kind: KindUnauthorized, Status: status, Message: MsgUnauthorized}

	case status == http.StatusForbidden:
		c.log.Warn(ctx, "forbidden", "method", method, "path", path)
		return &Error{Kind: KindForbidden, Status: status, Message: MsgForbidden}

	case status == http.StatusTooManyRequests:
		c.log.Warn(ctx, "rate limited", "method", method, "path", path)
		return &Error{Kind: KindRateLimited, Status: status, Message: MsgRateLimited}

	case status >= http.StatusInternalServerError:
		c.log.Error(ctx, "server error", "method", method, "path", path, "status", status)
		return &Error{Kind: KindServer, Status: status, Message: MsgServer}

	default:
		msg := backendMessage(body)
		if msg == "" {
			msg = fmt.Sprintf("Request failed (%d).", status)
		}
		c.log.Warn(ctx, "request rejected", "method", method, "path", path, "status", status)
		return &Error{Kind: KindRequest, Status: status, Message: msg}
	}
}

// backendMessage extracts the backend's own "message" field when present.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	return payload.Message
}
