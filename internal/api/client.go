// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "http://localhost:8787"

// Endpoint paths.
const (
	PathMessage = "/api/message"
	PathHistory = "/api/history"
	PathHealth  = "/api/health"
)

// maxErrorBody bounds how much of a failed reply is read before closing.
const maxErrorBody = 64 << 10

// =============================================================================
// CLIENT CONFIGURATION
// =============================================================================

// ClientConfig holds configuration options for the client.
type ClientConfig struct {
	// BaseURL is the backend root, e.g. http://localhost:8787.
	BaseURL string

	// Timeout bounds each request. Zero means no client-imposed timeout.
	Timeout time.Duration

	// UserAgent is sent on every request when non-empty.
	UserAgent string

	// HTTPClient overrides the transport. Timeout is ignored when set.
	HTTPClient *http.Client

	// Logger receives one debug record per request. Defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the default client configuration.
func DefaultConfig() *ClientConfig {
	return &ClientConfig{
		BaseURL: DefaultBaseURL,
	}
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to the message processor backend.
//
// The Client is safe for concurrent use; SetBaseURL may be called while
// requests are in flight; each request uses the base URL current at its start.
type Client struct {
	mu        sync.RWMutex
	baseURL   string
	userAgent string

	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a client for baseURL with default settings.
func NewClient(baseURL string) *Client {
	cfg := DefaultConfig()
	cfg.BaseURL = baseURL
	return NewClientWithConfig(cfg)
}

// NewClientWithConfig creates a client with custom configuration.
func NewClientWithConfig(config *ClientConfig) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: config.Timeout}
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{
		userAgent:  config.UserAgent,
		httpClient: httpClient,
		logger:     logger,
	}
	c.SetBaseURL(config.BaseURL)
	return c
}

// SetBaseURL replaces the base URL. Exactly one trailing slash is removed if
// present. The value is not validated.
func (c *Client) SetBaseURL(baseURL string) {
	c.mu.Lock()
	c.baseURL = NormalizeBaseURL(baseURL)
	c.mu.Unlock()
}

// BaseURL returns the current base URL.
func (c *Client) BaseURL() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.baseURL
}

// NormalizeBaseURL removes exactly one trailing slash, if present.
func NormalizeBaseURL(baseURL string) string {
	return strings.TrimSuffix(baseURL, "/")
}

// =============================================================================
// REQUEST PRIMITIVE
// =============================================================================

// request performs one HTTP call against endpoint and decodes the JSON reply
// into out. headers are merged over the default Content-Type header; caller
// values win. A non-2xx status is an error even when the body is valid JSON.
func (c *Client) request(ctx context.Context, method, endpoint string, body any, headers http.Header, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &ClientError{Type: ErrTypeRequest, Message: "failed to encode request", Cause: err}
		}
		reader = bytes.NewReader(data)
	}

	target := c.BaseURL() + endpoint
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &ClientError{Type: ErrTypeRequest, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	for key, values := range headers {
		req.Header.Del(key)
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("api request failed",
			"method", method, "endpoint", endpoint, "error", err, "elapsed", time.Since(start))
		return newTransportError(err)
	}
	defer drainAndClose(resp.Body)

	c.logger.Debug("api request",
		"method", method, "endpoint", endpoint, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return &ClientError{Type: ErrTypeInvalidResponse, Message: "empty response body"}
		}
		return &ClientError{Type: ErrTypeInvalidResponse, Message: "failed to decode response", Cause: err}
	}
	return nil
}

// =============================================================================
// OPERATIONS
// =============================================================================

// SendMessage submits a name/message pair.
func (c *Client) SendMessage(ctx context.Context, msg MessageRequest) (*MessageResponse, error) {
	var out MessageResponse
	if err := c.request(ctx, http.MethodPost, PathMessage, msg, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistory lists history items. limit is sent only when positive.
func (c *Client) GetHistory(ctx context.Context, limit int) (*HistoryResponse, error) {
	endpoint := PathHistory
	if limit > 0 {
		endpoint += "?limit=" + strconv.Itoa(limit)
	}

	var out HistoryResponse
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetHistoryByID fetches the history entry with the given id.
func (c *Client) GetHistoryByID(ctx context.Context, id string) (*HistoryResponse, error) {
	endpoint := PathHistory + "?id=" + url.QueryEscape(id)

	var out HistoryResponse
	if err := c.request(ctx, http.MethodGet, endpoint, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ClearHistory deletes all history on the backend.
func (c *Client) ClearHistory(ctx context.Context) (*Response, error) {
	var out Response
	if err := c.request(ctx, http.MethodDelete, PathHistory, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// HealthCheck calls the health endpoint.
func (c *Client) HealthCheck(ctx context.Context) (*Response, error) {
	var out Response
	if err := c.request(ctx, http.MethodGet, PathHealth, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// TestConnection reports whether the health endpoint answers with a 2xx JSON
// reply. It never returns an error.
func (c *Client) TestConnection(ctx context.Context) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("connection test panicked", "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	_, err := c.HealthCheck(ctx)
	return err == nil
}

// drainAndClose reads the remaining body so the connection can be reused.
func drainAndClose(r io.ReadCloser) {
	io.Copy(io.Discard, io.LimitReader(r, maxErrorBody))
	r.Close()
}
