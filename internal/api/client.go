package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"crickmart/internal/storage"

	"go.uber.org/zap"
)

// Client is the shared request pipeline for all backend calls. It attaches
// the persisted session token as a bearer credential to every request and,
// on any 401 response, clears the persisted session and notifies subscribers
// so the application root can translate that into navigation. That policy is
// cross-cutting, not per-call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      storage.Store
	logger     *zap.Logger

	mu             sync.Mutex
	onUnauthorized []func()
}

// NewClient creates a client rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, store storage.Store, logger *zap.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		logger:     logger,
	}
}

// OnUnauthorized registers a callback fired whenever any request comes back
// with a 401. Callbacks run synchronously on the requesting goroutine.
func (c *Client) OnUnauthorized(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onUnauthorized = append(c.onUnauthorized, fn)
}

// do performs one request against the backend. body and out may be nil.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	// Attach the session token when one is stored.
	if token, ok := c.store.Get(storage.KeyToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		c.handleUnauthorized(method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// handleUnauthorized clears the persisted session and notifies subscribers.
func (c *Client) handleUnauthorized(method, path string) {
	c.logger.Warn("Unauthorized response, clearing session",
		zap.String("method", method),
		zap.String("path", path),
	)

	if err := c.store.Remove(storage.KeyToken); err != nil {
		c.logger.Error("Failed to clear persisted token", zap.Error(err))
	}
	if err := c.store.Remove(storage.KeyUser); err != nil {
		c.logger.Error("Failed to clear persisted user", zap.Error(err))
	}

	c.mu.Lock()
	subscribers := make([]func(), len(c.onUnauthorized))
	copy(subscribers, c.onUnauthorized)
	c.mu.Unlock()

	for _, fn := range subscribers {
		fn()
	}
}

// decodeError turns a non-2xx response into a RemoteError, keeping the
// backend's message and field errors when the body is structured.
func (c *Client) decodeError(resp *http.Response) error {
	remoteErr := &RemoteError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return remoteErr
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		remoteErr.Message = envelope.Error.Message
		remoteErr.Fields = envelope.Error.Details.ValidationErrors
	}

	return remoteErr
}
