// Package client is the query layer the dashboards are built on: one call per API endpoint,
// a bearer token attached to every request, and a short-lived cache of GET responses.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"fnp-marketplace/logger"
)

// DefaultCacheTTL is how long a GET response is reused
const DefaultCacheTTL = 5 * time.Second

// Client talks to the marketplace REST API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cacheTTL   time.Duration
	cache      *responseCache

	mu    sync.RWMutex
	token string

	// cacheMu orders cache writes against invalidation. generation is bumped on every
	// invalidation so a GET that was in flight across a mutation does not store its stale body.
	cacheMu    sync.Mutex
	generation uint64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithCacheTTL sets how long GET responses are reused. Zero or less disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Client) { c.cacheTTL = ttl }
}

// WithToken starts the client with a bearer token
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New creates a Client for the API at baseURL
func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		cacheTTL:   DefaultCacheTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.cacheTTL > 0 {
		cache, err := newResponseCache(c.cacheTTL)
		if err != nil {
			return nil, err
		}
		c.cache = cache
	}
	return c, nil
}

// Close releases the response cache
func (c *Client) Close() error {
	if c.cache == nil {
		return nil
	}
	return c.cache.close()
}

// SetToken replaces the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
	c.invalidate()
}

// Token returns the current bearer token
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) invalidate() {
	if c.cache == nil {
		return
	}
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	c.generation++
	if err := c.cache.clear(); err != nil {
		logger.Log.Warnf("⚠️ client: failed to clear response cache: %v", err)
	}
}

func (c *Client) cacheGeneration() uint64 {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	return c.generation
}

// store caches body unless the cache was invalidated since generation was read
func (c *Client) store(generation uint64, key, target string, body []byte) {
	c.cacheMu.Lock()
	defer c.cacheMu.Unlock()
	if c.generation != generation {
		return
	}
	if err := c.cache.set(key, body); err != nil {
		logger.Log.Warnf("⚠️ client: failed to cache %s: %v", target, err)
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends one request and returns the body of a 2xx answer
func (c *Client) do(ctx context.Context, method, target string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrNetwork, method, target, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s %s: %v", ErrNetwork, method, target, err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, newAPIError(resp.StatusCode, data)
	}
	return data, nil
}

// get serves from the cache when it can. Entries are keyed by token so users never share them.
func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	target := c.endpoint(path, query)
	key := c.Token() + "\x00" + target
	var generation uint64
	if c.cache != nil {
		generation = c.cacheGeneration()
		if body, ok := c.cache.get(key); ok {
			return body, nil
		}
	}

	body, err := c.do(ctx, http.MethodGet, target, nil, "")
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.store(generation, key, target, body)
	}
	return body, nil
}

// send performs a mutation and drops every cached response
func (c *Client) send(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	defer c.invalidate()
	return c.do(ctx, method, c.endpoint(path, nil), body, contentType)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in any) ([]byte, error) {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}
	return c.send(ctx, method, path, body, "application/json")
}

func decode[T any](data []byte) (*T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &out, nil
}
