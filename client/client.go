// Package client is a typed Go client for a hoard cache server. Values are
// (de)serialized by a pluggable codec.Codec[V]; an optional near-cache (see
// client/near) absorbs hot-key reads before they reach the network.
//
// The client uses the server's raw-body POST form, so codec output
// round-trips byte-for-byte regardless of encoding.
package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hoardcache/hoard/client/near"
	"github.com/hoardcache/hoard/codec"
)

// StatusError reports an unexpected server status.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("client: server returned %d: %s", e.Code, strings.TrimSpace(e.Body))
}

// Client is a typed view over one hoard server.
type Client[V any] struct {
	base    string
	hc      *http.Client
	codec   codec.Codec[V]
	near    near.Store
	nearTTL time.Duration
}

type Option[V any] func(*Client[V])

// WithHTTPClient replaces http.DefaultClient (timeouts, transports, proxies).
func WithHTTPClient[V any](hc *http.Client) Option[V] {
	return func(c *Client[V]) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// WithNear puts a local near-cache in front of the server. ttl bounds how
// stale a near hit may be; keep it short.
func WithNear[V any](s near.Store, ttl time.Duration) Option[V] {
	return func(c *Client[V]) {
		c.near = s
		c.nearTTL = ttl
	}
}

// New builds a client for the server at baseURL (scheme + host, no trailing
// path).
func New[V any](baseURL string, cd codec.Codec[V], opts ...Option[V]) (*Client[V], error) {
	if baseURL == "" {
		return nil, fmt.Errorf("client: base URL is required")
	}
	if cd == nil {
		return nil, fmt.Errorf("client: codec is required")
	}
	c := &Client[V]{
		base:  strings.TrimRight(baseURL, "/"),
		hc:    http.DefaultClient,
		codec: cd,
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// Get fetches key. Returns (zero, false, nil) when the server reports the
// key absent or expired.
func (c *Client[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	if key == "" {
		return zero, false, fmt.Errorf("client: empty key")
	}

	if c.near != nil {
		if b, ok := c.near.Get(key); ok {
			v, err := c.codec.Decode(b)
			if err == nil {
				return v, true, nil
			}
			// self-heal corrupt near entry
			c.near.Del(key)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.keyURL(key, 0), nil)
	if err != nil {
		return zero, false, err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return zero, false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		_, _ = io.Copy(io.Discard, resp.Body)
		return zero, false, nil
	case http.StatusOK:
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return zero, false, err
		}
		v, err := c.codec.Decode(b)
		if err != nil {
			return zero, false, err
		}
		if c.near != nil {
			c.near.Set(key, b, c.nearTTL)
		}
		return v, true, nil
	default:
		return zero, false, statusErr(resp)
	}
}

// Set stores value under key. ttl <= 0 means no expiry; sub-second TTLs
// round up to one second (the wire carries whole seconds).
func (c *Client[V]) Set(ctx context.Context, key string, value V, ttl time.Duration) error {
	if key == "" {
		return fmt.Errorf("client: empty key")
	}
	b, err := c.codec.Encode(value)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.keyURL(key, ttl), bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return statusErr(resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	if c.near != nil {
		c.near.Set(key, b, c.nearTTL)
	}
	return nil
}

// Delete removes key; deleting an absent key succeeds.
func (c *Client[V]) Delete(ctx context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("client: empty key")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.keyURL(key, 0), nil)
	if err != nil {
		return err
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		return statusErr(resp)
	}
	if c.near != nil {
		c.near.Del(key)
	}
	return nil
}

// Close releases the near-cache, if any. The HTTP client is caller-owned.
func (c *Client[V]) Close() error {
	if c.near != nil {
		return c.near.Close()
	}
	return nil
}

func (c *Client[V]) keyURL(key string, ttl time.Duration) string {
	u := c.base + "/" + url.PathEscape(key)
	if ttl > 0 {
		secs := int64((ttl + time.Second - 1) / time.Second)
		u += fmt.Sprintf("?ttl=%d", secs)
	}
	return u
}

func statusErr(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
	return &StatusError{Code: resp.StatusCode, Body: string(body)}
}
