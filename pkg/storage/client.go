package storage

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/uhrzeit/pkg/errors"
	"github.com/matzehuels/uhrzeit/pkg/observability"
)

// DefaultPrefix namespaces every key written by a Client.
const DefaultPrefix = "uhrzeit_app_"

// Client stores JSON values in a Backend under prefixed keys. Its methods
// never return storage errors: failures are logged and reported to the
// storage hooks, reads then behave as if the key were missing and writes
// are discarded.
type Client struct {
	backend Backend
	prefix  string
	logger  *log.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithPrefix replaces DefaultPrefix.
func WithPrefix(p string) ClientOption { return func(c *Client) { c.prefix = p } }

// WithLogger sets the logger for swallowed failures.
func WithLogger(l *log.Logger) ClientOption { return func(c *Client) { c.logger = l } }

// NewClient creates a client on backend.
func NewClient(backend Backend, opts ...ClientOption) *Client {
	c := &Client{backend: backend, prefix: DefaultPrefix, logger: log.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scoped returns a client whose keys live under an additional prefix. It
// shares the backend with c.
func (c *Client) Scoped(scope string) *Client {
	return &Client{backend: c.backend, prefix: c.prefix + scope, logger: c.logger}
}

// Prefix returns the full key prefix of c.
func (c *Client) Prefix() string { return c.prefix }

// GetItem decodes the value stored under key into dst and reports whether
// it succeeded. Missing, unreadable and malformed values all return false.
func (c *Client) GetItem(ctx context.Context, key string, dst any) bool {
	if !c.validKey("get", key) {
		return false
	}
	full := c.prefix + key
	data, ok, err := c.backend.Get(ctx, full)
	if err != nil {
		c.fail(ctx, "get", full, err)
		return false
	}
	observability.Storage().OnRead(ctx, full, ok)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		c.fail(ctx, "decode", full, err)
		return false
	}
	return true
}

// SetItem stores v as JSON under key and reports whether it was persisted.
func (c *Client) SetItem(ctx context.Context, key string, v any) bool {
	if !c.validKey("set", key) {
		return false
	}
	full := c.prefix + key
	data, err := json.Marshal(v)
	if err != nil {
		c.fail(ctx, "encode", full, err)
		return false
	}
	if err := c.backend.Set(ctx, full, data); err != nil {
		c.fail(ctx, "set", full, err)
		return false
	}
	observability.Storage().OnWrite(ctx, full, len(data))
	return true
}

// RemoveItem deletes key.
func (c *Client) RemoveItem(ctx context.Context, key string) {
	if !c.validKey("remove", key) {
		return
	}
	full := c.prefix + key
	if err := c.backend.Delete(ctx, full); err != nil {
		c.fail(ctx, "remove", full, err)
	}
}

// Clear deletes every key under the client's prefix, including those of
// scoped clients derived from it.
func (c *Client) Clear(ctx context.Context) {
	keys, err := c.backend.Keys(ctx, c.prefix)
	if err != nil {
		c.fail(ctx, "clear", c.prefix, err)
		return
	}
	for _, k := range keys {
		if err := c.backend.Delete(ctx, k); err != nil {
			c.fail(ctx, "clear", k, err)
		}
	}
}

// Keys lists the stored keys under the client's prefix, without it.
func (c *Client) Keys(ctx context.Context) []string {
	keys, err := c.backend.Keys(ctx, c.prefix)
	if err != nil {
		c.fail(ctx, "keys", c.prefix, err)
		return nil
	}
	for i, k := range keys {
		keys[i] = k[len(c.prefix):]
	}
	return keys
}

func (c *Client) validKey(op, key string) bool {
	if err := errors.ValidateStorageKey(key); err != nil {
		c.logger.Error("invalid storage key", "op", op, "key", key, "error", err)
		return false
	}
	return true
}

func (c *Client) fail(ctx context.Context, op, key string, err error) {
	c.logger.Warn("storage operation failed", "op", op, "key", key, "error", err)
	observability.Storage().OnError(ctx, op, key, err)
}
