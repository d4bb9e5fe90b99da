package storage

import (
	"context"
	"sync"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// Capped limits a backend to a total number of stored bytes, keys included.
// Writes that would exceed the budget fail with QUOTA_EXCEEDED and leave
// the previous value in place.
type Capped struct {
	inner    Backend
	maxBytes int

	mu    sync.Mutex
	sizes map[string]int
	used  int
}

// NewCapped wraps inner with a byte budget. Sizes of values already stored
// in inner are not counted.
func NewCapped(inner Backend, maxBytes int) *Capped {
	return &Capped{inner: inner, maxBytes: maxBytes, sizes: make(map[string]int)}
}

// Get implements Backend.
func (c *Capped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return c.inner.Get(ctx, key)
}

// Set implements Backend.
func (c *Capped) Set(ctx context.Context, key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	size := len(key) + len(data)
	used := c.used - c.sizes[key] + size
	if used > c.maxBytes {
		return errors.New(errors.ErrCodeQuotaExceeded,
			"storing %s needs %d bytes, %d of %d available", key, size, c.maxBytes-c.used+c.sizes[key], c.maxBytes)
	}
	if err := c.inner.Set(ctx, key, data); err != nil {
		return err
	}
	c.used = used
	c.sizes[key] = size
	return nil
}

// Delete implements Backend.
func (c *Capped) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.inner.Delete(ctx, key); err != nil {
		return err
	}
	c.used -= c.sizes[key]
	delete(c.sizes, key)
	return nil
}

// Keys implements Backend.
func (c *Capped) Keys(ctx context.Context, prefix string) ([]string, error) {
	return c.inner.Keys(ctx, prefix)
}

// Used returns the number of bytes counted against the budget.
func (c *Capped) Used() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.used
}

// Close closes the wrapped backend.
func (c *Capped) Close() error {
	return c.inner.Close()
}

// Ensure Capped implements Backend.
var _ Backend = (*Capped)(nil)
