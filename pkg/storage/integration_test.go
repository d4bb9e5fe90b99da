//go:build integration

package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

// Run with: UHRZEIT_TEST_REDIS_URL=redis://localhost:6379/15 \
// UHRZEIT_TEST_MONGO_URI=mongodb://localhost:27017 go test -tags integration ./pkg/storage

func TestRedisIntegration(t *testing.T) {
	url := os.Getenv("UHRZEIT_TEST_REDIS_URL")
	if url == "" {
		t.Skip("UHRZEIT_TEST_REDIS_URL not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r, err := NewRedis(ctx, url)
	if err != nil {
		t.Fatalf("NewRedis: %v", err)
	}
	defer r.Close()
	testBackend(t, isolated(r))
}

func TestMongoIntegration(t *testing.T) {
	uri := os.Getenv("UHRZEIT_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("UHRZEIT_TEST_MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	m, err := NewMongo(ctx, uri, "uhrzeit_test", "kv_"+uuid.NewString()[:8])
	if err != nil {
		t.Fatalf("NewMongo: %v", err)
	}
	defer func() {
		_ = m.coll.Drop(context.Background())
		m.Close()
	}()
	testBackend(t, m)
}

// isolated prefixes every key with a random namespace so runs against a
// shared server don't collide.
func isolated(b Backend) Backend {
	return &prefixed{inner: b, ns: "test_" + uuid.NewString() + ":"}
}

type prefixed struct {
	inner Backend
	ns    string
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Get(ctx, p.ns+key)
}

func (p *prefixed) Set(ctx context.Context, key string, data []byte) error {
	return p.inner.Set(ctx, p.ns+key, data)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.ns+key)
}

func (p *prefixed) Keys(ctx context.Context, prefix string) ([]string, error) {
	keys, err := p.inner.Keys(ctx, p.ns+prefix)
	for i, k := range keys {
		keys[i] = k[len(p.ns):]
	}
	return keys, err
}

func (p *prefixed) Close() error { return nil }
