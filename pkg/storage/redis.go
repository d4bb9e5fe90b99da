package storage

import (
	"context"
	stderrors "errors"
	"sort"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/uhrzeit/pkg/errors"
)

// Redis stores keys in a Redis database.
type Redis struct {
	client *redis.Client
}

// NewRedis connects to the server at url (redis://host:port/db) and
// verifies the connection.
func NewRedis(ctx context.Context, url string) (*Redis, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "connect to redis")
	}
	return &Redis{client: client}, nil
}

// Get implements Backend.
func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if stderrors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "read %s", key)
	}
	return data, true, nil
}

// Set implements Backend. Values do not expire.
func (r *Redis) Set(ctx context.Context, key string, data []byte) error {
	if err := r.client.Set(ctx, key, data, 0).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "write %s", key)
	}
	return nil
}

// Delete implements Backend.
func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return errors.Wrap(errors.ErrCodeStorageUnavailable, err, "delete %s", key)
	}
	return nil
}

// Keys implements Backend. It scans incrementally instead of using KEYS.
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, globEscape(prefix)+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageUnavailable, err, "list keys")
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}

var globReplacer = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// globEscape quotes the Redis glob metacharacters in s.
func globEscape(s string) string {
	return globReplacer.Replace(s)
}

// Ensure Redis implements Backend.
var _ Backend = (*Redis)(nil)
