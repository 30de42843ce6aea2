// Package redis caches rendered statement digests and backs commit
// idempotency. Reports are derived data: a cache miss only costs a
// re-aggregation, so every key carries a TTL and invalidation is best
// effort.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iho/gobooks/internal/report"
)

// DigestCache stores serialized statements keyed by statement kind and
// scope.
type DigestCache struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewDigestCache creates a DigestCache with the given default TTL.
func NewDigestCache(client *redis.Client, ttl time.Duration) *DigestCache {
	return &DigestCache{
		client: client,
		prefix: "digest:",
		ttl:    ttl,
	}
}

// Key derives the cache key for one statement scope. Kind names the
// statement (balance_sheet, income_statement, cash_flow, ratios).
func (c *DigestCache) Key(kind string, meta report.StatementMeta) string {
	from := "-"
	if meta.FromDate != nil {
		from = meta.FromDate.UTC().Format(time.RFC3339Nano)
	}
	return fmt.Sprintf("%s:%s:%s:%s",
		kind, from, meta.ToDate.UTC().Format(time.RFC3339Nano), meta.EntityUnitID)
}

// Get returns the cached digest payload; ok is false on a miss.
func (c *DigestCache) Get(ctx context.Context, key string) (payload []byte, ok bool, err error) {
	payload, err = c.client.Get(ctx, c.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

// Set stores a digest payload under the default TTL.
func (c *DigestCache) Set(ctx context.Context, key string, payload []byte) error {
	return c.client.Set(ctx, c.prefix+key, payload, c.ttl).Err()
}

// Invalidate drops cached digests. Called after a batch commit since any
// cached statement may now be stale.
func (c *DigestCache) Invalidate(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.prefix + k
	}
	return c.client.Del(ctx, full...).Err()
}

// Flush removes every cached digest.
func (c *DigestCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, c.prefix+"*", 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
