package crawl

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisDedupe backs a Frontier's seen-set with Redis instead of an
// in-process map, so multiple crawl worker processes can share one
// dedupe set (spec §4.7's "the frontier MUST be safe for concurrent
// access" generalized across processes, not just goroutines). Enrichment
// from ncecere-raito, which wires github.com/redis/go-redis/v9 for
// exactly this kind of shared-state coordination.
type RedisDedupe struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisDedupe wraps an existing redis client. prefix namespaces keys
// per run so concurrent runs against different seeds don't collide.
func NewRedisDedupe(client *redis.Client, runID string, ttl time.Duration) *RedisDedupe {
	return &RedisDedupe{client: client, prefix: "seoaudit:frontier:" + runID + ":", ttl: ttl}
}

// MarkIfNew atomically records key as seen and reports whether this call
// was the one that added it (SETNX semantics), mirroring the in-memory
// Frontier.Push dedupe check but shared across processes.
func (d *RedisDedupe) MarkIfNew(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+key, 1, d.ttl).Result()
	if err != nil {
		return false, err
	}
	return ok, nil
}
