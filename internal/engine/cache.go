// cache.go provides the Valkey-backed candidate-template cache. Template
// lists per page type are read on every storefront request but change
// only on admin writes, so they sit in Valkey under a short TTL. Writes
// flush every type at once; a stale window of at most the TTL can occur
// after a write.
package engine

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"shopwright/internal/models"
)

const (
	// listKeyPrefix namespaces candidate-list keys in Valkey.
	listKeyPrefix = "tmpl-list:"

	// DefaultListTTL is how long a candidate list stays cached.
	DefaultListTTL = 2 * time.Minute
)

// listCache caches published template lists per page type.
type listCache struct {
	client *redis.Client
	ttl    time.Duration
}

// newListCache creates a candidate-list cache. A nil client disables
// caching entirely; every lookup misses.
func newListCache(client *redis.Client, ttl time.Duration) *listCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &listCache{client: client, ttl: ttl}
}

// get retrieves the cached candidate list for a page type.
func (c *listCache) get(ctx context.Context, pt models.PageType) ([]models.Template, bool) {
	if c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, listKeyPrefix+string(pt)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("template list cache get error", "type", pt, "error", err)
		return nil, false
	}

	var templates []models.Template
	if err := json.Unmarshal(payload, &templates); err != nil {
		slog.Warn("template list cache decode error", "type", pt, "error", err)
		return nil, false
	}
	slog.Debug("template list cache hit", "type", pt, "count", len(templates))
	return templates, true
}

// put stores the candidate list for a page type. An empty list is cached
// too — "no templates" is the common case for most types.
func (c *listCache) put(ctx context.Context, pt models.PageType, templates []models.Template) {
	if c.client == nil {
		return
	}
	payload, err := json.Marshal(templates)
	if err != nil {
		slog.Warn("template list cache encode error", "type", pt, "error", err)
		return
	}
	if err := c.client.Set(ctx, listKeyPrefix+string(pt), payload, c.ttl).Err(); err != nil {
		slog.Warn("template list cache set error", "type", pt, "error", err)
	}
}

// flush removes every cached candidate list. Called on any template
// create, update, duplicate, or delete.
func (c *listCache) flush(ctx context.Context) {
	if c.client == nil {
		return
	}
	for _, pt := range models.PageTypes {
		if err := c.client.Del(ctx, listKeyPrefix+string(pt)).Err(); err != nil {
			slog.Warn("template list cache flush error", "type", pt, "error", err)
		}
	}
	slog.Debug("template list cache flushed")
}
