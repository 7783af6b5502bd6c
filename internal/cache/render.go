// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// render.go provides the Valkey-backed rendered-output cache. Rendered
// template HTML is stored keyed by template id plus a page key, so
// repeated hits on structural pages skip the widget-tree walk entirely.
// The engine only consults this cache for page types whose output is a
// pure function of the template and the viewed entity.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// renderKeyPrefix namespaces rendered-output keys in Valkey.
	renderKeyPrefix = "render:"

	// DefaultRenderTTL is how long rendered output stays cached.
	DefaultRenderTTL = 5 * time.Minute
)

// RenderCache manages rendered template HTML in Valkey.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRenderCache creates a rendered-output cache backed by the given
// Valkey client.
func NewRenderCache(client *redis.Client, ttl time.Duration) *RenderCache {
	if ttl == 0 {
		ttl = DefaultRenderTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

// Key builds the cache key for one template on one page.
func Key(templateID uuid.UUID, pageKey string) string {
	return fmt.Sprintf("%s:%s", templateID, pageKey)
}

// Get retrieves cached HTML. Returns false on miss.
func (rc *RenderCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := rc.client.Get(ctx, renderKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("render cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("render cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML with the configured TTL.
func (rc *RenderCache) Set(ctx context.Context, key string, html []byte) {
	if err := rc.client.Set(ctx, renderKeyPrefix+key, html, rc.ttl).Err(); err != nil {
		slog.Warn("render cache set error", "key", key, "error", err)
	}
}

// InvalidateTemplate removes every cached page rendered from one
// template. Called after template update or delete.
func (rc *RenderCache) InvalidateTemplate(ctx context.Context, templateID uuid.UUID) {
	rc.scanDelete(ctx, renderKeyPrefix+templateID.String()+":*")
}

// InvalidateAll removes all cached rendered output. Used when the
// builder toggle or template set changes wholesale.
func (rc *RenderCache) InvalidateAll(ctx context.Context) {
	rc.scanDelete(ctx, renderKeyPrefix+"*")
}

// scanDelete removes keys matching a pattern using cursor iteration.
func (rc *RenderCache) scanDelete(ctx context.Context, pattern string) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			slog.Warn("render cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("render cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("render cache cleared", "pattern", pattern, "deleted", deleted)
	}
}
