// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// list.go provides a Valkey-backed cache of JSON response bodies for the
// public timeline listing endpoints. It caches HTTP responses at the
// boundary, keyed by request URI, so no entity state is ever held in
// process memory. Every post mutation clears the whole prefix.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// listKeyPrefix is the Valkey key prefix for cached list responses.
	listKeyPrefix = "timeline:list:"

	// DefaultListTTL is how long a list response stays cached.
	DefaultListTTL = time.Minute
)

// ListCache stores rendered JSON list responses in Valkey.
type ListCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewListCache creates a list cache backed by the given Valkey client.
func NewListCache(client *redis.Client, ttl time.Duration) *ListCache {
	if ttl == 0 {
		ttl = DefaultListTTL
	}
	return &ListCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss; a nil
// receiver always misses, so callers can run without Valkey.
func (lc *ListCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if lc == nil {
		return nil, false
	}
	val, err := lc.client.Get(ctx, listKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("list cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("list cache hit", "key", key)
	return val, true
}

// Set stores a response body under the key with the configured TTL.
func (lc *ListCache) Set(ctx context.Context, key string, body []byte) {
	if lc == nil {
		return
	}
	if err := lc.client.Set(ctx, listKeyPrefix+key, body, lc.ttl).Err(); err != nil {
		slog.Warn("list cache set error", "key", key, "error", err)
	}
}

// Invalidate removes every cached list response by scanning the prefix.
// Post mutations can affect any page of any filtered listing, so the
// whole prefix goes.
func (lc *ListCache) Invalidate(ctx context.Context) {
	if lc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := lc.client.Scan(ctx, cursor, listKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("list cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := lc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("list cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Debug("list cache cleared", "deleted", deleted)
	}
}
