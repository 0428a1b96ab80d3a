package revalidate

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// PageCache stores rendered public responses in redis, grouped by tag.
// A nil *PageCache is a cache that always misses.
type PageCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewPageCache(rdb *redis.Client, ttl time.Duration) *PageCache {
	return &PageCache{rdb: rdb, ttl: ttl}
}

func pageKey(path string) string { return "page:" + path }
func tagKey(tag string) string { return "tag:" + tag }

// Get returns the cached body for path.
func (p *PageCache) Get(ctx context.Context, path string) ([]byte, bool) {
	if p == nil {
		return nil, false
	}
	body, err := p.rdb.Get(ctx, pageKey(path)).Bytes()
	if err != nil {
		return nil, false
	}
	return body, true
}

// Set stores body for path and records path under every tag.
func (p *PageCache) Set(ctx context.Context, path string, body []byte, tags ...string) error {
	if p == nil {
		return nil
	}
	_, err := p.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, pageKey(path), body, p.ttl)
		for _, tag := range tags {
			pipe.SAdd(ctx, tagKey(tag), path)
			pipe.Expire(ctx, tagKey(tag), p.ttl)
		}
		return nil
	})
	return err
}

// Revalidate drops every page recorded under the target's tags, and the
// pages stored under the target's paths.
func (p *PageCache) Revalidate(ctx context.Context, target Target) error {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(target.Paths)+len(target.Tags))
	for _, tag := range target.Tags {
		paths, err := p.rdb.SMembers(ctx, tagKey(tag)).Result()
		if err != nil {
			return err
		}
		for _, path := range paths {
			keys = append(keys, pageKey(path))
		}
		keys = append(keys, tagKey(tag))
	}
	for _, path := range target.Paths {
		keys = append(keys, pageKey(path))
	}
	if len(keys) == 0 {
		return nil
	}
	return p.rdb.Del(ctx, keys...).Err()
}
