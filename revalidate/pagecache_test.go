package revalidate

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPageCache(t *testing.T, ttl time.Duration) (*PageCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewPageCache(rdb, ttl), mr
}

func TestPageCache_SetRecordsTags(t *testing.T) {
	p, mr := newPageCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "/catalog/courses/bravo", []byte(`{"index":2}`), "courses", "course:bravo"))

	body, ok := p.Get(ctx, "/catalog/courses/bravo")
	require.True(t, ok)
	assert.JSONEq(t, `{"index":2}`, string(body))

	for _, tag := range []string{"courses", "course:bravo"} {
		member, err := mr.IsMember(tagKey(tag), "/catalog/courses/bravo")
		require.NoError(t, err)
		assert.True(t, member, tag)
		assert.Equal(t, time.Minute, mr.TTL(tagKey(tag)), tag)
	}
	assert.Equal(t, time.Minute, mr.TTL(pageKey("/catalog/courses/bravo")))

	mr.FastForward(2 * time.Minute)
	_, ok = p.Get(ctx, "/catalog/courses/bravo")
	assert.False(t, ok)
}

func TestPageCache_RevalidateByTag(t *testing.T) {
	p, mr := newPageCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "/catalog/courses/alpha", []byte("a"), "courses", "course:alpha"))
	require.NoError(t, p.Set(ctx, "/catalog/courses/bravo", []byte("b"), "courses", "course:bravo"))
	require.NoError(t, p.Set(ctx, "/catalog/sections/plumbing", []byte("s"), "sections", "section:plumbing"))

	require.NoError(t, p.Revalidate(ctx, Target{Tags: []string{"course:alpha"}}))

	_, ok := p.Get(ctx, "/catalog/courses/alpha")
	assert.False(t, ok)
	_, ok = p.Get(ctx, "/catalog/courses/bravo")
	assert.True(t, ok)
	assert.False(t, mr.Exists(tagKey("course:alpha")))

	// a scope tag drops every sibling page
	require.NoError(t, p.Revalidate(ctx, Target{Tags: []string{"courses"}}))

	_, ok = p.Get(ctx, "/catalog/courses/bravo")
	assert.False(t, ok)
	_, ok = p.Get(ctx, "/catalog/sections/plumbing")
	assert.True(t, ok)
}

func TestPageCache_RevalidateByPath(t *testing.T) {
	p, _ := newPageCache(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, p.Set(ctx, "/catalog/sections", []byte("list")))
	require.NoError(t, p.Set(ctx, "/catalog/sections/plumbing", []byte("s"), "section:plumbing"))

	require.NoError(t, p.Revalidate(ctx, Target{Paths: []string{"/catalog/sections"}}))

	_, ok := p.Get(ctx, "/catalog/sections")
	assert.False(t, ok)
	_, ok = p.Get(ctx, "/catalog/sections/plumbing")
	assert.True(t, ok)

	assert.NoError(t, p.Revalidate(ctx, Target{}))
	assert.NoError(t, p.Revalidate(ctx, Target{Tags: []string{"unknown"}}))
}

func TestPageCache_RedisDown(t *testing.T) {
	p, mr := newPageCache(t, time.Minute)
	ctx := context.Background()
	require.NoError(t, p.Set(ctx, "/x", []byte("x"), "sections"))

	mr.Close()

	_, ok := p.Get(ctx, "/x")
	assert.False(t, ok)
	assert.Error(t, p.Revalidate(ctx, Target{Tags: []string{"sections"}}))
}
