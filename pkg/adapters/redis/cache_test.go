package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redcache "github.com/veltran/swoop/pkg/adapters/redis"
	"github.com/veltran/swoop/pkg/domain"
)

func newTestCache(t *testing.T, opts ...redcache.Option) (*redcache.Cache, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	return redcache.NewFromClient(client, opts...), mr
}

func samplePage(url string) *domain.PageRecord {
	return &domain.PageRecord{
		URL:         url,
		ResponseURL: url,
		Title:       "Cached",
		Blocks: []domain.Block{
			{Container: "#swoop", HTML: "<article>cached body</article>"},
		},
		Status:    200,
		FetchedAt: time.Now().Truncate(time.Second),
	}
}

func TestCache_RoundTrip(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))

	got, err := cache.Lookup(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "Cached", got.Title)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "<article>cached body</article>", got.Blocks[0].HTML)
	assert.Equal(t, 200, got.Status)
}

func TestCache_LookupMiss(t *testing.T) {
	cache, _ := newTestCache(t)

	_, err := cache.Lookup(context.Background(), "https://example.com/missing")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)
}

func TestCache_TTLExpires(t *testing.T) {
	cache, mr := newTestCache(t, redcache.WithTTL(time.Minute))
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))

	mr.FastForward(2 * time.Minute)

	_, err := cache.Lookup(ctx, "https://example.com/a")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)
}

func TestCache_RemoveAndClear(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))
	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/b")))

	require.NoError(t, cache.Remove(ctx, "https://example.com/a"))
	_, err := cache.Lookup(ctx, "https://example.com/a")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Lookup(ctx, "https://example.com/b")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)
}

func TestCache_CustomPrefixIsolation(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	first := redcache.NewFromClient(client, redcache.WithPrefix("site-a:"))
	second := redcache.NewFromClient(client, redcache.WithPrefix("site-b:"))
	ctx := context.Background()

	require.NoError(t, first.Store(ctx, samplePage("https://example.com/a")))
	require.NoError(t, second.Clear(ctx))

	_, err = first.Lookup(ctx, "https://example.com/a")
	assert.NoError(t, err, "clearing one prefix must not touch the other")
}
