package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veltran/swoop/pkg/adapters/memory"
	"github.com/veltran/swoop/pkg/domain"
)

func samplePage(url string) *domain.PageRecord {
	return &domain.PageRecord{
		URL:         url,
		ResponseURL: url,
		Title:       "Sample",
		Blocks: []domain.Block{
			{Container: "#swoop", HTML: "<p>body</p>"},
		},
		Status: 200,
	}
}

func TestCache_StoreAndLookup(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))

	got, err := cache.Lookup(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "Sample", got.Title)
	require.Len(t, got.Blocks, 1)
	assert.Equal(t, "<p>body</p>", got.Blocks[0].HTML)
}

func TestCache_LookupMiss(t *testing.T) {
	cache := memory.NewCache()

	_, err := cache.Lookup(context.Background(), "https://example.com/missing")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)
}

func TestCache_LastWriteWins(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	first := samplePage("https://example.com/a")
	second := samplePage("https://example.com/a")
	second.Title = "Updated"

	require.NoError(t, cache.Store(ctx, first))
	require.NoError(t, cache.Store(ctx, second))

	got, err := cache.Lookup(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "Updated", got.Title)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_LookupReturnsIsolatedCopy(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))

	got, err := cache.Lookup(ctx, "https://example.com/a")
	require.NoError(t, err)
	got.Blocks[0].HTML = "mutated"

	again, err := cache.Lookup(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, "<p>body</p>", again.Blocks[0].HTML)
}

func TestCache_RemoveAndClear(t *testing.T) {
	cache := memory.NewCache()
	ctx := context.Background()

	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/a")))
	require.NoError(t, cache.Store(ctx, samplePage("https://example.com/b")))

	require.NoError(t, cache.Remove(ctx, "https://example.com/a"))
	_, err := cache.Lookup(ctx, "https://example.com/a")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)

	require.NoError(t, cache.Clear(ctx))
	_, err = cache.Lookup(ctx, "https://example.com/b")
	assert.ErrorIs(t, err, domain.ErrPageNotCached)
	assert.Zero(t, cache.Len())

	// Removing an absent key is not an error.
	require.NoError(t, cache.Remove(ctx, "https://example.com/ghost"))
}
