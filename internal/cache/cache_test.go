package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Menova10/menova-empower-journey/internal/domain"
)

var sample = []domain.ContentItem{{
	ID:       "newsapi-1",
	Title:    "Sleep and menopause",
	URL:      "https://n.com/1",
	Category: []string{"Sleep"},
	Type:     domain.TypeArticle,
}}

func newRedisCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCache(client), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newRedisCache(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }
	ctx := context.Background()

	miss, err := c.Get(ctx, domain.SourceNewsAPI)
	require.NoError(t, err)
	assert.Nil(t, miss)

	require.NoError(t, c.Set(ctx, domain.SourceNewsAPI, sample))

	got, err := c.Get(ctx, domain.SourceNewsAPI)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, domain.SourceNewsAPI, got.Source)
	assert.Equal(t, fixed, got.FetchedAt)
	assert.Equal(t, sample, got.Items)

	assert.True(t, mr.Exists("content:source:newsapi"))
	assert.Zero(t, mr.TTL("content:source:newsapi"), "entries must not expire")
}

func TestRedisCacheCorruptEntry(t *testing.T) {
	c, mr := newRedisCache(t)
	require.NoError(t, mr.Set("content:source:youtube", "{not json"))

	_, err := c.Get(context.Background(), domain.SourceYouTube)
	assert.Error(t, err)
}

func TestRedisCacheClear(t *testing.T) {
	c, mr := newRedisCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, domain.SourceNewsAPI, sample))
	require.NoError(t, c.Set(ctx, domain.SourceYouTube, sample))
	require.NoError(t, mr.Set("other", "x"))

	require.NoError(t, c.Clear(ctx))

	assert.False(t, mr.Exists("content:source:newsapi"))
	assert.False(t, mr.Exists("content:source:youtube"))
	assert.True(t, mr.Exists("other"))
	assert.NoError(t, c.Ping(ctx))
}

func TestRedisCacheUnavailable(t *testing.T) {
	c, mr := newRedisCache(t)
	mr.Close()

	_, err := c.Get(context.Background(), domain.SourceNewsAPI)
	assert.Error(t, err)
	assert.Error(t, c.Set(context.Background(), domain.SourceNewsAPI, sample))
}

func TestMemoryCache(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	miss, err := m.Get(ctx, domain.SourceOpenAI)
	require.NoError(t, err)
	assert.Nil(t, miss)

	items := append([]domain.ContentItem(nil), sample...)
	require.NoError(t, m.Set(ctx, domain.SourceOpenAI, items))
	items[0] = domain.ContentItem{ID: "mutated"}

	got, err := m.Get(ctx, domain.SourceOpenAI)
	require.NoError(t, err)
	assert.Equal(t, "newsapi-1", got.Items[0].ID)
	assert.False(t, got.FetchedAt.IsZero())

	require.NoError(t, m.Clear(ctx))
	got, err = m.Get(ctx, domain.SourceOpenAI)
	require.NoError(t, err)
	assert.Nil(t, got)
}

var (
	_ SourceCache = (*Cache)(nil)
	_ SourceCache = (*Memory)(nil)
)
