package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type mockPublishedLister struct {
	posts []models.BlogPost
	calls int
}

func (m *mockPublishedLister) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	m.calls++
	return m.posts, nil
}

type mockSEOCache struct {
	values map[string]interface{}
	ttls   map[string]time.Duration
}

func newMockSEOCache() *mockSEOCache {
	return &mockSEOCache{values: map[string]interface{}{}, ttls: map[string]time.Duration{}}
}

func (m *mockSEOCache) Get(ctx context.Context, key string, dest interface{}) error {
	value, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	if s, ok := dest.(*string); ok {
		*s = value.(string)
	}
	return nil
}

func (m *mockSEOCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.values[key] = value
	m.ttls[key] = ttl
	return nil
}

func TestSEOServiceSitemapIncludesPublishedPosts(t *testing.T) {
	publishedAt := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	lister := &mockPublishedLister{posts: []models.BlogPost{
		{Slug: "season-reset-guide", Published: true, PublishedAt: &publishedAt},
	}}
	svc := NewSEOService(lister, newMockSEOCache(), "https://peakplay.gg/", time.Hour, nil)

	out, err := svc.Sitemap(context.Background())
	require.NoError(t, err)

	body := string(out)
	assert.Contains(t, body, "<loc>https://peakplay.gg/blog/season-reset-guide</loc>")
	assert.Contains(t, body, "<lastmod>2026-02-14</lastmod>")
	assert.Contains(t, body, "<loc>https://peakplay.gg/blog</loc>")
	assert.Contains(t, body, `xmlns="http://www.sitemaps.org/schemas/sitemap/0.9"`)
}

func TestSEOServiceSitemapServedFromCache(t *testing.T) {
	lister := &mockPublishedLister{}
	cache := newMockSEOCache()
	svc := NewSEOService(lister, cache, "https://peakplay.gg", time.Hour, nil)

	first, err := svc.Sitemap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls)
	assert.Equal(t, time.Hour, cache.ttls[sitemapCacheKey])

	second, err := svc.Sitemap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, lister.calls, "second render must come from cache")
	assert.Equal(t, string(first), string(second))
}

func TestSEOServiceRobots(t *testing.T) {
	svc := NewSEOService(&mockPublishedLister{}, nil, "https://peakplay.gg", time.Hour, nil)

	robots := svc.Robots()
	assert.Contains(t, robots, "Disallow: /admin")
	assert.Contains(t, robots, "Disallow: /api")
	assert.Contains(t, robots, "Disallow: /checkout")
	assert.Contains(t, robots, "Sitemap: https://peakplay.gg/sitemap.xml")
}
