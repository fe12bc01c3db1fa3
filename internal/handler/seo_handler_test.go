package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type postListerStub struct {
	posts []models.BlogPost
}

func (s *postListerStub) ListPublished(ctx context.Context) ([]models.BlogPost, error) {
	return s.posts, nil
}

type noopCacheStub struct{}

func (noopCacheStub) Get(ctx context.Context, key string, dest interface{}) error {
	return appErrors.ErrCacheMiss
}

func (noopCacheStub) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func TestSEOHandlerSitemap(t *testing.T) {
	gin.SetMode(gin.TestMode)
	published := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
	lister := &postListerStub{posts: []models.BlogPost{{
		Slug:        "season-reset-guide",
		Published:   true,
		PublishedAt: &published,
	}}}
	svc := service.NewSEOService(lister, noopCacheStub{}, "https://example.com", time.Hour, nil)
	handler := NewSEOHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/sitemap.xml", nil)
	c.Request = req

	handler.Sitemap(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/xml")
	assert.Contains(t, w.Body.String(), "https://example.com/blog/season-reset-guide")
	assert.Contains(t, w.Body.String(), "2026-02-10")
}

func TestSEOHandlerRobots(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := service.NewSEOService(&postListerStub{}, noopCacheStub{}, "https://example.com", time.Hour, nil)
	handler := NewSEOHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/robots.txt", nil)
	c.Request = req

	handler.Robots(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Disallow: /admin")
	assert.Contains(t, w.Body.String(), "Sitemap: https://example.com/sitemap.xml")
}
