package service

import (
	"context"
	"encoding/xml"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

const sitemapCacheKey = "seo:sitemap"

type publishedPostLister interface {
	ListPublished(ctx context.Context) ([]models.BlogPost, error)
}

type seoCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

type sitemapURL struct {
	XMLName xml.Name `xml:"url"`
	Loc     string   `xml:"loc"`
	LastMod string   `xml:"lastmod,omitempty"`
}

type sitemapDoc struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// SEOService renders the sitemap (cached for the configured TTL) and the
// robots policy.
type SEOService struct {
	posts    publishedPostLister
	cache    seoCache
	siteURL  string
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewSEOService constructs an SEOService. siteURL is the public origin the
// sitemap entries are rooted at.
func NewSEOService(posts publishedPostLister, cache seoCache, siteURL string, cacheTTL time.Duration, logger *zap.Logger) *SEOService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = time.Hour
	}
	return &SEOService{
		posts:    posts,
		cache:    cache,
		siteURL:  strings.TrimRight(siteURL, "/"),
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// Sitemap returns the XML sitemap, serving a cached copy when fresh.
func (s *SEOService) Sitemap(ctx context.Context) ([]byte, error) {
	if s.cache != nil {
		var cached string
		err := s.cache.Get(ctx, sitemapCacheKey, &cached)
		if err == nil {
			return []byte(cached), nil
		}
		if !errors.Is(err, appErrors.ErrCacheMiss) {
			s.logger.Warn("sitemap cache lookup failed", zap.Error(err))
		}
	}

	posts, err := s.posts.ListPublished(ctx)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load published posts")
	}

	doc := sitemapDoc{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, page := range []string{"", "/blog", "/coaching", "/contact"} {
		doc.URLs = append(doc.URLs, sitemapURL{Loc: s.siteURL + page})
	}
	for _, post := range posts {
		entry := sitemapURL{Loc: s.siteURL + "/blog/" + post.Slug}
		if post.PublishedAt != nil {
			entry.LastMod = post.PublishedAt.UTC().Format("2006-01-02")
		}
		doc.URLs = append(doc.URLs, entry)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, appErrors.Internal(err, "failed to render sitemap")
	}
	out := append([]byte(xml.Header), body...)

	if s.cache != nil {
		if err := s.cache.Set(ctx, sitemapCacheKey, string(out), s.cacheTTL); err != nil {
			s.logger.Warn("failed to cache sitemap", zap.Error(err))
		}
	}
	return out, nil
}

// Robots returns the robots policy keeping crawlers out of the back office
// and transactional surfaces.
func (s *SEOService) Robots() string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Disallow: /admin\n")
	b.WriteString("Disallow: /api\n")
	b.WriteString("Disallow: /checkout\n")
	b.WriteString("\nSitemap: " + s.siteURL + "/sitemap.xml\n")
	return b.String()
}
