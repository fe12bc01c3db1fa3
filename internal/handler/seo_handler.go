package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/service"
	"github.com/peakplay/coaching-api/pkg/response"
)

// SEOHandler serves the sitemap and robots files.
type SEOHandler struct {
	seo *service.SEOService
}

// NewSEOHandler constructs SEOHandler.
func NewSEOHandler(seo *service.SEOService) *SEOHandler {
	return &SEOHandler{seo: seo}
}

// Sitemap serves /sitemap.xml, rendered from published posts and cached.
func (h *SEOHandler) Sitemap(c *gin.Context) {
	doc, err := h.seo.Sitemap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", doc)
}

// Robots serves /robots.txt.
func (h *SEOHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, h.seo.Robots())
}
