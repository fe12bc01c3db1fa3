package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	"github.com/peakplay/coaching-api/internal/service"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
	"github.com/peakplay/coaching-api/pkg/response"
)

// BlogHandler exposes public and back office blog endpoints.
type BlogHandler struct {
	blog *service.BlogService
}

// NewBlogHandler constructs BlogHandler.
func NewBlogHandler(blog *service.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// ListPublished godoc
// @Summary List published blog posts
// @Tags Blog
// @Produce json
// @Param tag query string false "Filter by tag"
// @Param search query string false "Search title and body"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /blog [get]
func (h *BlogHandler) ListPublished(c *gin.Context) {
	filter := blogFilterFromQuery(c)
	published := true
	filter.Published = &published

	posts, pagination, err := h.blog.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, pagination)
}

// GetBySlug godoc
// @Summary Get a published blog post by slug
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /blog/{slug} [get]
func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.blog.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// Create godoc
// @Summary Create a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param payload body dto.CreateBlogPostRequest true "Post payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/blog [post]
func (h *BlogHandler) Create(c *gin.Context) {
	var req dto.CreateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid blog post payload"))
		return
	}

	post, err := h.blog.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, post)
}

// List godoc
// @Summary List blog posts, drafts included
// @Tags Blog
// @Produce json
// @Param published query bool false "Filter by published state"
// @Param tag query string false "Filter by tag"
// @Param search query string false "Search title and body"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/blog [get]
func (h *BlogHandler) List(c *gin.Context) {
	filter := blogFilterFromQuery(c)
	if raw := c.Query("published"); raw != "" {
		if v, err := strconv.ParseBool(raw); err == nil {
			filter.Published = &v
		}
	}

	posts, pagination, err := h.blog.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posts, pagination)
}

// Get godoc
// @Summary Get a blog post by id
// @Tags Blog
// @Produce json
// @Param id path string true "Post id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/blog/{id} [get]
func (h *BlogHandler) Get(c *gin.Context) {
	post, err := h.blog.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// Update godoc
// @Summary Update a blog post
// @Tags Blog
// @Accept json
// @Produce json
// @Param id path string true "Post id"
// @Param payload body dto.UpdateBlogPostRequest true "Update payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/blog/{id} [patch]
func (h *BlogHandler) Update(c *gin.Context) {
	var req dto.UpdateBlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid blog post payload"))
		return
	}

	post, err := h.blog.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, post)
}

// Delete godoc
// @Summary Delete a blog post
// @Tags Blog
// @Param id path string true "Post id"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /admin/blog/{id} [delete]
func (h *BlogHandler) Delete(c *gin.Context) {
	if err := h.blog.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func blogFilterFromQuery(c *gin.Context) models.BlogFilter {
	var filter models.BlogFilter
	filter.Tag = strings.TrimSpace(c.Query("tag"))
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}
