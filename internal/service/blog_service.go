package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type blogRepository interface {
	Create(ctx context.Context, post *models.BlogPost) error
	FindByID(ctx context.Context, id string) (*models.BlogPost, error)
	FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error)
	SlugExists(ctx context.Context, slug, excludeID string) (bool, error)
	List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, int, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id string) error
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// BlogService manages site articles. Slugs are derived from titles and kept
// unique with a numeric suffix.
type BlogService struct {
	repo      blogRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewBlogService constructs a BlogService.
func NewBlogService(repo blogRepository, validate *validator.Validate, logger *zap.Logger) *BlogService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BlogService{repo: repo, validator: validate, logger: logger}
}

// Create stores a new post, deriving the slug from the title when omitted.
func (s *BlogService) Create(ctx context.Context, req dto.CreateBlogPostRequest) (*models.BlogPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blog post payload")
	}

	base := ""
	if req.Slug != nil {
		base = *req.Slug
	}
	slug, err := s.uniqueSlug(ctx, base, req.Title, "")
	if err != nil {
		return nil, err
	}

	post := &models.BlogPost{
		ID:        uuid.NewString(),
		Title:     req.Title,
		Slug:      slug,
		Excerpt:   req.Excerpt,
		Content:   req.Content,
		Tags:      req.Tags,
		Published: req.Published,
	}
	if req.Published {
		now := time.Now().UTC()
		post.PublishedAt = &now
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return nil, appErrors.Internal(err, "failed to create blog post")
	}
	return post, nil
}

// Get fetches a post by id.
func (s *BlogService) Get(ctx context.Context, id string) (*models.BlogPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Internal(err, "failed to load blog post")
	}
	return post, nil
}

// GetPublishedBySlug is the public article lookup; drafts stay hidden.
func (s *BlogService) GetPublishedBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	post, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Internal(err, "failed to load blog post")
	}
	if !post.Published {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
	}
	return post, nil
}

// List returns posts matching the filter with pagination metadata.
func (s *BlogService) List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, *models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Internal(err, "failed to list blog posts")
	}
	return posts, models.NewPagination(filter.Page, filter.PageSize, total), nil
}

// Update applies an explicit partial update. Publishing for the first time
// stamps PublishedAt.
func (s *BlogService) Update(ctx context.Context, id string, req dto.UpdateBlogPostRequest) (*models.BlogPost, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid blog post payload")
	}

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return nil, appErrors.Internal(err, "failed to load blog post")
	}

	if req.Title != nil {
		post.Title = *req.Title
	}
	if req.Slug != nil {
		slug, err := s.uniqueSlug(ctx, *req.Slug, post.Title, post.ID)
		if err != nil {
			return nil, err
		}
		post.Slug = slug
	}
	if req.Excerpt != nil {
		post.Excerpt = req.Excerpt
	}
	if req.Content != nil {
		post.Content = *req.Content
	}
	if req.Tags != nil {
		post.Tags = *req.Tags
	}
	if req.Published != nil {
		if *req.Published && !post.Published && post.PublishedAt == nil {
			now := time.Now().UTC()
			post.PublishedAt = &now
		}
		post.Published = *req.Published
	}

	if err := s.repo.Update(ctx, post); err != nil {
		return nil, appErrors.Internal(err, "failed to update blog post")
	}
	return post, nil
}

// Delete removes a post.
func (s *BlogService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "blog post not found")
		}
		return appErrors.Internal(err, "failed to load blog post")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Internal(err, "failed to delete blog post")
	}
	return nil
}

// uniqueSlug slugifies the preferred value (falling back to the title) and
// appends a numeric suffix until no other post claims it.
func (s *BlogService) uniqueSlug(ctx context.Context, preferred, title, excludeID string) (string, error) {
	base := Slugify(preferred)
	if base == "" {
		base = Slugify(title)
	}
	if base == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "cannot derive a slug from the title")
	}

	slug := base
	for i := 2; ; i++ {
		exists, err := s.repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", appErrors.Internal(err, "failed to check slug uniqueness")
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// Slugify lowercases the input and collapses runs of non-alphanumerics
// into single dashes.
func Slugify(value string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(value), "-")
	return strings.Trim(slug, "-")
}
