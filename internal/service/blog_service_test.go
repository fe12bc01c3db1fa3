package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/dto"
	"github.com/peakplay/coaching-api/internal/models"
	appErrors "github.com/peakplay/coaching-api/pkg/errors"
)

type mockBlogRepo struct {
	posts   map[string]models.BlogPost
	created []*models.BlogPost
	deleted []string
}

func newMockBlogRepo() *mockBlogRepo {
	return &mockBlogRepo{posts: map[string]models.BlogPost{}}
}

func (m *mockBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	m.created = append(m.created, post)
	m.posts[post.ID] = *post
	return nil
}

func (m *mockBlogRepo) FindByID(ctx context.Context, id string) (*models.BlogPost, error) {
	post, ok := m.posts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &post, nil
}

func (m *mockBlogRepo) FindBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for _, post := range m.posts {
		if post.Slug == slug {
			p := post
			return &p, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockBlogRepo) SlugExists(ctx context.Context, slug, excludeID string) (bool, error) {
	for _, post := range m.posts {
		if post.Slug == slug && post.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockBlogRepo) List(ctx context.Context, filter models.BlogFilter) ([]models.BlogPost, int, error) {
	var out []models.BlogPost
	for _, post := range m.posts {
		out = append(out, post)
	}
	return out, len(out), nil
}

func (m *mockBlogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	m.posts[post.ID] = *post
	return nil
}

func (m *mockBlogRepo) Delete(ctx context.Context, id string) error {
	delete(m.posts, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestBlogServiceCreateDerivesSlug(t *testing.T) {
	repo := newMockBlogRepo()
	svc := NewBlogService(repo, nil, nil)

	post, err := svc.Create(context.Background(), dto.CreateBlogPostRequest{
		Title:   "How to Climb Out of Gold: 3 Habits!",
		Content: "Review your own replays.",
	})
	require.NoError(t, err)
	assert.Equal(t, "how-to-climb-out-of-gold-3-habits", post.Slug)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)
}

func TestBlogServiceCreateSuffixesDuplicateSlug(t *testing.T) {
	repo := newMockBlogRepo()
	repo.posts["p-1"] = models.BlogPost{ID: "p-1", Slug: "patch-notes"}
	svc := NewBlogService(repo, nil, nil)

	post, err := svc.Create(context.Background(), dto.CreateBlogPostRequest{
		Title:   "Patch Notes",
		Content: "New season.",
	})
	require.NoError(t, err)
	assert.Equal(t, "patch-notes-2", post.Slug)
}

func TestBlogServiceCreatePublishedStampsTime(t *testing.T) {
	svc := NewBlogService(newMockBlogRepo(), nil, nil)

	post, err := svc.Create(context.Background(), dto.CreateBlogPostRequest{
		Title:     "Launch",
		Content:   "We are live.",
		Published: true,
	})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	assert.WithinDuration(t, time.Now().UTC(), *post.PublishedAt, time.Minute)
}

func TestBlogServiceGetPublishedBySlugHidesDrafts(t *testing.T) {
	repo := newMockBlogRepo()
	repo.posts["p-1"] = models.BlogPost{ID: "p-1", Slug: "draft-post", Published: false}
	svc := NewBlogService(repo, nil, nil)

	_, err := svc.GetPublishedBySlug(context.Background(), "draft-post")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestBlogServiceUpdatePublishStampsOnce(t *testing.T) {
	repo := newMockBlogRepo()
	repo.posts["p-1"] = models.BlogPost{ID: "p-1", Title: "Draft", Slug: "draft", Content: "..."}
	svc := NewBlogService(repo, nil, nil)

	published := true
	post, err := svc.Update(context.Background(), "p-1", dto.UpdateBlogPostRequest{Published: &published})
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	first := *post.PublishedAt

	// Unpublish and republish; the original timestamp is kept.
	unpublished := false
	_, err = svc.Update(context.Background(), "p-1", dto.UpdateBlogPostRequest{Published: &unpublished})
	require.NoError(t, err)
	post, err = svc.Update(context.Background(), "p-1", dto.UpdateBlogPostRequest{Published: &published})
	require.NoError(t, err)
	assert.Equal(t, first, *post.PublishedAt)
}

func TestBlogServiceDeleteNotFound(t *testing.T) {
	svc := NewBlogService(newMockBlogRepo(), nil, nil)

	err := svc.Delete(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Widow -- Tips!  ", "widow-tips"},
		{"Überfix 2.0", "berfix-2-0"},
		{"---", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), tc.in)
	}
}
