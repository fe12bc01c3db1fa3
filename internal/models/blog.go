package models

import (
	"time"

	"github.com/lib/pq"
)

// BlogPost is a site article. Unpublished posts are admin-only.
type BlogPost struct {
	ID          string         `db:"id" json:"id"`
	Title       string         `db:"title" json:"title"`
	Slug        string         `db:"slug" json:"slug"`
	Excerpt     *string        `db:"excerpt" json:"excerpt,omitempty"`
	Content     string         `db:"content" json:"content"`
	Tags        pq.StringArray `db:"tags" json:"tags"`
	Published   bool           `db:"published" json:"published"`
	PublishedAt *time.Time     `db:"published_at" json:"published_at,omitempty"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at" json:"updated_at"`
}

// BlogFilter captures filtering criteria for listing posts.
type BlogFilter struct {
	Published *bool
	Tag       string
	Search    string
	Page      int
	PageSize  int
}
