package dto

// CreateBlogPostRequest creates a post. Slug is derived from the title
// when omitted.
type CreateBlogPostRequest struct {
	Title     string   `json:"title" validate:"required"`
	Slug      *string  `json:"slug,omitempty"`
	Excerpt   *string  `json:"excerpt,omitempty"`
	Content   string   `json:"content" validate:"required"`
	Tags      []string `json:"tags,omitempty"`
	Published bool     `json:"published"`
}

// UpdateBlogPostRequest is an explicit partial update.
type UpdateBlogPostRequest struct {
	Title     *string   `json:"title,omitempty"`
	Slug      *string   `json:"slug,omitempty"`
	Excerpt   *string   `json:"excerpt,omitempty"`
	Content   *string   `json:"content,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	Published *bool     `json:"published,omitempty"`
}
