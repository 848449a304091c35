package post

import (
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/taxonomy"
)

// CreatePostRequest for POST /posts
type CreatePostRequest struct {
	Title      string      `json:"title" validate:"required,min=3,max=200"`
	Content    string      `json:"content" validate:"required,min=10,max=40000"`
	CategoryID uuid.UUID   `json:"category_id" validate:"required"`
	TagIDs     []uuid.UUID `json:"tag_ids" validate:"omitempty,max=5"`
}

// UpdatePostRequest for PATCH /posts/{id}
type UpdatePostRequest struct {
	Title   *string      `json:"title" validate:"omitempty,min=3,max=200"`
	Content *string      `json:"content" validate:"omitempty,min=10,max=40000"`
	TagIDs  *[]uuid.UUID `json:"tag_ids" validate:"omitempty,max=5"`
}

// ModerateDeleteRequest for DELETE /posts/{id}/moderate (staff only)
type ModerateDeleteRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// ListFilter narrows and pages post listings
type ListFilter struct {
	CategorySlug string
	TagSlug      string
	AuthorID     uuid.UUID
	Search       string
	Page         int
	Limit        int
}

// Offset returns the SQL offset for the current page
func (f *ListFilter) Offset() int {
	if f.Page < 1 {
		f.Page = 1
	}
	return (f.Page - 1) * f.Limit
}

// Normalize clamps paging values to sane bounds
func (f *ListFilter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 50 {
		f.Limit = 20
	}
}

// PostResponse represents a post in API responses
type PostResponse struct {
	ID             uuid.UUID       `json:"id"`
	Title          string          `json:"title"`
	Content        string          `json:"content"`
	AuthorID       uuid.UUID       `json:"author_id"`
	AuthorUsername string          `json:"author_username"`
	AuthorAvatar   string          `json:"author_avatar,omitempty"`
	CategoryID     uuid.UUID       `json:"category_id"`
	CategoryName   string          `json:"category_name"`
	CategorySlug   string          `json:"category_slug"`
	Tags           []*taxonomy.Tag `json:"tags"`
	IsPinned       bool            `json:"is_pinned"`
	IsActive       bool            `json:"is_active"`
	ViewsCount     int             `json:"views_count"`
	LikesCount     int             `json:"likes_count"`
	CommentsCount  int             `json:"comments_count"`
	DeleteReason   string          `json:"delete_reason,omitempty"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

// NewPostResponse builds a response from a post and its tags
func NewPostResponse(p *Post, tags []*taxonomy.Tag) *PostResponse {
	if tags == nil {
		tags = []*taxonomy.Tag{}
	}
	resp := &PostResponse{
		ID:             p.ID,
		Title:          p.Title,
		Content:        p.Content,
		AuthorID:       p.AuthorID,
		AuthorUsername: p.AuthorUsername,
		AuthorAvatar:   p.AuthorAvatar.String,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		CategorySlug:   p.CategorySlug,
		Tags:           tags,
		IsPinned:       p.IsPinned,
		IsActive:       p.IsActive,
		ViewsCount:     p.ViewsCount,
		LikesCount:     p.LikesCount,
		CommentsCount:  p.CommentsCount,
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      p.UpdatedAt.Format(time.RFC3339),
	}
	if !p.IsActive {
		resp.DeleteReason = p.DeleteReason.String
	}
	return resp
}
