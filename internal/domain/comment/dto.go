package comment

import (
	"time"

	"github.com/google/uuid"
)

// CreateCommentRequest for POST /posts/{id}/comments
type CreateCommentRequest struct {
	Content  string     `json:"content" validate:"required,min=1,max=5000"`
	ParentID *uuid.UUID `json:"parent_id"`
}

// UpdateCommentRequest for PATCH /comments/{id}
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// ModerateDeleteRequest for DELETE /comments/{id}/moderate (staff only)
type ModerateDeleteRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

// CommentResponse represents a comment in API responses
type CommentResponse struct {
	ID             uuid.UUID          `json:"id"`
	PostID         uuid.UUID          `json:"post_id"`
	AuthorID       uuid.UUID          `json:"author_id"`
	AuthorUsername string             `json:"author_username"`
	AuthorAvatar   string             `json:"author_avatar,omitempty"`
	ParentID       *uuid.UUID         `json:"parent_id,omitempty"`
	Content        string             `json:"content"`
	IsActive       bool               `json:"is_active"`
	LikesCount     int                `json:"likes_count"`
	DeleteReason   string             `json:"delete_reason,omitempty"`
	Replies        []*CommentResponse `json:"replies,omitempty"`
	CreatedAt      string             `json:"created_at"`
	UpdatedAt      string             `json:"updated_at"`
}

// NewCommentResponse builds a response from a comment
func NewCommentResponse(c *Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:             c.ID,
		PostID:         c.PostID,
		AuthorID:       c.AuthorID,
		AuthorUsername: c.AuthorUsername,
		AuthorAvatar:   c.AuthorAvatar.String,
		Content:        c.Content,
		IsActive:       c.IsActive,
		LikesCount:     c.LikesCount,
		CreatedAt:      c.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      c.UpdatedAt.Format(time.RFC3339),
	}
	if c.ParentID.Valid {
		id := c.ParentID.UUID
		resp.ParentID = &id
	}
	if !c.IsActive {
		resp.DeleteReason = c.DeleteReason.String
		resp.Content = ""
	}
	return resp
}

// BuildThread arranges flat comments into top-level comments with
// their replies nested one level down, preserving input order.
func BuildThread(comments []*Comment) []*CommentResponse {
	top := []*CommentResponse{}
	byID := map[uuid.UUID]*CommentResponse{}

	for _, c := range comments {
		resp := NewCommentResponse(c)
		byID[c.ID] = resp
		if !c.ParentID.Valid {
			top = append(top, resp)
		}
	}

	for _, c := range comments {
		if !c.ParentID.Valid {
			continue
		}
		if parent, ok := byID[c.ParentID.UUID]; ok {
			parent.Replies = append(parent.Replies, byID[c.ID])
		}
	}

	return top
}
