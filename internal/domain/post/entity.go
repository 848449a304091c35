package post

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Post represents a forum post (matches posts table)
type Post struct {
	ID         uuid.UUID `db:"id"`
	AuthorID   uuid.UUID `db:"author_id"`
	CategoryID uuid.UUID `db:"category_id"`
	Title      string    `db:"title"`
	Content    string    `db:"content"`

	IsActive bool `db:"is_active"`
	IsPinned bool `db:"is_pinned"`

	ViewsCount    int `db:"views_count"`
	LikesCount    int `db:"likes_count"`
	CommentsCount int `db:"comments_count"`

	// Moderation trail, set when staff soft-deletes
	DeletedAt    sql.NullTime   `db:"deleted_at"`
	DeletedBy    uuid.NullUUID  `db:"deleted_by"`
	DeleteReason sql.NullString `db:"delete_reason"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Joined fields, not columns of posts
	AuthorUsername string         `db:"author_username"`
	CategoryName   string         `db:"category_name"`
	CategorySlug   string         `db:"category_slug"`
	AuthorAvatar   sql.NullString `db:"author_avatar"`
}

// selfDeleteWindow is how long an author can hard-delete their own post
const selfDeleteWindow = 5 * time.Minute

// CanBeViewedBy reports whether a viewer may see this post. Soft
// deleted posts are visible to staff only.
func (p *Post) CanBeViewedBy(viewerIsStaff bool) bool {
	return p.IsActive || viewerIsStaff
}

// CanBeEditedBy reports whether a user may edit this post
func (p *Post) CanBeEditedBy(userID uuid.UUID) bool {
	return p.IsActive && p.AuthorID == userID
}

// WithinSelfDeleteWindow reports whether the author can still remove
// the post outright
func (p *Post) WithinSelfDeleteWindow(now time.Time) bool {
	return now.Sub(p.CreatedAt) <= selfDeleteWindow
}
