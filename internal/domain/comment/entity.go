package comment

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Comment represents a comment on a post (matches comments table).
// Threading is one level deep: a comment either sits directly under
// the post or replies to a top-level comment.
type Comment struct {
	ID       uuid.UUID     `db:"id"`
	PostID   uuid.UUID     `db:"post_id"`
	AuthorID uuid.UUID     `db:"author_id"`
	ParentID uuid.NullUUID `db:"parent_id"`
	Content  string        `db:"content"`

	IsActive   bool `db:"is_active"`
	LikesCount int  `db:"likes_count"`

	// Moderation trail, set when staff soft-deletes
	DeletedAt    sql.NullTime   `db:"deleted_at"`
	DeletedBy    uuid.NullUUID  `db:"deleted_by"`
	DeleteReason sql.NullString `db:"delete_reason"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	// Joined fields
	AuthorUsername string         `db:"author_username"`
	AuthorAvatar   sql.NullString `db:"author_avatar"`
}

const selfDeleteWindow = 5 * time.Minute

// CanBeViewedBy reports whether a viewer may see this comment. Soft
// deleted comments are visible to staff only.
func (c *Comment) CanBeViewedBy(viewerIsStaff bool) bool {
	return c.IsActive || viewerIsStaff
}

// WithinSelfDeleteWindow reports whether the author can still remove
// the comment outright
func (c *Comment) WithinSelfDeleteWindow(now time.Time) bool {
	return now.Sub(c.CreatedAt) <= selfDeleteWindow
}

// IsReply reports whether this comment replies to another comment
func (c *Comment) IsReply() bool {
	return c.ParentID.Valid
}
