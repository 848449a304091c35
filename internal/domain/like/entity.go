package like

import (
	"time"

	"github.com/google/uuid"
)

// Like marks a user's appreciation of a post or a comment, never both
// (matches likes table, XOR enforced by a check constraint).
type Like struct {
	ID        uuid.UUID     `db:"id"`
	UserID    uuid.UUID     `db:"user_id"`
	PostID    uuid.NullUUID `db:"post_id"`
	CommentID uuid.NullUUID `db:"comment_id"`
	CreatedAt time.Time     `db:"created_at"`
}
