package notification

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Type represents notification type
type Type string

const (
	TypeComment    Type = "comment"    // someone commented on your post or replied to you
	TypeLike       Type = "like"       // someone liked your post or comment
	TypeFollow     Type = "follow"     // someone started following you
	TypeMessage    Type = "message"    // new private message
	TypeModeration Type = "moderation" // staff acted on your content or account
)

// Notification represents a user notification
type Notification struct {
	ID          uuid.UUID     `db:"id" json:"id"`
	RecipientID uuid.UUID     `db:"recipient_id" json:"recipient_id"`
	SenderID    uuid.NullUUID `db:"sender_id" json:"-"`
	Type        Type          `db:"type" json:"type"`
	Message     string        `db:"message" json:"message"`

	// Optional links to the entity the notification is about
	PostID           uuid.NullUUID `db:"post_id" json:"-"`
	CommentID        uuid.NullUUID `db:"comment_id" json:"-"`
	PrivateMessageID uuid.NullUUID `db:"private_message_id" json:"-"`

	IsRead    bool         `db:"is_read" json:"is_read"`
	ReadAt    sql.NullTime `db:"read_at" json:"-"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`

	// Joined field
	SenderUsername sql.NullString `db:"sender_username" json:"-"`
}
