package message

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Message represents a private message between two users (matches
// private_messages table)
type Message struct {
	ID          uuid.UUID `db:"id"`
	SenderID    uuid.UUID `db:"sender_id"`
	RecipientID uuid.UUID `db:"recipient_id"`
	Content     string    `db:"content"`

	IsRead    bool         `db:"is_read"`
	ReadAt    sql.NullTime `db:"read_at"`
	CreatedAt time.Time    `db:"created_at"`

	// Joined fields
	SenderUsername    string `db:"sender_username"`
	RecipientUsername string `db:"recipient_username"`
}

// ConversationSummary is one row in the conversation overview: the
// peer, the latest message and how many of theirs are unread.
type ConversationSummary struct {
	PeerID        uuid.UUID      `db:"peer_id" json:"peer_id"`
	PeerUsername  string         `db:"peer_username" json:"peer_username"`
	PeerAvatar    sql.NullString `db:"peer_avatar" json:"-"`
	LastMessage   string         `db:"last_message" json:"last_message"`
	LastSentAt    time.Time      `db:"last_sent_at" json:"last_sent_at"`
	LastFromPeer  bool           `db:"last_from_peer" json:"last_from_peer"`
	UnreadCount   int            `db:"unread_count" json:"unread_count"`
}
