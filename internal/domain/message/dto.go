package message

import (
	"time"

	"github.com/google/uuid"
)

// SendMessageRequest represents send message request
type SendMessageRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID                uuid.UUID  `json:"id"`
	SenderID          uuid.UUID  `json:"sender_id"`
	SenderUsername    string     `json:"sender_username"`
	RecipientID       uuid.UUID  `json:"recipient_id"`
	RecipientUsername string     `json:"recipient_username"`
	Content           string     `json:"content"`
	IsRead            bool       `json:"is_read"`
	ReadAt            *time.Time `json:"read_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
}

// ConversationResponse represents one conversation overview entry
type ConversationResponse struct {
	PeerID       uuid.UUID `json:"peer_id"`
	PeerUsername string    `json:"peer_username"`
	PeerAvatar   string    `json:"peer_avatar,omitempty"`
	LastMessage  string    `json:"last_message"`
	LastSentAt   time.Time `json:"last_sent_at"`
	LastFromPeer bool      `json:"last_from_peer"`
	UnreadCount  int       `json:"unread_count"`
}

// NewMessageResponse converts entity to response
func NewMessageResponse(m *Message) MessageResponse {
	resp := MessageResponse{
		ID:                m.ID,
		SenderID:          m.SenderID,
		SenderUsername:    m.SenderUsername,
		RecipientID:       m.RecipientID,
		RecipientUsername: m.RecipientUsername,
		Content:           m.Content,
		IsRead:            m.IsRead,
		CreatedAt:         m.CreatedAt,
	}
	if m.ReadAt.Valid {
		resp.ReadAt = &m.ReadAt.Time
	}
	return resp
}

// NewConversationResponse converts summary to response
func NewConversationResponse(c *ConversationSummary) ConversationResponse {
	resp := ConversationResponse{
		PeerID:       c.PeerID,
		PeerUsername: c.PeerUsername,
		LastMessage:  c.LastMessage,
		LastSentAt:   c.LastSentAt,
		LastFromPeer: c.LastFromPeer,
		UnreadCount:  c.UnreadCount,
	}
	if c.PeerAvatar.Valid {
		resp.PeerAvatar = c.PeerAvatar.String
	}
	return resp
}
