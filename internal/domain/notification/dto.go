package notification

import (
	"time"

	"github.com/google/uuid"
)

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID             uuid.UUID  `json:"id"`
	Type           Type       `json:"type"`
	Message        string     `json:"message"`
	SenderID       *uuid.UUID `json:"sender_id,omitempty"`
	SenderUsername string     `json:"sender_username,omitempty"`
	PostID         *uuid.UUID `json:"post_id,omitempty"`
	CommentID      *uuid.UUID `json:"comment_id,omitempty"`
	MessageID      *uuid.UUID `json:"message_id,omitempty"`
	IsRead         bool       `json:"is_read"`
	CreatedAt      string     `json:"created_at"`
}

// PushPayload is the shape delivered over the WebSocket stream
type PushPayload struct {
	Type             string    `json:"type"`
	Message          string    `json:"message"`
	NotificationID   uuid.UUID `json:"notification_id"`
	NotificationType Type      `json:"notification_type"`
}

// UnreadCountResponse for GET /notifications/unread
type UnreadCountResponse struct {
	UnreadCount int `json:"unread_count"`
}

// MarkAllReadResponse for POST /notifications/read-all
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}

// NewNotificationResponse builds a response from a notification
func NewNotificationResponse(n *Notification) *NotificationResponse {
	resp := &NotificationResponse{
		ID:        n.ID,
		Type:      n.Type,
		Message:   n.Message,
		IsRead:    n.IsRead,
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
	if n.SenderID.Valid {
		id := n.SenderID.UUID
		resp.SenderID = &id
		resp.SenderUsername = n.SenderUsername.String
	}
	if n.PostID.Valid {
		id := n.PostID.UUID
		resp.PostID = &id
	}
	if n.CommentID.Valid {
		id := n.CommentID.UUID
		resp.CommentID = &id
	}
	if n.PrivateMessageID.Valid {
		id := n.PrivateMessageID.UUID
		resp.MessageID = &id
	}
	return resp
}
