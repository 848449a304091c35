package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service handles notification business logic. Every typed helper
// funnels through Notify, which persists first and then pushes
// best-effort: a dead WebSocket never fails the triggering request.
type Service struct {
	repo Repository
	hub  *Hub
}

// NewService creates notification service
func NewService(repo Repository, hub *Hub) *Service {
	return &Service{repo: repo, hub: hub}
}

// Notify persists a notification and pushes it to the recipient's
// live connections. Users never get notified about their own actions.
func (s *Service) Notify(ctx context.Context, n *Notification) error {
	if n.SenderID.Valid && n.SenderID.UUID == n.RecipientID {
		return nil
	}

	n.ID = uuid.New()
	n.CreatedAt = time.Now()

	if err := s.repo.Create(ctx, n); err != nil {
		return err
	}

	s.push(n)
	return nil
}

func (s *Service) push(n *Notification) {
	if s.hub == nil {
		return
	}

	payload := PushPayload{
		Type:             "notification",
		Message:          n.Message,
		NotificationID:   n.ID,
		NotificationType: n.Type,
	}
	if err := s.hub.SendToUser(n.RecipientID, payload); err != nil {
		log.Warn().Err(err).
			Str("recipient_id", n.RecipientID.String()).
			Msg("notification push failed")
	}
}

// CommentCreated notifies about a new comment or reply
func (s *Service) CommentCreated(ctx context.Context, senderID, recipientID, postID, commentID uuid.UUID, message string) error {
	return s.Notify(ctx, &Notification{
		RecipientID: recipientID,
		SenderID:    uuid.NullUUID{UUID: senderID, Valid: true},
		Type:        TypeComment,
		Message:     message,
		PostID:      uuid.NullUUID{UUID: postID, Valid: true},
		CommentID:   uuid.NullUUID{UUID: commentID, Valid: true},
	})
}

// LikeCreated notifies about a new like
func (s *Service) LikeCreated(ctx context.Context, senderID, recipientID, postID uuid.UUID, commentID *uuid.UUID, message string) error {
	n := &Notification{
		RecipientID: recipientID,
		SenderID:    uuid.NullUUID{UUID: senderID, Valid: true},
		Type:        TypeLike,
		Message:     message,
		PostID:      uuid.NullUUID{UUID: postID, Valid: true},
	}
	if commentID != nil {
		n.CommentID = uuid.NullUUID{UUID: *commentID, Valid: true}
	}
	return s.Notify(ctx, n)
}

// FollowCreated notifies about a new follower
func (s *Service) FollowCreated(ctx context.Context, senderID, recipientID uuid.UUID, message string) error {
	return s.Notify(ctx, &Notification{
		RecipientID: recipientID,
		SenderID:    uuid.NullUUID{UUID: senderID, Valid: true},
		Type:        TypeFollow,
		Message:     message,
	})
}

// MessageReceived notifies about a new private message
func (s *Service) MessageReceived(ctx context.Context, senderID, recipientID, messageID uuid.UUID, message string) error {
	return s.Notify(ctx, &Notification{
		RecipientID:      recipientID,
		SenderID:         uuid.NullUUID{UUID: senderID, Valid: true},
		Type:             TypeMessage,
		Message:          message,
		PrivateMessageID: uuid.NullUUID{UUID: messageID, Valid: true},
	})
}

// Moderation notifies about staff action on the recipient's content
// or account
func (s *Service) Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error {
	return s.Notify(ctx, &Notification{
		RecipientID: recipientID,
		SenderID:    uuid.NullUUID{UUID: senderID, Valid: true},
		Type:        TypeModeration,
		Message:     message,
	})
}

// List returns the recipient's notifications, newest first
func (s *Service) List(ctx context.Context, recipientID uuid.UUID, unreadOnly bool, page, limit int) ([]*NotificationResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	notifications, err := s.repo.ListByRecipient(ctx, recipientID, unreadOnly, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	responses := make([]*NotificationResponse, 0, len(notifications))
	for _, n := range notifications {
		responses = append(responses, NewNotificationResponse(n))
	}
	return responses, nil
}

// UnreadCount returns the number of unread notifications
func (s *Service) UnreadCount(ctx context.Context, recipientID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, recipientID)
}

// MarkAsRead marks a single notification read. Only the recipient may
// do so.
func (s *Service) MarkAsRead(ctx context.Context, userID, id uuid.UUID) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return ErrNotificationNotFound
	}
	if n.RecipientID != userID {
		return ErrNotRecipient
	}

	return s.repo.MarkAsRead(ctx, id)
}

// MarkAllAsRead marks everything read and returns how many changed
func (s *Service) MarkAllAsRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.MarkAllAsRead(ctx, userID)
}
