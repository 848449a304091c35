package message

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/user"
)

// Notifier pushes a notification about a received message
type Notifier interface {
	MessageReceived(ctx context.Context, senderID, recipientID, messageID uuid.UUID, message string) error
}

// Service handles private message business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	notifier Notifier
}

// NewService creates new message service
func NewService(repo Repository, userRepo user.Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Send delivers a message from one user to another
func (s *Service) Send(ctx context.Context, senderID, recipientID uuid.UUID, req *SendMessageRequest) (*Message, error) {
	if senderID == recipientID {
		return nil, ErrCannotMessageSelf
	}

	recipient, err := s.userRepo.GetByID(ctx, recipientID)
	if err != nil {
		return nil, fmt.Errorf("get recipient: %w", err)
	}
	if recipient == nil {
		return nil, ErrRecipientNotFound
	}

	m := &Message{
		ID:          uuid.New(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}

	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}

	// Re-fetch to pick up joined usernames
	created, err := s.repo.GetByID(ctx, m.ID)
	if err != nil || created == nil {
		created = m
	}

	msg := fmt.Sprintf("New message from %s", created.SenderUsername)
	if created.SenderUsername == "" {
		msg = "You have a new message"
	}
	if err := s.notifier.MessageReceived(ctx, senderID, recipientID, m.ID, msg); err != nil {
		return created, nil
	}

	return created, nil
}

// Conversations returns the conversation overview for a user
func (s *Service) Conversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	return s.repo.ListConversations(ctx, userID)
}

// Conversation returns messages with a peer and marks the peer's
// messages as read
func (s *Service) Conversation(ctx context.Context, userID, peerID uuid.UUID, limit, offset int) ([]*Message, error) {
	peer, err := s.userRepo.GetByID(ctx, peerID)
	if err != nil {
		return nil, fmt.Errorf("get peer: %w", err)
	}
	if peer == nil {
		return nil, ErrRecipientNotFound
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	messages, err := s.repo.ListBetween(ctx, userID, peerID, limit, offset)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.MarkConversationRead(ctx, userID, peerID); err != nil {
		return nil, err
	}

	return messages, nil
}

// UnreadCount returns total unread messages for a user
func (s *Service) UnreadCount(ctx context.Context, userID uuid.UUID) (int, error) {
	return s.repo.CountUnread(ctx, userID)
}
