package message

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines private message data access interface
type Repository interface {
	Create(ctx context.Context, m *Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*Message, error)
	ListBetween(ctx context.Context, userA, userB uuid.UUID, limit, offset int) ([]*Message, error)
	MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error)
	ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error)
	CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new message repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const messageSelect = `
	SELECT m.id, m.sender_id, m.recipient_id, m.content, m.is_read, m.read_at, m.created_at,
	       s.username AS sender_username, r.username AS recipient_username
	FROM private_messages m
	JOIN users s ON s.id = m.sender_id
	JOIN users r ON r.id = m.recipient_id
`

// Create creates a new message
func (r *repository) Create(ctx context.Context, m *Message) error {
	query := `
		INSERT INTO private_messages (id, sender_id, recipient_id, content)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.ExecContext(ctx, query, m.ID, m.SenderID, m.RecipientID, m.Content)
	if err != nil {
		return fmt.Errorf("message repository create: %w", err)
	}
	return nil
}

// GetByID returns a message with usernames joined
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Message, error) {
	query := messageSelect + ` WHERE m.id = $1`

	var m Message
	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// ListBetween returns messages exchanged between two users, newest first
func (r *repository) ListBetween(ctx context.Context, userA, userB uuid.UUID, limit, offset int) ([]*Message, error) {
	query := messageSelect + `
		WHERE (m.sender_id = $1 AND m.recipient_id = $2)
		   OR (m.sender_id = $2 AND m.recipient_id = $1)
		ORDER BY m.created_at DESC
		LIMIT $3 OFFSET $4
	`

	messages := []*Message{}
	if err := r.db.SelectContext(ctx, &messages, query, userA, userB, limit, offset); err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkConversationRead marks every unread message from sender to
// recipient as read and returns how many changed
func (r *repository) MarkConversationRead(ctx context.Context, recipientID, senderID uuid.UUID) (int64, error) {
	query := `
		UPDATE private_messages
		SET is_read = true, read_at = NOW()
		WHERE recipient_id = $1 AND sender_id = $2 AND NOT is_read
	`
	result, err := r.db.ExecContext(ctx, query, recipientID, senderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// ListConversations returns one summary row per peer, latest first
func (r *repository) ListConversations(ctx context.Context, userID uuid.UUID) ([]*ConversationSummary, error) {
	query := `
		SELECT DISTINCT ON (peer_id)
		       peer_id,
		       u.username AS peer_username,
		       u.avatar_url AS peer_avatar,
		       m.content AS last_message,
		       m.created_at AS last_sent_at,
		       (m.sender_id = peer_id) AS last_from_peer,
		       (SELECT COUNT(*) FROM private_messages
		        WHERE recipient_id = $1 AND sender_id = peer_id AND NOT is_read) AS unread_count
		FROM (
			SELECT *,
			       CASE WHEN sender_id = $1 THEN recipient_id ELSE sender_id END AS peer_id
			FROM private_messages
			WHERE sender_id = $1 OR recipient_id = $1
		) m
		JOIN users u ON u.id = m.peer_id
		ORDER BY peer_id, m.created_at DESC
	`

	summaries := []*ConversationSummary{}
	if err := r.db.SelectContext(ctx, &summaries, query, userID); err != nil {
		return nil, err
	}
	return summaries, nil
}

// CountUnread returns total unread messages for a user
func (r *repository) CountUnread(ctx context.Context, recipientID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM private_messages WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	)
	return count, err
}
