package comment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines comment data access interface
type Repository interface {
	Create(ctx context.Context, c *Comment) error
	GetByID(ctx context.Context, id uuid.UUID) (*Comment, error)
	Update(ctx context.Context, c *Comment) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error
	ListByPost(ctx context.Context, postID uuid.UUID, includeInactive bool) ([]*Comment, error)
	AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
	// CountThread counts a comment plus its active replies, used to
	// keep the post's comment counter straight on hard delete.
	CountThread(ctx context.Context, id uuid.UUID) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new comment repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const commentSelect = `
	SELECT c.id, c.post_id, c.author_id, c.parent_id, c.content,
	       c.is_active, c.likes_count,
	       c.deleted_at, c.deleted_by, c.delete_reason,
	       c.created_at, c.updated_at,
	       u.username AS author_username, u.avatar_url AS author_avatar
	FROM comments c
	JOIN users u ON u.id = c.author_id
`

// Create creates a new comment
func (r *repository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (id, post_id, author_id, parent_id, content, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.PostID,
		c.AuthorID,
		c.ParentID,
		c.Content,
	)
	if err != nil {
		return fmt.Errorf("comment repository create: %w", err)
	}

	return nil
}

// GetByID returns a comment with author joined
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Comment, error) {
	query := commentSelect + ` WHERE c.id = $1`

	var c Comment
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &c, nil
}

// Update updates comment content
func (r *repository) Update(ctx context.Context, c *Comment) error {
	query := `UPDATE comments SET content = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Content)
	if err != nil {
		return fmt.Errorf("comment repository update: %w", err)
	}
	return nil
}

// HardDelete removes a comment row. Replies cascade via the
// parent_id foreign key.
func (r *repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("comment repository hard delete: %w", err)
	}
	return nil
}

// SoftDelete hides a comment and records the moderation trail
func (r *repository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	query := `
		UPDATE comments
		SET is_active = false, deleted_at = NOW(), deleted_by = $2, delete_reason = $3,
		    updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, deletedBy, reason)
	if err != nil {
		return fmt.Errorf("comment repository soft delete: %w", err)
	}
	return nil
}

// ListByPost returns a post's comments oldest first. Staff and authors
// see inactive rows via includeInactive.
func (r *repository) ListByPost(ctx context.Context, postID uuid.UUID, includeInactive bool) ([]*Comment, error) {
	query := commentSelect + ` WHERE c.post_id = $1`
	if !includeInactive {
		query += ` AND c.is_active = true`
	}
	query += ` ORDER BY c.created_at ASC`

	comments := []*Comment{}
	if err := r.db.SelectContext(ctx, &comments, query, postID); err != nil {
		return nil, err
	}
	return comments, nil
}

// AdjustLikesCount shifts the denormalized like counter
func (r *repository) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE comments SET likes_count = likes_count + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, delta)
	return err
}

// CountByAuthor returns the number of active comments by a user
func (r *repository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE author_id = $1 AND is_active = true`, authorID)
	return count, err
}

// CountThread counts a comment and its active replies
func (r *repository) CountThread(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM comments WHERE (id = $1 OR parent_id = $1) AND is_active = true`, id)
	return count, err
}
