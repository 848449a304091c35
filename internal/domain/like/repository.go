package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines like data access interface. Add operations are
// idempotent; the returned bool says whether a row actually changed.
type Repository interface {
	AddPostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	RemovePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error)
	AddCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	RemoveCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error)
	HasLikedPost(ctx context.Context, userID, postID uuid.UUID) (bool, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new like repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// AddPostLike inserts a like unless one already exists
func (r *repository) AddPostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (id, user_id, post_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, post_id) DO NOTHING`,
		uuid.New(), userID, postID,
	)
	if err != nil {
		return false, fmt.Errorf("like repository add post like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemovePostLike deletes a like if present
func (r *repository) RemovePostLike(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND post_id = $2`,
		userID, postID,
	)
	if err != nil {
		return false, fmt.Errorf("like repository remove post like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// AddCommentLike inserts a like unless one already exists
func (r *repository) AddCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO likes (id, user_id, comment_id)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, comment_id) DO NOTHING`,
		uuid.New(), userID, commentID,
	)
	if err != nil {
		return false, fmt.Errorf("like repository add comment like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveCommentLike deletes a like if present
func (r *repository) RemoveCommentLike(ctx context.Context, userID, commentID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM likes WHERE user_id = $1 AND comment_id = $2`,
		userID, commentID,
	)
	if err != nil {
		return false, fmt.Errorf("like repository remove comment like: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// HasLikedPost reports whether the user currently likes the post
func (r *repository) HasLikedPost(ctx context.Context, userID, postID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND post_id = $2)`,
		userID, postID,
	)
	return exists, err
}
