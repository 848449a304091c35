package follow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines follow data access interface
type Repository interface {
	Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error)
	ListFollowers(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error)
	ListFollowing(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error)
	Counts(ctx context.Context, userID uuid.UUID) (followers int, following int, err error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new follow repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Add inserts a follow edge unless it exists
func (r *repository) Add(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO follows (follower_id, followee_id)
		 VALUES ($1, $2)
		 ON CONFLICT (follower_id, followee_id) DO NOTHING`,
		followerID, followeeID,
	)
	if err != nil {
		return false, fmt.Errorf("follow repository add: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// Remove deletes a follow edge if present
func (r *repository) Remove(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID,
	)
	if err != nil {
		return false, fmt.Errorf("follow repository remove: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// IsFollowing reports whether the edge exists
func (r *repository) IsFollowing(ctx context.Context, followerID, followeeID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		`SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID,
	)
	return exists, err
}

// ListFollowers returns users following the given user, newest first
func (r *repository) ListFollowers(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	query := `
		SELECT u.id AS user_id, u.username, COALESCE(u.avatar_url, '') AS avatar_url, f.created_at AS since
		FROM follows f
		JOIN users u ON u.id = f.follower_id
		WHERE f.followee_id = $1
		ORDER BY f.created_at DESC
	`

	followers := []*FollowerInfo{}
	if err := r.db.SelectContext(ctx, &followers, query, userID); err != nil {
		return nil, err
	}
	return followers, nil
}

// ListFollowing returns users the given user follows, newest first
func (r *repository) ListFollowing(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	query := `
		SELECT u.id AS user_id, u.username, COALESCE(u.avatar_url, '') AS avatar_url, f.created_at AS since
		FROM follows f
		JOIN users u ON u.id = f.followee_id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`

	following := []*FollowerInfo{}
	if err := r.db.SelectContext(ctx, &following, query, userID); err != nil {
		return nil, err
	}
	return following, nil
}

// Counts returns follower and following totals
func (r *repository) Counts(ctx context.Context, userID uuid.UUID) (int, int, error) {
	var followers, following int
	err := r.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM follows WHERE followee_id = $1),
			(SELECT COUNT(*) FROM follows WHERE follower_id = $1)`,
		userID,
	).Scan(&followers, &following)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
