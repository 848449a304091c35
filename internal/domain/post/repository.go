package post

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines post data access interface
type Repository interface {
	Create(ctx context.Context, p *Post) error
	GetByID(ctx context.Context, id uuid.UUID) (*Post, error)
	Update(ctx context.Context, p *Post) error
	HardDelete(ctx context.Context, id uuid.UUID) error
	SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error
	List(ctx context.Context, filter *ListFilter) ([]*Post, int, error)
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error
	AddViews(ctx context.Context, id uuid.UUID, count int64) error
	AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error
	AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error
	CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error)
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new post repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const postSelect = `
	SELECT p.id, p.author_id, p.category_id, p.title, p.content,
	       p.is_active, p.is_pinned, p.views_count, p.likes_count, p.comments_count,
	       p.deleted_at, p.deleted_by, p.delete_reason,
	       p.created_at, p.updated_at,
	       u.username AS author_username, u.avatar_url AS author_avatar,
	       c.name AS category_name, c.slug AS category_slug
	FROM posts p
	JOIN users u ON u.id = p.author_id
	JOIN categories c ON c.id = p.category_id
`

// Create creates a new post
func (r *repository) Create(ctx context.Context, p *Post) error {
	query := `
		INSERT INTO posts (id, author_id, category_id, title, content, is_active)
		VALUES ($1, $2, $3, $4, $5, true)
	`

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.AuthorID,
		p.CategoryID,
		p.Title,
		p.Content,
	)
	if err != nil {
		return fmt.Errorf("post repository create: %w", err)
	}

	return nil
}

// GetByID returns a post with author and category joined
func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Post, error) {
	query := postSelect + ` WHERE p.id = $1`

	var p Post
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &p, nil
}

// Update updates title and content
func (r *repository) Update(ctx context.Context, p *Post) error {
	query := `
		UPDATE posts
		SET title = $2, content = $3, updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, p.ID, p.Title, p.Content)
	if err != nil {
		return fmt.Errorf("post repository update: %w", err)
	}

	return nil
}

// HardDelete removes a post row entirely. Comments, likes and the
// tag links go with it via ON DELETE CASCADE.
func (r *repository) HardDelete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("post repository hard delete: %w", err)
	}
	return nil
}

// SoftDelete hides a post and records the moderation trail
func (r *repository) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	query := `
		UPDATE posts
		SET is_active = false, deleted_at = NOW(), deleted_by = $2, delete_reason = $3,
		    updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, deletedBy, reason)
	if err != nil {
		return fmt.Errorf("post repository soft delete: %w", err)
	}
	return nil
}

// List returns active posts matching the filter, pinned first, newest
// first within each group. Also returns the total match count.
func (r *repository) List(ctx context.Context, filter *ListFilter) ([]*Post, int, error) {
	conditions := []string{"p.is_active = true"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategorySlug != "" {
		conditions = append(conditions, "c.slug = "+arg(filter.CategorySlug))
	}
	if filter.TagSlug != "" {
		conditions = append(conditions,
			`p.id IN (SELECT pt.post_id FROM post_tags pt JOIN tags t ON t.id = pt.tag_id WHERE t.slug = `+arg(filter.TagSlug)+`)`)
	}
	if filter.AuthorID != uuid.Nil {
		conditions = append(conditions, "p.author_id = "+arg(filter.AuthorID))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		n := arg(pattern)
		conditions = append(conditions, "(p.title ILIKE "+n+" OR p.content ILIKE "+n+")")
	}

	where := " WHERE " + strings.Join(conditions, " AND ")

	countQuery := `SELECT COUNT(*) FROM posts p JOIN categories c ON c.id = p.category_id` + where
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	query := postSelect + where +
		` ORDER BY p.is_pinned DESC, p.created_at DESC` +
		` LIMIT ` + arg(filter.Limit) + ` OFFSET ` + arg(filter.Offset())

	posts := []*Post{}
	if err := r.db.SelectContext(ctx, &posts, query, args...); err != nil {
		return nil, 0, err
	}

	return posts, total, nil
}

// SetPinned toggles the pinned flag
func (r *repository) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	query := `UPDATE posts SET is_pinned = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, pinned)
	return err
}

// AddViews applies a batch of buffered view increments
func (r *repository) AddViews(ctx context.Context, id uuid.UUID, count int64) error {
	query := `UPDATE posts SET views_count = views_count + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, count)
	return err
}

// AdjustLikesCount shifts the denormalized like counter
func (r *repository) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE posts SET likes_count = likes_count + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, delta)
	return err
}

// AdjustCommentsCount shifts the denormalized comment counter
func (r *repository) AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error {
	query := `UPDATE posts SET comments_count = comments_count + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id, delta)
	return err
}

// CountByAuthor returns the number of active posts by a user
func (r *repository) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM posts WHERE author_id = $1 AND is_active = true`, authorID)
	return count, err
}
