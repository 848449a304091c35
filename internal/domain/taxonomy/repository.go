package taxonomy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines taxonomy data access interface
type Repository interface {
	CreateCategory(ctx context.Context, c *Category) error
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error)
	GetCategoryBySlug(ctx context.Context, slug string) (*Category, error)
	ListCategories(ctx context.Context) ([]*Category, error)

	CreateTag(ctx context.Context, t *Tag) error
	GetTagBySlug(ctx context.Context, slug string) (*Tag, error)
	GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Tag, error)
	ListTags(ctx context.Context) ([]*Tag, error)

	// AttachTags replaces the tag set of a post and keeps posts_count
	// on both sides in step.
	AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error
	TagsForPost(ctx context.Context, postID uuid.UUID) ([]*Tag, error)

	AdjustCategoryPostCount(ctx context.Context, categoryID uuid.UUID, delta int) error
}

// repository implements Repository
type repository struct {
	db *sqlx.DB
}

// NewRepository creates new taxonomy repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// CreateCategory creates a new category
func (r *repository) CreateCategory(ctx context.Context, c *Category) error {
	query := `
		INSERT INTO categories (id, name, slug, description)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Slug, c.Description)
	if err != nil {
		return fmt.Errorf("taxonomy repository create category: %w", err)
	}
	return nil
}

// GetCategoryByID returns category by ID
func (r *repository) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	query := `SELECT id, name, slug, description, posts_count, created_at FROM categories WHERE id = $1`

	var c Category
	err := r.db.GetContext(ctx, &c, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// GetCategoryBySlug returns category by slug
func (r *repository) GetCategoryBySlug(ctx context.Context, slug string) (*Category, error) {
	query := `SELECT id, name, slug, description, posts_count, created_at FROM categories WHERE slug = $1`

	var c Category
	err := r.db.GetContext(ctx, &c, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// ListCategories returns all categories ordered by name
func (r *repository) ListCategories(ctx context.Context) ([]*Category, error) {
	query := `SELECT id, name, slug, description, posts_count, created_at FROM categories ORDER BY name`

	categories := []*Category{}
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateTag creates a new tag
func (r *repository) CreateTag(ctx context.Context, t *Tag) error {
	query := `INSERT INTO tags (id, name, slug) VALUES ($1, $2, $3)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.Name, t.Slug)
	if err != nil {
		return fmt.Errorf("taxonomy repository create tag: %w", err)
	}
	return nil
}

// GetTagBySlug returns tag by slug
func (r *repository) GetTagBySlug(ctx context.Context, slug string) (*Tag, error) {
	query := `SELECT id, name, slug, posts_count, created_at FROM tags WHERE slug = $1`

	var t Tag
	err := r.db.GetContext(ctx, &t, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

// GetTagsByIDs returns tags matching the given IDs
func (r *repository) GetTagsByIDs(ctx context.Context, ids []uuid.UUID) ([]*Tag, error) {
	if len(ids) == 0 {
		return []*Tag{}, nil
	}

	query, args, err := sqlx.In(`SELECT id, name, slug, posts_count, created_at FROM tags WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	query = r.db.Rebind(query)

	tags := []*Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, args...); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListTags returns all tags ordered by usage
func (r *repository) ListTags(ctx context.Context) ([]*Tag, error) {
	query := `SELECT id, name, slug, posts_count, created_at FROM tags ORDER BY posts_count DESC, name`

	tags := []*Tag{}
	if err := r.db.SelectContext(ctx, &tags, query); err != nil {
		return nil, err
	}
	return tags, nil
}

// AttachTags replaces a post's tag set inside one transaction
func (r *repository) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Decrement counts for tags being removed
	if _, err := tx.ExecContext(ctx,
		`UPDATE tags SET posts_count = posts_count - 1
		 WHERE id IN (SELECT tag_id FROM post_tags WHERE post_id = $1)`,
		postID,
	); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM post_tags WHERE post_id = $1`, postID); err != nil {
		return err
	}

	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO post_tags (post_id, tag_id) VALUES ($1, $2)`,
			postID, tagID,
		); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tags SET posts_count = posts_count + 1 WHERE id = $1`,
			tagID,
		); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// TagsForPost returns the tags attached to a post
func (r *repository) TagsForPost(ctx context.Context, postID uuid.UUID) ([]*Tag, error) {
	query := `
		SELECT t.id, t.name, t.slug, t.posts_count, t.created_at
		FROM tags t
		JOIN post_tags pt ON pt.tag_id = t.id
		WHERE pt.post_id = $1
		ORDER BY t.name
	`

	tags := []*Tag{}
	if err := r.db.SelectContext(ctx, &tags, query, postID); err != nil {
		return nil, err
	}
	return tags, nil
}

// AdjustCategoryPostCount shifts a category's post counter
func (r *repository) AdjustCategoryPostCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	query := `UPDATE categories SET posts_count = posts_count + $2 WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, categoryID, delta)
	return err
}
