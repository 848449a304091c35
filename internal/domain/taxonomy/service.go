package taxonomy

import (
	"context"
	"database/sql"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/pkg/cache"
)

const (
	categoriesCacheKey = "taxonomy:categories"
	tagsCacheKey       = "taxonomy:tags"
	listCacheTTL       = 5 * time.Minute
)

// Service handles taxonomy business logic
type Service struct {
	repo  Repository
	cache *cache.Store
}

// NewService creates taxonomy service
func NewService(repo Repository, cache *cache.Store) *Service {
	return &Service{repo: repo, cache: cache}
}

// CreateCategory creates a category (staff only)
func (s *Service) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*Category, error) {
	slug := slugify(req.Name)

	existing, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	c := &Category{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: slug,
	}
	if req.Description != "" {
		c.Description = sql.NullString{String: req.Description, Valid: true}
	}

	if err := s.repo.CreateCategory(ctx, c); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, categoriesCacheKey)
	return c, nil
}

// ListCategories returns all categories, served from cache when warm
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	err := s.cache.GetOrSet(ctx, categoriesCacheKey, listCacheTTL, &categories, func() (interface{}, error) {
		return s.repo.ListCategories(ctx)
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns a category by slug
func (s *Service) GetCategory(ctx context.Context, slug string) (*Category, error) {
	c, err := s.repo.GetCategoryBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// CreateTag creates a tag (staff only)
func (s *Service) CreateTag(ctx context.Context, req *CreateTagRequest) (*Tag, error) {
	slug := slugify(req.Name)

	existing, err := s.repo.GetTagBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSlugTaken
	}

	t := &Tag{
		ID:   uuid.New(),
		Name: req.Name,
		Slug: slug,
	}

	if err := s.repo.CreateTag(ctx, t); err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, tagsCacheKey)
	return t, nil
}

// ListTags returns all tags, served from cache when warm
func (s *Service) ListTags(ctx context.Context) ([]*Tag, error) {
	var tags []*Tag
	err := s.cache.GetOrSet(ctx, tagsCacheKey, listCacheTTL, &tags, func() (interface{}, error) {
		return s.repo.ListTags(ctx)
	})
	if err != nil {
		return nil, err
	}
	return tags, nil
}

// ResolveTags validates that every requested tag ID exists
func (s *Service) ResolveTags(ctx context.Context, ids []uuid.UUID) ([]*Tag, error) {
	tags, err := s.repo.GetTagsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// AttachTags replaces a post's tag set and refreshes cached counters
func (s *Service) AttachTags(ctx context.Context, postID uuid.UUID, tagIDs []uuid.UUID) error {
	if err := s.repo.AttachTags(ctx, postID, tagIDs); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, tagsCacheKey)
	return nil
}

// TagsForPost returns the tags attached to a post
func (s *Service) TagsForPost(ctx context.Context, postID uuid.UUID) ([]*Tag, error) {
	return s.repo.TagsForPost(ctx, postID)
}

// GetCategoryByID returns a category or ErrCategoryNotFound
func (s *Service) GetCategoryByID(ctx context.Context, id uuid.UUID) (*Category, error) {
	c, err := s.repo.GetCategoryByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCategoryNotFound
	}
	return c, nil
}

// AdjustCategoryCount shifts a category's post counter and drops the
// cached category list
func (s *Service) AdjustCategoryCount(ctx context.Context, categoryID uuid.UUID, delta int) error {
	if err := s.repo.AdjustCategoryPostCount(ctx, categoryID, delta); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, categoriesCacheKey)
	return nil
}

// InvalidateTagCache drops the cached tag list after counters move
func (s *Service) InvalidateTagCache(ctx context.Context) {
	s.cache.Invalidate(ctx, tagsCacheKey, categoriesCacheKey)
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a display name into a URL-safe slug
func slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
