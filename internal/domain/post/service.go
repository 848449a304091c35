package post

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/domain/taxonomy"
	"github.com/forumhub/forum-api/internal/pkg/cache"
)

// Notifier delivers moderation notices to users
type Notifier interface {
	Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error
}

// Service handles post business logic
type Service struct {
	repo     Repository
	taxonomy *taxonomy.Service
	views    *cache.ViewCounter
	notifier Notifier
}

// NewService creates post service
func NewService(repo Repository, taxonomySvc *taxonomy.Service, views *cache.ViewCounter, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		taxonomy: taxonomySvc,
		views:    views,
		notifier: notifier,
	}
}

// Create publishes a new post
func (s *Service) Create(ctx context.Context, authorID uuid.UUID, req *CreatePostRequest) (*PostResponse, error) {
	if _, err := s.taxonomy.GetCategoryByID(ctx, req.CategoryID); err != nil {
		if err == taxonomy.ErrCategoryNotFound {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var tags []*taxonomy.Tag
	if len(req.TagIDs) > 0 {
		var err error
		tags, err = s.taxonomy.ResolveTags(ctx, req.TagIDs)
		if err != nil {
			if err == taxonomy.ErrTagNotFound {
				return nil, ErrTagNotFound
			}
			return nil, err
		}
	}

	p := &Post{
		ID:         uuid.New(),
		AuthorID:   authorID,
		CategoryID: req.CategoryID,
		Title:      strings.TrimSpace(req.Title),
		Content:    req.Content,
		IsActive:   true,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	if len(req.TagIDs) > 0 {
		if err := s.taxonomy.AttachTags(ctx, p.ID, req.TagIDs); err != nil {
			return nil, err
		}
	}

	if err := s.taxonomy.AdjustCategoryCount(ctx, req.CategoryID, 1); err != nil {
		log.Warn().Err(err).Str("category_id", req.CategoryID.String()).Msg("failed to bump category count")
	}

	created, err := s.repo.GetByID(ctx, p.ID)
	if err != nil || created == nil {
		return nil, err
	}

	return NewPostResponse(created, tags), nil
}

// Get returns a single post, counting the view. Inactive posts are
// only shown to staff.
func (s *Service) Get(ctx context.Context, id uuid.UUID, viewerIsStaff bool) (*PostResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	if !p.CanBeViewedBy(viewerIsStaff) {
		return nil, ErrPostNotFound
	}

	if p.IsActive && s.views != nil {
		if _, err := s.views.Increment(ctx, p.ID.String()); err != nil {
			log.Warn().Err(err).Str("post_id", p.ID.String()).Msg("view counter increment failed")
		}
	}

	tags, err := s.taxonomy.TagsForPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return NewPostResponse(p, tags), nil
}

// List returns posts matching the filter, pinned first
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]*PostResponse, int, error) {
	filter.Normalize()

	posts, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]*PostResponse, 0, len(posts))
	for _, p := range posts {
		tags, err := s.taxonomy.TagsForPost(ctx, p.ID)
		if err != nil {
			return nil, 0, err
		}
		responses = append(responses, NewPostResponse(p, tags))
	}

	return responses, total, nil
}

// Update edits a post's title, content or tags. Author only.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *UpdatePostRequest) (*PostResponse, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrPostNotFound
	}

	if !p.CanBeEditedBy(userID) {
		if p.AuthorID != userID {
			return nil, ErrNotPostAuthor
		}
		return nil, ErrPostNotActive
	}

	if req.Title != nil {
		p.Title = strings.TrimSpace(*req.Title)
	}
	if req.Content != nil {
		p.Content = *req.Content
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	if req.TagIDs != nil {
		if len(*req.TagIDs) > 0 {
			if _, err := s.taxonomy.ResolveTags(ctx, *req.TagIDs); err != nil {
				if err == taxonomy.ErrTagNotFound {
					return nil, ErrTagNotFound
				}
				return nil, err
			}
		}
		if err := s.taxonomy.AttachTags(ctx, p.ID, *req.TagIDs); err != nil {
			return nil, err
		}
	}

	tags, err := s.taxonomy.TagsForPost(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	return NewPostResponse(p, tags), nil
}

// Delete lets an author remove their own post. Within the first five
// minutes the row is deleted outright; after that only staff can act.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}

	if p.AuthorID != userID {
		return ErrNotPostAuthor
	}
	if !p.IsActive {
		return ErrAlreadyDeleted
	}
	if !p.WithinSelfDeleteWindow(time.Now()) {
		return ErrDeleteWindowExpired
	}

	// Zero out tag counters before the cascade removes the links
	if err := s.taxonomy.AttachTags(ctx, p.ID, nil); err != nil {
		return err
	}
	if err := s.taxonomy.AdjustCategoryCount(ctx, p.CategoryID, -1); err != nil {
		log.Warn().Err(err).Str("category_id", p.CategoryID.String()).Msg("failed to drop category count")
	}

	return s.repo.HardDelete(ctx, id)
}

// ModerateDelete soft-deletes a post on behalf of staff and tells the
// author why, quoting the stated reason verbatim.
func (s *Service) ModerateDelete(ctx context.Context, staffID, id uuid.UUID, req *ModerateDeleteRequest) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrDeleteReasonRequired
	}

	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}
	if !p.IsActive {
		return ErrAlreadyDeleted
	}

	if err := s.repo.SoftDelete(ctx, id, staffID, reason); err != nil {
		return err
	}

	if err := s.taxonomy.AdjustCategoryCount(ctx, p.CategoryID, -1); err != nil {
		log.Warn().Err(err).Str("category_id", p.CategoryID.String()).Msg("failed to drop category count")
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Your post %q was removed by moderators. Reason: %s", p.Title, reason)
		if err := s.notifier.Moderation(ctx, staffID, p.AuthorID, msg); err != nil {
			log.Warn().Err(err).Str("post_id", id.String()).Msg("failed to deliver removal notice")
		}
	}

	return nil
}

// SetPinned pins or unpins a post (staff only)
func (s *Service) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return ErrPostNotFound
	}
	if !p.IsActive {
		return ErrPostNotActive
	}

	return s.repo.SetPinned(ctx, id, pinned)
}
