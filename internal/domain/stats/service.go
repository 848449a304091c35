package stats

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/follow"
	"github.com/forumhub/forum-api/internal/domain/post"
	"github.com/forumhub/forum-api/internal/domain/profile"
	"github.com/forumhub/forum-api/internal/pkg/cache"
)

const (
	overviewCacheKey = "stats:overview"
	overviewCacheTTL = time.Minute
)

// Service aggregates activity counters across domains
type Service struct {
	repo        Repository
	postRepo    post.Repository
	commentRepo comment.Repository
	followRepo  follow.Repository
	cache       *cache.Store
}

// NewService creates new stats service
func NewService(repo Repository, postRepo post.Repository, commentRepo comment.Repository, followRepo follow.Repository, store *cache.Store) *Service {
	return &Service{
		repo:        repo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		followRepo:  followRepo,
		cache:       store,
	}
}

// ProfileCounts returns the per-user numbers shown on a profile
func (s *Service) ProfileCounts(ctx context.Context, userID uuid.UUID) (*profile.ProfileCounts, error) {
	posts, err := s.postRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	comments, err := s.commentRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	followers, following, err := s.followRepo.Counts(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &profile.ProfileCounts{
		Posts:     posts,
		Comments:  comments,
		Followers: followers,
		Following: following,
	}, nil
}

// Overview returns forum-wide aggregates, cached briefly
func (s *Service) Overview(ctx context.Context) (*Overview, error) {
	var o Overview
	err := s.cache.GetOrSet(ctx, overviewCacheKey, overviewCacheTTL, &o, func() (interface{}, error) {
		return s.repo.Overview(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &o, nil
}
