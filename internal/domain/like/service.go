package like

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/post"
	"github.com/forumhub/forum-api/internal/domain/user"
)

// Notifier delivers like notices
type Notifier interface {
	LikeCreated(ctx context.Context, senderID, recipientID, postID uuid.UUID, commentID *uuid.UUID, message string) error
}

// ToggleResult reports the state after a like toggle
type ToggleResult struct {
	Liked      bool `json:"liked"`
	LikesCount int  `json:"likes_count"`
}

// Service handles like business logic
type Service struct {
	repo        Repository
	postRepo    post.Repository
	commentRepo comment.Repository
	userRepo    user.Repository
	notifier    Notifier
}

// NewService creates like service
func NewService(repo Repository, postRepo post.Repository, commentRepo comment.Repository, userRepo user.Repository, notifier Notifier) *Service {
	return &Service{
		repo:        repo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
		userRepo:    userRepo,
		notifier:    notifier,
	}
}

// TogglePost flips the caller's like on a post. Liking twice in a row
// returns to the original state.
func (s *Service) TogglePost(ctx context.Context, userID, postID uuid.UUID) (*ToggleResult, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrPostNotFound
	}

	added, err := s.repo.AddPostLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}

	if added {
		if err := s.postRepo.AdjustLikesCount(ctx, postID, 1); err != nil {
			return nil, err
		}
		s.notify(ctx, userID, p.AuthorID, postID, nil,
			fmt.Sprintf("%s liked your post %q", s.senderName(ctx, userID), p.Title))
		return &ToggleResult{Liked: true, LikesCount: p.LikesCount + 1}, nil
	}

	removed, err := s.repo.RemovePostLike(ctx, userID, postID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.postRepo.AdjustLikesCount(ctx, postID, -1); err != nil {
			return nil, err
		}
		return &ToggleResult{Liked: false, LikesCount: p.LikesCount - 1}, nil
	}

	return &ToggleResult{Liked: false, LikesCount: p.LikesCount}, nil
}

// ToggleComment flips the caller's like on a comment
func (s *Service) ToggleComment(ctx context.Context, userID, commentID uuid.UUID) (*ToggleResult, error) {
	c, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if c == nil || !c.IsActive {
		return nil, ErrCommentNotFound
	}

	added, err := s.repo.AddCommentLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}

	if added {
		if err := s.commentRepo.AdjustLikesCount(ctx, commentID, 1); err != nil {
			return nil, err
		}
		cid := commentID
		s.notify(ctx, userID, c.AuthorID, c.PostID, &cid,
			fmt.Sprintf("%s liked your comment", s.senderName(ctx, userID)))
		return &ToggleResult{Liked: true, LikesCount: c.LikesCount + 1}, nil
	}

	removed, err := s.repo.RemoveCommentLike(ctx, userID, commentID)
	if err != nil {
		return nil, err
	}
	if removed {
		if err := s.commentRepo.AdjustLikesCount(ctx, commentID, -1); err != nil {
			return nil, err
		}
		return &ToggleResult{Liked: false, LikesCount: c.LikesCount - 1}, nil
	}

	return &ToggleResult{Liked: false, LikesCount: c.LikesCount}, nil
}

func (s *Service) senderName(ctx context.Context, userID uuid.UUID) string {
	if u, err := s.userRepo.GetByID(ctx, userID); err == nil && u != nil {
		return u.Username
	}
	return "Someone"
}

func (s *Service) notify(ctx context.Context, senderID, recipientID, postID uuid.UUID, commentID *uuid.UUID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.LikeCreated(ctx, senderID, recipientID, postID, commentID, message); err != nil {
		log.Warn().Err(err).Str("recipient_id", recipientID.String()).Msg("failed to deliver like notice")
	}
}
