package follow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/domain/user"
)

// Notifier delivers follow notices
type Notifier interface {
	FollowCreated(ctx context.Context, senderID, recipientID uuid.UUID, message string) error
}

// ToggleResult reports the state after a follow toggle
type ToggleResult struct {
	Following bool `json:"following"`
	Followers int  `json:"followers"`
}

// Service handles follow business logic
type Service struct {
	repo     Repository
	userRepo user.Repository
	notifier Notifier
}

// NewService creates follow service
func NewService(repo Repository, userRepo user.Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		userRepo: userRepo,
		notifier: notifier,
	}
}

// Toggle flips the caller's follow on a user
func (s *Service) Toggle(ctx context.Context, followerID, followeeID uuid.UUID) (*ToggleResult, error) {
	if followerID == followeeID {
		return nil, ErrCannotFollowSelf
	}

	followee, err := s.userRepo.GetByID(ctx, followeeID)
	if err != nil {
		return nil, err
	}
	if followee == nil {
		return nil, ErrUserNotFound
	}

	added, err := s.repo.Add(ctx, followerID, followeeID)
	if err != nil {
		return nil, err
	}

	if !added {
		if _, err := s.repo.Remove(ctx, followerID, followeeID); err != nil {
			return nil, err
		}
	}

	followers, _, err := s.repo.Counts(ctx, followeeID)
	if err != nil {
		return nil, err
	}

	if added && s.notifier != nil {
		name := "Someone"
		if follower, err := s.userRepo.GetByID(ctx, followerID); err == nil && follower != nil {
			name = follower.Username
		}
		msg := fmt.Sprintf("%s started following you", name)
		if err := s.notifier.FollowCreated(ctx, followerID, followeeID, msg); err != nil {
			log.Warn().Err(err).Str("followee_id", followeeID.String()).Msg("failed to deliver follow notice")
		}
	}

	return &ToggleResult{Following: added, Followers: followers}, nil
}

// Followers returns users following the given user
func (s *Service) Followers(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	if err := s.ensureExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListFollowers(ctx, userID)
}

// Following returns users the given user follows
func (s *Service) Following(ctx context.Context, userID uuid.UUID) ([]*FollowerInfo, error) {
	if err := s.ensureExists(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListFollowing(ctx, userID)
}

func (s *Service) ensureExists(ctx context.Context, userID uuid.UUID) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if u == nil {
		return ErrUserNotFound
	}
	return nil
}
