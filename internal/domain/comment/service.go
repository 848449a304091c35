package comment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/forumhub/forum-api/internal/domain/post"
)

// Notifier delivers comment and moderation notices
type Notifier interface {
	CommentCreated(ctx context.Context, senderID, recipientID, postID, commentID uuid.UUID, message string) error
	Moderation(ctx context.Context, senderID, recipientID uuid.UUID, message string) error
}

// Service handles comment business logic
type Service struct {
	repo     Repository
	postRepo post.Repository
	notifier Notifier
}

// NewService creates comment service
func NewService(repo Repository, postRepo post.Repository, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		postRepo: postRepo,
		notifier: notifier,
	}
}

// Create adds a comment to a post. Replies may only target top-level
// comments on the same post.
func (s *Service) Create(ctx context.Context, authorID, postID uuid.UUID, req *CreateCommentRequest) (*CommentResponse, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.IsActive {
		return nil, ErrPostNotFound
	}

	c := &Comment{
		ID:       uuid.New(),
		PostID:   postID,
		AuthorID: authorID,
		Content:  strings.TrimSpace(req.Content),
		IsActive: true,
	}

	var parent *Comment
	if req.ParentID != nil {
		parent, err = s.repo.GetByID(ctx, *req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || !parent.IsActive {
			return nil, ErrParentNotFound
		}
		if parent.PostID != postID {
			return nil, ErrParentWrongPost
		}
		if parent.IsReply() {
			return nil, ErrNestingTooDeep
		}
		c.ParentID = uuid.NullUUID{UUID: parent.ID, Valid: true}
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}

	if err := s.postRepo.AdjustCommentsCount(ctx, postID, 1); err != nil {
		log.Warn().Err(err).Str("post_id", postID.String()).Msg("failed to bump comment count")
	}

	created, err := s.repo.GetByID(ctx, c.ID)
	if err != nil || created == nil {
		return nil, err
	}

	s.notifyCreated(ctx, created, p, parent)

	return NewCommentResponse(created), nil
}

// ListForPost returns a post's comment thread
func (s *Service) ListForPost(ctx context.Context, postID uuid.UUID, viewerIsStaff bool) ([]*CommentResponse, error) {
	p, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if p == nil || !p.CanBeViewedBy(viewerIsStaff) {
		return nil, ErrPostNotFound
	}

	comments, err := s.repo.ListByPost(ctx, postID, true)
	if err != nil {
		return nil, err
	}

	visible := make([]*Comment, 0, len(comments))
	for _, c := range comments {
		if c.CanBeViewedBy(viewerIsStaff) {
			visible = append(visible, c)
		}
	}

	return BuildThread(visible), nil
}

// Update edits a comment's content. Author only, active only.
func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req *UpdateCommentRequest) (*CommentResponse, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, ErrCommentNotFound
	}
	if c.AuthorID != userID {
		return nil, ErrNotCommentAuthor
	}
	if !c.IsActive {
		return nil, ErrAlreadyDeleted
	}

	c.Content = strings.TrimSpace(req.Content)
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}

	return NewCommentResponse(c), nil
}

// Delete lets an author remove their own comment within the grace
// window. Replies go with it, and the post counter drops by the whole
// thread.
func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if c.AuthorID != userID {
		return ErrNotCommentAuthor
	}
	if !c.IsActive {
		return ErrAlreadyDeleted
	}
	if !c.WithinSelfDeleteWindow(time.Now()) {
		return ErrDeleteWindowExpired
	}

	removed, err := s.repo.CountThread(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.HardDelete(ctx, id); err != nil {
		return err
	}

	if err := s.postRepo.AdjustCommentsCount(ctx, c.PostID, -removed); err != nil {
		log.Warn().Err(err).Str("post_id", c.PostID.String()).Msg("failed to drop comment count")
	}

	return nil
}

// ModerateDelete soft-deletes a comment on behalf of staff and tells
// the author why, quoting the stated reason verbatim.
func (s *Service) ModerateDelete(ctx context.Context, staffID, id uuid.UUID, req *ModerateDeleteRequest) error {
	reason := strings.TrimSpace(req.Reason)
	if reason == "" {
		return ErrDeleteReasonRequired
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return ErrCommentNotFound
	}
	if !c.IsActive {
		return ErrAlreadyDeleted
	}

	if err := s.repo.SoftDelete(ctx, id, staffID, reason); err != nil {
		return err
	}

	if err := s.postRepo.AdjustCommentsCount(ctx, c.PostID, -1); err != nil {
		log.Warn().Err(err).Str("post_id", c.PostID.String()).Msg("failed to drop comment count")
	}

	if s.notifier != nil {
		msg := fmt.Sprintf("Your comment was removed by moderators. Reason: %s", reason)
		if err := s.notifier.Moderation(ctx, staffID, c.AuthorID, msg); err != nil {
			log.Warn().Err(err).Str("comment_id", id.String()).Msg("failed to deliver removal notice")
		}
	}

	return nil
}

// notifyCreated tells the post author about a new comment, or the
// parent comment's author about a reply. Self-notifications are
// filtered downstream.
func (s *Service) notifyCreated(ctx context.Context, c *Comment, p *post.Post, parent *Comment) {
	if s.notifier == nil {
		return
	}

	recipient := p.AuthorID
	msg := fmt.Sprintf("%s commented on your post %q", c.AuthorUsername, p.Title)
	if parent != nil {
		recipient = parent.AuthorID
		msg = fmt.Sprintf("%s replied to your comment on %q", c.AuthorUsername, p.Title)
	}

	if err := s.notifier.CommentCreated(ctx, c.AuthorID, recipient, p.ID, c.ID, msg); err != nil {
		log.Warn().Err(err).Str("comment_id", c.ID.String()).Msg("failed to deliver comment notice")
	}
}
