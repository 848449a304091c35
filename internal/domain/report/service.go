package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/post"
)

// Service handles report business logic
type Service struct {
	repo        Repository
	postRepo    post.Repository
	commentRepo comment.Repository
}

// NewService creates new report service
func NewService(repo Repository, postRepo post.Repository, commentRepo comment.Repository) *Service {
	return &Service{
		repo:        repo,
		postRepo:    postRepo,
		commentRepo: commentRepo,
	}
}

// Create files a report against a post or a comment
func (s *Service) Create(ctx context.Context, reporterID uuid.UUID, req *CreateReportRequest) (*Report, error) {
	if (req.PostID == nil) == (req.CommentID == nil) {
		return nil, ErrTargetRequired
	}

	rep := &Report{
		ID:         uuid.New(),
		ReporterID: reporterID,
		Type:       Type(req.Type),
		Details:    req.Details,
		Status:     StatusPending,
		CreatedAt:  time.Now(),
	}

	if req.PostID != nil {
		p, err := s.postRepo.GetByID(ctx, *req.PostID)
		if err != nil {
			return nil, fmt.Errorf("get post: %w", err)
		}
		if p == nil || !p.IsActive {
			return nil, ErrTargetNotFound
		}
		if p.AuthorID == reporterID {
			return nil, ErrCannotReportOwn
		}
		rep.PostID = uuid.NullUUID{UUID: *req.PostID, Valid: true}
	} else {
		c, err := s.commentRepo.GetByID(ctx, *req.CommentID)
		if err != nil {
			return nil, fmt.Errorf("get comment: %w", err)
		}
		if c == nil || !c.IsActive {
			return nil, ErrTargetNotFound
		}
		if c.AuthorID == reporterID {
			return nil, ErrCannotReportOwn
		}
		rep.CommentID = uuid.NullUUID{UUID: *req.CommentID, Valid: true}
	}

	exists, err := s.repo.Exists(ctx, reporterID, rep.PostID, rep.CommentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyReported
	}

	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}

	created, err := s.repo.GetByID(ctx, rep.ID)
	if err != nil || created == nil {
		return rep, nil
	}
	return created, nil
}

// List returns reports for staff review
func (s *Service) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	filter.Normalize()
	return s.repo.List(ctx, filter)
}

// Get returns a single report
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	return rep, nil
}

// Resolve marks a pending report as handled
func (s *Service) Resolve(ctx context.Context, staffID, id uuid.UUID, req *ResolveReportRequest) (*Report, error) {
	return s.close(ctx, staffID, id, StatusResolved, req.AdminNotes)
}

// Dismiss marks a pending report as not actionable
func (s *Service) Dismiss(ctx context.Context, staffID, id uuid.UUID, req *ResolveReportRequest) (*Report, error) {
	return s.close(ctx, staffID, id, StatusDismissed, req.AdminNotes)
}

func (s *Service) close(ctx context.Context, staffID, id uuid.UUID, status Status, notes string) (*Report, error) {
	rep, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rep == nil {
		return nil, ErrReportNotFound
	}
	if !rep.IsOpen() {
		return nil, ErrAlreadyResolved
	}

	if err := s.repo.Resolve(ctx, id, staffID, status, notes); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, id)
}
