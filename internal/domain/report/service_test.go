package report

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/forumhub/forum-api/internal/domain/comment"
	"github.com/forumhub/forum-api/internal/domain/post"
)

type fakeRepo struct {
	reports map[uuid.UUID]*Report
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: map[uuid.UUID]*Report{}}
}

func (f *fakeRepo) Create(ctx context.Context, r *Report) error {
	cp := *r
	f.reports[r.ID] = &cp
	return nil
}
func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Report, error) {
	return f.reports[id], nil
}
func (f *fakeRepo) Exists(ctx context.Context, reporterID uuid.UUID, postID, commentID uuid.NullUUID) (bool, error) {
	for _, r := range f.reports {
		if r.ReporterID == reporterID && r.PostID == postID && r.CommentID == commentID && r.Status == StatusPending {
			return true, nil
		}
	}
	return false, nil
}
func (f *fakeRepo) List(ctx context.Context, filter *ListFilter) ([]*Report, int, error) {
	out := []*Report{}
	for _, r := range f.reports {
		if filter.Status == "" || string(r.Status) == filter.Status {
			out = append(out, r)
		}
	}
	return out, len(out), nil
}
func (f *fakeRepo) Resolve(ctx context.Context, id, resolvedBy uuid.UUID, status Status, adminNotes string) error {
	r := f.reports[id]
	r.Status = status
	r.ResolvedBy = uuid.NullUUID{UUID: resolvedBy, Valid: true}
	return nil
}

type fakePostRepo struct {
	posts map[uuid.UUID]*post.Post
}

func (f *fakePostRepo) Create(ctx context.Context, p *post.Post) error { return nil }
func (f *fakePostRepo) GetByID(ctx context.Context, id uuid.UUID) (*post.Post, error) {
	return f.posts[id], nil
}
func (f *fakePostRepo) Update(ctx context.Context, p *post.Post) error     { return nil }
func (f *fakePostRepo) HardDelete(ctx context.Context, id uuid.UUID) error { return nil }
func (f *fakePostRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return nil
}
func (f *fakePostRepo) List(ctx context.Context, filter *post.ListFilter) ([]*post.Post, int, error) {
	return nil, 0, nil
}
func (f *fakePostRepo) SetPinned(ctx context.Context, id uuid.UUID, pinned bool) error { return nil }
func (f *fakePostRepo) AddViews(ctx context.Context, id uuid.UUID, count int64) error  { return nil }
func (f *fakePostRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakePostRepo) AdjustCommentsCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakePostRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, nil
}

type fakeCommentRepo struct {
	comments map[uuid.UUID]*comment.Comment
}

func (f *fakeCommentRepo) Create(ctx context.Context, c *comment.Comment) error { return nil }
func (f *fakeCommentRepo) GetByID(ctx context.Context, id uuid.UUID) (*comment.Comment, error) {
	return f.comments[id], nil
}
func (f *fakeCommentRepo) Update(ctx context.Context, c *comment.Comment) error { return nil }
func (f *fakeCommentRepo) HardDelete(ctx context.Context, id uuid.UUID) error   { return nil }
func (f *fakeCommentRepo) SoftDelete(ctx context.Context, id, deletedBy uuid.UUID, reason string) error {
	return nil
}
func (f *fakeCommentRepo) ListByPost(ctx context.Context, postID uuid.UUID, includeInactive bool) ([]*comment.Comment, error) {
	return nil, nil
}
func (f *fakeCommentRepo) AdjustLikesCount(ctx context.Context, id uuid.UUID, delta int) error {
	return nil
}
func (f *fakeCommentRepo) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int, error) {
	return 0, nil
}
func (f *fakeCommentRepo) CountThread(ctx context.Context, id uuid.UUID) (int, error) {
	return 1, nil
}

func newTestService(repo *fakeRepo, posts *fakePostRepo, comments *fakeCommentRepo) *Service {
	if posts == nil {
		posts = &fakePostRepo{posts: map[uuid.UUID]*post.Post{}}
	}
	if comments == nil {
		comments = &fakeCommentRepo{comments: map[uuid.UUID]*comment.Comment{}}
	}
	return NewService(repo, posts, comments)
}

func TestCreateRequiresExactlyOneTarget(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil, nil)
	reporter := uuid.New()

	_, err := svc.Create(context.Background(), reporter, &CreateReportRequest{Type: "spam"})
	if err != ErrTargetRequired {
		t.Fatalf("no target: expected ErrTargetRequired, got %v", err)
	}

	postID, commentID := uuid.New(), uuid.New()
	_, err = svc.Create(context.Background(), reporter, &CreateReportRequest{
		PostID:    &postID,
		CommentID: &commentID,
		Type:      "spam",
	})
	if err != ErrTargetRequired {
		t.Fatalf("both targets: expected ErrTargetRequired, got %v", err)
	}
}

func TestCreatePostReport(t *testing.T) {
	repo := newFakeRepo()
	p := &post.Post{ID: uuid.New(), AuthorID: uuid.New(), IsActive: true}
	posts := &fakePostRepo{posts: map[uuid.UUID]*post.Post{p.ID: p}}
	svc := newTestService(repo, posts, nil)

	rep, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{
		PostID:  &p.ID,
		Type:    "harassment",
		Details: "targeted insults in the last paragraph",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rep.Status != StatusPending || !rep.PostID.Valid {
		t.Errorf("report = %+v", rep)
	}
}

func TestCreateReportOwnPostRejected(t *testing.T) {
	author := uuid.New()
	p := &post.Post{ID: uuid.New(), AuthorID: author, IsActive: true}
	posts := &fakePostRepo{posts: map[uuid.UUID]*post.Post{p.ID: p}}
	svc := newTestService(newFakeRepo(), posts, nil)

	_, err := svc.Create(context.Background(), author, &CreateReportRequest{PostID: &p.ID, Type: "other"})
	if err != ErrCannotReportOwn {
		t.Fatalf("expected ErrCannotReportOwn, got %v", err)
	}
}

func TestCreateDuplicatePendingReport(t *testing.T) {
	repo := newFakeRepo()
	p := &post.Post{ID: uuid.New(), AuthorID: uuid.New(), IsActive: true}
	posts := &fakePostRepo{posts: map[uuid.UUID]*post.Post{p.ID: p}}
	svc := newTestService(repo, posts, nil)
	reporter := uuid.New()

	req := &CreateReportRequest{PostID: &p.ID, Type: "spam"}
	if _, err := svc.Create(context.Background(), reporter, req); err != nil {
		t.Fatalf("first Create: %v", err)
	}
	if _, err := svc.Create(context.Background(), reporter, req); err != ErrAlreadyReported {
		t.Fatalf("expected ErrAlreadyReported, got %v", err)
	}
}

func TestCreateReportInactiveComment(t *testing.T) {
	c := &comment.Comment{ID: uuid.New(), AuthorID: uuid.New(), IsActive: false}
	comments := &fakeCommentRepo{comments: map[uuid.UUID]*comment.Comment{c.ID: c}}
	svc := newTestService(newFakeRepo(), nil, comments)

	_, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{CommentID: &c.ID, Type: "spam"})
	if err != ErrTargetNotFound {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	repo := newFakeRepo()
	p := &post.Post{ID: uuid.New(), AuthorID: uuid.New(), IsActive: true}
	posts := &fakePostRepo{posts: map[uuid.UUID]*post.Post{p.ID: p}}
	svc := newTestService(repo, posts, nil)

	rep, err := svc.Create(context.Background(), uuid.New(), &CreateReportRequest{PostID: &p.ID, Type: "spam"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	staff := uuid.New()
	resolved, err := svc.Resolve(context.Background(), staff, rep.ID, &ResolveReportRequest{AdminNotes: "removed the post"})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Status != StatusResolved {
		t.Errorf("status = %s", resolved.Status)
	}

	if _, err := svc.Dismiss(context.Background(), staff, rep.ID, &ResolveReportRequest{}); err != ErrAlreadyResolved {
		t.Fatalf("expected ErrAlreadyResolved, got %v", err)
	}
}
